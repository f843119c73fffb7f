package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/dits-agency/outreach-cli/internal/decide"
	"github.com/dits-agency/outreach-cli/internal/model"
)

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Score a single URL and print the resulting decision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newPageSpeedClient()
		if err != nil {
			return err
		}

		scores, err := client.FetchScores(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := struct {
			Website  string         `json:"website"`
			Scores   model.ScoreSet `json:"scores"`
			Decision model.Decision `json:"decision"`
		}{
			Website: args[0],
			Scores: model.ScoreSet{
				MobilePerformance: scores.Performance,
				Accessibility:     scores.Accessibility,
				BestPractices:     scores.BestPractices,
				SEO:               scores.SEO,
			},
			Decision: decide.Decide(scores.Performance, ""),
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
