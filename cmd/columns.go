package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dits-agency/outreach-cli/internal/ingest"
	"github.com/dits-agency/outreach-cli/internal/mapper"
)

var (
	columnsInput string
	columnsSave  string
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Preview the inferred column mapping for an input file",
	Long: `Runs header-synonym matching and content sniffing on the input and
prints the inferred mapping without scoring anything. Use --save to write
the mapping as a YAML override file for later runs.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := ingest.ReadTable(columnsInput)
		if err != nil {
			return err
		}

		mapping := mapper.MapColumns(table)

		out := make(map[string]string, len(mapper.Fields))
		for _, f := range mapper.Fields {
			if col, ok := mapping[f]; ok {
				out[string(f)] = col
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}

		if err := mapping.Validate(); err != nil {
			// Advisory command: report but don't fail the preview.
			zap.L().Warn("columns: mapping incomplete", zap.Error(err))
		}

		if columnsSave != "" {
			if err := mapper.SaveOverrides(mapping, columnsSave); err != nil {
				return err
			}
			zap.L().Info("columns: mapping saved", zap.String("path", columnsSave))
		}

		return nil
	},
}

func init() {
	columnsCmd.Flags().StringVar(&columnsInput, "input", "", "path to lead CSV or XLSX file (required)")
	columnsCmd.Flags().StringVar(&columnsSave, "save", "", "write the inferred mapping to a YAML file")
	_ = columnsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(columnsCmd)
}
