package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dits-agency/outreach-cli/internal/export"
	"github.com/dits-agency/outreach-cli/internal/ingest"
	"github.com/dits-agency/outreach-cli/internal/model"
	"github.com/dits-agency/outreach-cli/internal/runner"
	"github.com/dits-agency/outreach-cli/internal/store"
)

var (
	runInput    string
	runLimit    int
	runDelay    float64
	runMapping  string
	runReport   string
	runOutreach string
	runNoStore  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score a lead spreadsheet and export outreach results",
	Long: `Reads a CSV or XLSX lead file, scores each website via PageSpeed
Insights, decides an outreach template per score bucket, and writes the
full XLSX report plus the outreach-import CSV.

Examples:
  # Default artifacts (results.xlsx, snov_import.csv)
  outreach-cli run --input leads.csv

  # Pin column mapping and slow down for API quotas
  outreach-cli run --input leads.xlsx --mapping mapping.yaml --delay 2`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		// Credential check comes first; nothing is read without a key.
		client, err := newPageSpeedClient()
		if err != nil {
			return err
		}

		table, err := ingest.ReadTable(runInput)
		if err != nil {
			return err
		}

		limit := runLimit
		if limit == 0 {
			limit = cfg.Batch.MaxRows
		}
		leads, mapping, err := prepareLeads(table, limit, runMapping)
		if err != nil {
			return err
		}
		zap.L().Info("input parsed",
			zap.String("file", runInput),
			zap.Int("leads", len(leads)),
			zap.Any("mapping", mapping),
		)

		delay := cfg.Batch.Delay()
		if cmd.Flags().Changed("delay") {
			delay = time.Duration(runDelay * float64(time.Second))
		}

		var st store.Store
		var run *model.Run
		if !runNoStore {
			st, err = initStore(ctx)
			if err != nil {
				return eris.Wrap(err, "run: init store")
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "run: migrate store")
			}
			run, err = st.CreateRun(ctx, runInput, len(leads))
			if err != nil {
				return eris.Wrap(err, "run: create run")
			}
			if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
				zap.L().Warn("run: mark running", zap.Error(err))
			}
		}

		r := runner.New(client, runner.Config{
			Delay: delay,
			Progress: func(done, total int, website string) {
				if st != nil && run != nil {
					if err := st.UpdateRunProgress(ctx, run.ID, done); err != nil {
						zap.L().Warn("run: update progress", zap.Error(err))
					}
				}
			},
		})

		records, runErr := r.Run(ctx, leads)
		if runErr != nil {
			zap.L().Warn("run: batch interrupted", zap.Error(runErr))
		}

		// Exports are written even for a partial batch.
		if err := export.WriteReportXLSX(records, runReport); err != nil {
			return err
		}
		if err := export.WriteOutreachCSV(records, runOutreach); err != nil {
			return err
		}

		summary := model.Summarize(records)
		if st != nil && run != nil {
			if runErr != nil {
				if err := st.FailRun(ctx, run.ID); err != nil {
					zap.L().Warn("run: mark failed", zap.Error(err))
				}
			} else if err := st.CompleteRun(ctx, run.ID, summary); err != nil {
				zap.L().Warn("run: mark complete", zap.Error(err))
			}
		}

		zap.L().Info("batch complete",
			zap.Int("total", summary.Total),
			zap.Int("send", summary.Send),
			zap.Int("skip", summary.Skip),
			zap.Int("errored", summary.Errored),
			zap.String("report", runReport),
			zap.String("outreach", runOutreach),
		)

		return runErr
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "path to lead CSV or XLSX file (required)")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "max rows to process (default from config)")
	runCmd.Flags().Float64Var(&runDelay, "delay", 0, "seconds to wait between rows (default from config)")
	runCmd.Flags().StringVar(&runMapping, "mapping", "", "YAML column-mapping override file")
	runCmd.Flags().StringVar(&runReport, "report", "results.xlsx", "full report output path")
	runCmd.Flags().StringVar(&runOutreach, "outreach", "snov_import.csv", "outreach-import CSV output path")
	runCmd.Flags().BoolVar(&runNoStore, "no-store", false, "skip recording the run in the history store")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}
