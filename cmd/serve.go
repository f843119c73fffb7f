package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dits-agency/outreach-cli/internal/export"
	"github.com/dits-agency/outreach-cli/internal/ingest"
	"github.com/dits-agency/outreach-cli/internal/model"
	"github.com/dits-agency/outreach-cli/internal/runner"
	"github.com/dits-agency/outreach-cli/internal/store"
	"github.com/dits-agency/outreach-cli/pkg/pagespeed"
)

var servePort int

// maxUploadBytes caps multipart lead uploads.
const maxUploadBytes = 10 << 20

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the batch upload server",
	Long: `Accepts lead CSV uploads over HTTP and processes them as batches.
Artifacts are written to the configured output directory, named by run ID.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client, err := newPageSpeedClient()
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "serve: init store")
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "serve: migrate store")
		}

		srv := &server{client: client, store: st, outputDir: cfg.Server.OutputDir}

		r := chi.NewRouter()
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
		}))
		r.Get("/healthz", srv.handleHealth)
		r.Route("/api/batches", func(r chi.Router) {
			r.Post("/", srv.handleCreateBatch(ctx))
			r.Get("/", srv.handleListBatches)
			r.Get("/{id}", srv.handleGetBatch)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = httpSrv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}

		return nil
	},
}

type server struct {
	client    pagespeed.Client
	store     store.Store
	outputDir string
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateBatch accepts a multipart CSV upload and processes it
// asynchronously. The request context ends with the request, so the batch
// runs on the server's lifecycle context instead.
func (s *server) handleCreateBatch(serverCtx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
			return
		}
		defer file.Close() //nolint:errcheck

		table, err := ingest.ParseCSV(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		leads, _, err := prepareLeads(table, cfg.Batch.MaxRows, "")
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}

		run, err := s.store.CreateRun(r.Context(), header.Filename, len(leads))
		if err != nil {
			zap.L().Error("serve: create run", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "store failure"})
			return
		}

		go s.processBatch(serverCtx, run, leads)

		writeJSON(w, http.StatusAccepted, run)
	}
}

func (s *server) processBatch(ctx context.Context, run *model.Run, leads []model.Lead) {
	if err := s.store.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
		zap.L().Warn("serve: mark running", zap.Error(err))
	}

	r := runner.New(s.client, runner.Config{
		Delay: cfg.Batch.Delay(),
		Progress: func(done, total int, _ string) {
			if err := s.store.UpdateRunProgress(ctx, run.ID, done); err != nil {
				zap.L().Warn("serve: update progress", zap.Error(err))
			}
		},
	})

	records, runErr := r.Run(ctx, leads)

	reportPath := filepath.Join(s.outputDir, run.ID+"-results.xlsx")
	outreachPath := filepath.Join(s.outputDir, run.ID+"-snov_import.csv")
	if err := export.WriteReportXLSX(records, reportPath); err != nil {
		zap.L().Error("serve: write report", zap.Error(err))
		runErr = err
	}
	if err := export.WriteOutreachCSV(records, outreachPath); err != nil {
		zap.L().Error("serve: write outreach file", zap.Error(err))
		runErr = err
	}

	if runErr != nil {
		_ = s.store.FailRun(ctx, run.ID)
		zap.L().Error("serve: batch failed", zap.String("run", run.ID), zap.Error(runErr))
		return
	}

	summary := model.Summarize(records)
	if err := s.store.CompleteRun(ctx, run.ID, summary); err != nil {
		zap.L().Error("serve: complete run", zap.Error(err))
		return
	}
	zap.L().Info("serve: batch complete",
		zap.String("run", run.ID),
		zap.Int("total", summary.Total),
		zap.Int("send", summary.Send),
	)
}

func (s *server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns(r.Context(), store.RunFilter{Limit: 50})
	if err != nil {
		zap.L().Error("serve: list runs", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "store failure"})
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
