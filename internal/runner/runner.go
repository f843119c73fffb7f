// Package runner executes a batch of leads against the scoring client,
// one row at a time, and aggregates per-row results.
package runner

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dits-agency/outreach-cli/internal/decide"
	"github.com/dits-agency/outreach-cli/internal/model"
	"github.com/dits-agency/outreach-cli/pkg/pagespeed"
)

// maxErrorLen caps the error text embedded in a result record.
const maxErrorLen = 300

// ProgressFunc is invoked after each processed row.
type ProgressFunc func(done, total int, website string)

// Config holds runner knobs.
type Config struct {
	// Delay paces rows to respect the scoring API's rate limits.
	// Zero disables pacing.
	Delay time.Duration
	// Progress, when set, observes per-row completion.
	Progress ProgressFunc
}

// Runner scores leads sequentially and never aborts a batch on an
// individual row failure.
type Runner struct {
	client   pagespeed.Client
	limiter  *rate.Limiter
	progress ProgressFunc
}

// New creates a Runner around a scoring client.
func New(client pagespeed.Client, cfg Config) *Runner {
	r := &Runner{
		client:   client,
		progress: cfg.Progress,
	}
	if cfg.Delay > 0 {
		r.limiter = rate.NewLimiter(rate.Every(cfg.Delay), 1)
	}
	return r
}

// Run processes leads in input order. Every lead yields exactly one
// ResultRecord: scoring errors are embedded in the record, not propagated.
// Rows are strictly sequential; each network call completes before the
// next row starts. Run stops early only when ctx is cancelled, returning
// the records accumulated so far.
func (r *Runner) Run(ctx context.Context, leads []model.Lead) ([]model.ResultRecord, error) {
	records := make([]model.ResultRecord, 0, len(leads))
	total := len(leads)

	for i, lead := range leads {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return records, err
			}
		} else if err := ctx.Err(); err != nil {
			return records, err
		}

		records = append(records, r.processLead(ctx, lead))

		zap.L().Info("runner: row done",
			zap.Int("row", i+1),
			zap.Int("total", total),
			zap.String("website", lead.Website),
			zap.String("action", string(records[i].Decision.Action)),
		)
		if r.progress != nil {
			r.progress(i+1, total, lead.Website)
		}
	}

	return records, nil
}

// processLead scores one lead and builds its record. The error path still
// produces a complete record with a skip decision.
func (r *Runner) processLead(ctx context.Context, lead model.Lead) model.ResultRecord {
	rec := model.ResultRecord{
		Lead:      lead,
		Timestamp: time.Now().UTC(),
	}

	if lead.Website == "" {
		zap.L().Warn("runner: row has no website url")
		rec.Decision = decide.ErrorDecision()
		rec.Error = "no website url"
		return rec
	}

	scores, err := r.client.FetchScores(ctx, lead.Website)
	if err != nil {
		zap.L().Warn("runner: scoring failed",
			zap.String("website", lead.Website),
			zap.Error(err),
		)
		rec.Decision = decide.ErrorDecision()
		rec.Error = truncate(err.Error(), maxErrorLen)
		return rec
	}

	rec.Scores = model.ScoreSet{
		MobilePerformance: scores.Performance,
		Accessibility:     scores.Accessibility,
		BestPractices:     scores.BestPractices,
		SEO:               scores.SEO,
	}
	rec.Decision = decide.Decide(scores.Performance, lead.Name)
	return rec
}

// truncate keeps at most n characters, never splitting a rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
