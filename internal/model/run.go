package model

import "time"

// RunStatus tracks the lifecycle of a batch run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunSummary aggregates the outcome of a completed batch.
type RunSummary struct {
	Total   int `json:"total"`
	Send    int `json:"send"`
	Skip    int `json:"skip"`
	Errored int `json:"errored"`
}

// Run is one recorded batch over an input file.
type Run struct {
	ID        string      `json:"id"`
	InputFile string      `json:"input_file"`
	Status    RunStatus   `json:"status"`
	Total     int         `json:"total"`
	Processed int         `json:"processed"`
	Summary   *RunSummary `json:"summary,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Summarize computes a RunSummary from a slice of result records.
func Summarize(records []ResultRecord) *RunSummary {
	s := &RunSummary{Total: len(records)}
	for _, r := range records {
		switch r.Decision.Action {
		case ActionSend:
			s.Send++
		default:
			s.Skip++
		}
		if r.Error != "" {
			s.Errored++
		}
	}
	return s
}
