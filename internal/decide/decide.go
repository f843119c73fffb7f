// Package decide maps a mobile performance score to an outreach decision.
package decide

import (
	"fmt"

	"github.com/dits-agency/outreach-cli/internal/model"
)

// Notes for the skip branches.
const (
	NoteScoreUnavailable = "Score not available"
	NoteHighPerformance  = "Performance is 90+ (no outreach)"
	NoteAnalysisError    = "Error during analysis"
)

// Decide is a pure function from (performance score, optional name) to an
// outreach decision. A nil score means the service reported nothing.
// Scores of 91+ skip outreach; everything else falls into exactly one of
// the buckets [0,50], [51,75], [76,90].
func Decide(perf *int, name string) model.Decision {
	if perf == nil {
		return model.Decision{Action: model.ActionSkip, Note: NoteScoreUnavailable}
	}

	p := *perf
	if p >= 91 {
		return model.Decision{Action: model.ActionSkip, Note: NoteHighPerformance}
	}

	var subject, body, bucket string
	switch {
	case p <= 50:
		subject, body, bucket = subjectLow, bodyLow, "0-50"
	case p <= 75:
		subject, body, bucket = subjectMid, bodyMid, "51-75"
	default: // 76-90
		subject, body, bucket = subjectHigh, bodyHigh, "76-90"
	}

	return model.Decision{
		Action:  model.ActionSend,
		Subject: subject,
		Body:    greeting(name) + body,
		Note:    fmt.Sprintf("Mobile performance %d. Offer depends on bucket %s", p, bucket),
	}
}

// ErrorDecision is the decision recorded when scoring a row failed
// entirely. Kept here so the batch runner and tests share one definition.
func ErrorDecision() model.Decision {
	return model.Decision{Action: model.ActionSkip, Note: NoteAnalysisError}
}
