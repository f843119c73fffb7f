// Package model defines the core domain types shared across the CLI.
package model

import "time"

// Lead is one input row: a prospect and their website. Only Website is
// required; the remaining fields default to empty strings when the input
// sheet does not carry them.
type Lead struct {
	Website  string `json:"website"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	LinkedIn string `json:"linkedin"`
}

// ScoreSet holds the four PageSpeed category scores, each 0-100.
// A nil score means the service did not report that category, which is
// distinct from a score of zero.
type ScoreSet struct {
	MobilePerformance *int `json:"mobile_performance"`
	Accessibility     *int `json:"accessibility"`
	BestPractices     *int `json:"best_practices"`
	SEO               *int `json:"seo"`
}

// Action is the outreach decision for a lead.
type Action string

const (
	ActionSend Action = "send"
	ActionSkip Action = "skip"
)

// Decision is the outcome of the decision engine for one lead. Skip
// decisions carry only a note; send decisions carry the full email.
type Decision struct {
	Action  Action `json:"action"`
	Subject string `json:"email_subject"`
	Body    string `json:"email_body"`
	Note    string `json:"audit_note"`
}

// ResultRecord is the terminal per-row entity: the lead, its scores, the
// decision, and an optional error message when scoring failed. Exactly one
// record exists per input row, in input order.
type ResultRecord struct {
	Lead      Lead      `json:"lead"`
	Scores    ScoreSet  `json:"scores"`
	Decision  Decision  `json:"decision"`
	Timestamp time.Time `json:"timestamp_utc"`
	Error     string    `json:"error,omitempty"`
}
