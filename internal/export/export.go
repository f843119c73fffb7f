// Package export serializes batch results into the full XLSX report and
// the outreach-import CSV.
package export

import (
	"strconv"
	"time"

	"github.com/dits-agency/outreach-cli/internal/model"
)

// reportColumns is the fixed column order of the full report.
var reportColumns = []string{
	"website",
	"email",
	"name",
	"company",
	"linkedin",
	"mobile_performance",
	"accessibility",
	"best_practices",
	"seo",
	"decision",
	"email_subject",
	"email_body",
	"audit_note",
	"timestamp_utc",
	"error",
}

// outreachColumns is the fixed column order of the outreach-import file,
// matched to what the downstream email tooling expects.
var outreachColumns = []string{
	"email",
	"first_name",
	"company",
	"website",
	"linkedin",
	"mobile_performance",
	"email_subject",
	"email_body",
	"audit_note",
}

// buildReportRow maps one ResultRecord to a full-report row.
func buildReportRow(r model.ResultRecord) []string {
	return []string{
		r.Lead.Website,
		r.Lead.Email,
		r.Lead.Name,
		r.Lead.Company,
		r.Lead.LinkedIn,
		scoreStr(r.Scores.MobilePerformance),
		scoreStr(r.Scores.Accessibility),
		scoreStr(r.Scores.BestPractices),
		scoreStr(r.Scores.SEO),
		string(r.Decision.Action),
		r.Decision.Subject,
		r.Decision.Body,
		r.Decision.Note,
		r.Timestamp.UTC().Format(time.RFC3339),
		r.Error,
	}
}

// buildOutreachRow projects a send-decision record to the outreach shape.
func buildOutreachRow(r model.ResultRecord) []string {
	return []string{
		r.Lead.Email,
		r.Lead.Name, // first_name
		r.Lead.Company,
		r.Lead.Website,
		r.Lead.LinkedIn,
		scoreStr(r.Scores.MobilePerformance),
		r.Decision.Subject,
		r.Decision.Body,
		r.Decision.Note,
	}
}

// scoreStr renders a score, keeping absent distinct from zero.
func scoreStr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
