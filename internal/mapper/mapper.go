// Package mapper infers which input columns correspond to the canonical
// lead fields. Matching runs in two passes: exact header-synonym lookup,
// then content sniffing over a bounded sample of rows.
package mapper

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/dits-agency/outreach-cli/internal/ingest"
	"github.com/dits-agency/outreach-cli/internal/model"
)

// Field is a canonical lead field.
type Field string

const (
	FieldWebsite  Field = "website"
	FieldEmail    Field = "email"
	FieldName     Field = "name"
	FieldCompany  Field = "company"
	FieldLinkedIn Field = "linkedin"
)

// Fields lists all canonical fields in matching order.
var Fields = []Field{FieldWebsite, FieldEmail, FieldName, FieldCompany, FieldLinkedIn}

// Mapping associates canonical fields with original column headers.
// Unmapped fields are simply absent from the map.
type Mapping map[Field]string

// sampleRows bounds how many data rows content sniffing inspects.
const sampleRows = 30

// sniffing thresholds: website/email need at least 3 matching sampled
// values, linkedin needs at least 2.
const (
	urlThreshold      = 3
	emailThreshold    = 3
	linkedinThreshold = 2
)

// MapColumns infers a column mapping for a table. The result is advisory:
// callers may override individual fields before validating.
func MapColumns(t *ingest.Table) Mapping {
	m := make(Mapping)
	claimed := make(map[int]bool)

	// Pass 1: exact match of normalized headers against per-field synonyms.
	for _, field := range Fields {
		syn := synonyms[field]
		for i, h := range t.Headers {
			if claimed[i] {
				continue
			}
			if syn[normalizeHeader(h)] {
				m[field] = h
				claimed[i] = true
				break
			}
		}
	}

	// Pass 2: content sniffing for still-unmapped fields, over unclaimed
	// columns only.
	if _, ok := m[FieldWebsite]; !ok {
		if i := bestColumn(t, claimed, looksLikeURL, urlThreshold); i >= 0 {
			m[FieldWebsite] = t.Headers[i]
			claimed[i] = true
		}
	}
	if _, ok := m[FieldEmail]; !ok {
		if i := bestColumn(t, claimed, looksLikeEmail, emailThreshold); i >= 0 {
			m[FieldEmail] = t.Headers[i]
			claimed[i] = true
		}
	}
	if _, ok := m[FieldLinkedIn]; !ok {
		// Unlike website/email this takes the FIRST qualifying column, not
		// the best-scoring one. The asymmetry is deliberate and preserved.
		if i := firstColumn(t, claimed, looksLikeLinkedIn, linkedinThreshold); i >= 0 {
			m[FieldLinkedIn] = t.Headers[i]
			claimed[i] = true
		}
	}

	return m
}

// Validate checks that the mandatory website field is mapped.
func (m Mapping) Validate() error {
	if m[FieldWebsite] == "" {
		return eris.New("mapper: no website column found; add a recognizable header or supply a mapping override")
	}
	return nil
}

// Leads materializes Lead values from the table using the mapping. Every
// data row yields a lead, empty website cell included; the runner records
// those as per-row errors so the report stays one row per input row.
func Leads(t *ingest.Table, m Mapping) []model.Lead {
	idx := func(f Field) int {
		name, ok := m[f]
		if !ok {
			return -1
		}
		return t.ColumnIndex(name)
	}
	wIdx, eIdx, nIdx, cIdx, lIdx := idx(FieldWebsite), idx(FieldEmail), idx(FieldName), idx(FieldCompany), idx(FieldLinkedIn)

	leads := make([]model.Lead, 0, len(t.Rows))
	for row := range t.Rows {
		leads = append(leads, model.Lead{
			Website:  t.Cell(row, wIdx),
			Email:    t.Cell(row, eIdx),
			Name:     t.Cell(row, nIdx),
			Company:  t.Cell(row, cIdx),
			LinkedIn: t.Cell(row, lIdx),
		})
	}
	return leads
}

// normalizeHeader collapses internal whitespace, trims, and lowercases.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// bestColumn scores every unclaimed column by how many sampled values
// satisfy pred and returns the highest-scoring column index, or -1 when no
// column reaches the threshold. Ties go to the leftmost column.
func bestColumn(t *ingest.Table, claimed map[int]bool, pred func(string) bool, threshold int) int {
	best, bestScore := -1, 0
	limit := min(sampleRows, len(t.Rows))

	for col := range t.Headers {
		if claimed[col] {
			continue
		}
		score := 0
		for row := 0; row < limit; row++ {
			if v := t.Cell(row, col); v != "" && pred(v) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = col, score
		}
	}

	if bestScore >= threshold {
		return best
	}
	return -1
}

// firstColumn returns the first unclaimed column where at least threshold
// sampled values satisfy pred, or -1.
func firstColumn(t *ingest.Table, claimed map[int]bool, pred func(string) bool, threshold int) int {
	limit := min(sampleRows, len(t.Rows))

	for col := range t.Headers {
		if claimed[col] {
			continue
		}
		score := 0
		for row := 0; row < limit; row++ {
			if v := t.Cell(row, col); v != "" && pred(v) {
				score++
			}
		}
		if score >= threshold {
			return col
		}
	}
	return -1
}

func looksLikeURL(v string) bool {
	v = strings.ToLower(v)
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.Contains(v, "www.")
}

func looksLikeEmail(v string) bool {
	return strings.Contains(v, "@") && strings.Contains(v, ".") && !strings.ContainsAny(v, " \t")
}

func looksLikeLinkedIn(v string) bool {
	return strings.Contains(strings.ToLower(v), "linkedin.com")
}
