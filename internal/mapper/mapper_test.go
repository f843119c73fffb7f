package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dits-agency/outreach-cli/internal/ingest"
)

func table(headers []string, rows ...[]string) *ingest.Table {
	return &ingest.Table{Headers: headers, Rows: rows}
}

func repeat(row []string, n int) [][]string {
	out := make([][]string, n)
	for i := range out {
		out[i] = row
	}
	return out
}

func TestMapColumns_SynonymMatch(t *testing.T) {
	tab := table([]string{"Company URL", "Contact Email", "First Name", "Business Name", "LinkedIn Profile"})

	m := MapColumns(tab)

	assert.Equal(t, "Company URL", m[FieldWebsite])
	assert.Equal(t, "Contact Email", m[FieldEmail])
	assert.Equal(t, "First Name", m[FieldName])
	assert.Equal(t, "Business Name", m[FieldCompany])
	assert.Equal(t, "LinkedIn Profile", m[FieldLinkedIn])
}

func TestMapColumns_HeaderNormalization(t *testing.T) {
	tab := table([]string{"  Company   URL  ", "E-MAIL"})

	m := MapColumns(tab)

	assert.Equal(t, "  Company   URL  ", m[FieldWebsite])
	assert.Equal(t, "E-MAIL", m[FieldEmail])
}

func TestMapColumns_FirstSynonymColumnWins(t *testing.T) {
	tab := table([]string{"URL", "Website"})

	m := MapColumns(tab)

	assert.Equal(t, "URL", m[FieldWebsite])
}

func TestMapColumns_ContentSniffWebsite(t *testing.T) {
	rows := [][]string{
		{"x", "https://a.com"},
		{"y", "https://b.com"},
		{"z", "https://c.com"},
	}
	tab := table([]string{"Mystery1", "Mystery2"}, rows...)

	m := MapColumns(tab)

	assert.Equal(t, "Mystery2", m[FieldWebsite])
}

func TestMapColumns_WebsiteThresholdStrict(t *testing.T) {
	// Only 2 URL-shaped values: below the >=3 threshold, must stay unmapped.
	rows := [][]string{
		{"https://a.com"},
		{"https://b.com"},
		{"not a url"},
	}
	tab := table([]string{"Mystery"}, rows...)

	m := MapColumns(tab)

	_, ok := m[FieldWebsite]
	assert.False(t, ok)
	assert.Error(t, m.Validate())
}

func TestMapColumns_WebsiteBestScoringWins(t *testing.T) {
	rows := [][]string{
		{"www.a.com", "https://a.com"},
		{"plain", "https://b.com"},
		{"www.c.com", "https://c.com"},
		{"plain", "https://d.com"},
	}
	tab := table([]string{"Col A", "Col B"}, rows...)

	m := MapColumns(tab)

	// Col A scores 2, Col B scores 4: best wins even though A is first.
	assert.Equal(t, "Col B", m[FieldWebsite])
}

func TestMapColumns_SampleWindowIs30Rows(t *testing.T) {
	// URL-shaped values only beyond row 30 must not count.
	rows := repeat([]string{"plain"}, 30)
	rows = append(rows,
		[]string{"https://a.com"},
		[]string{"https://b.com"},
		[]string{"https://c.com"},
	)
	tab := table([]string{"Mystery"}, rows...)

	m := MapColumns(tab)

	_, ok := m[FieldWebsite]
	assert.False(t, ok)
}

func TestMapColumns_ContentSniffEmail(t *testing.T) {
	rows := [][]string{
		{"https://a.com", "a@a.com"},
		{"https://b.com", "b@b.io"},
		{"https://c.com", "c@c.dev"},
	}
	tab := table([]string{"Site", "Mystery"}, rows...)

	m := MapColumns(tab)

	assert.Equal(t, "Site", m[FieldWebsite]) // synonym pass
	assert.Equal(t, "Mystery", m[FieldEmail])
}

func TestMapColumns_EmailRejectsWhitespace(t *testing.T) {
	rows := [][]string{
		{"a @a.com"},
		{"b @b.com"},
		{"c @c.com"},
	}
	tab := table([]string{"Mystery"}, rows...)

	m := MapColumns(tab)

	_, ok := m[FieldEmail]
	assert.False(t, ok)
}

func TestMapColumns_LinkedInFirstQualifyingWins(t *testing.T) {
	// Two qualifying columns; linkedin uses first-qualifying, not
	// best-scoring, unlike website/email.
	rows := [][]string{
		{"linkedin.com/in/a", "linkedin.com/in/x"},
		{"linkedin.com/in/b", "linkedin.com/in/y"},
		{"plain", "linkedin.com/in/z"},
	}
	tab := table([]string{"Col A", "Col B"}, rows...)

	m := MapColumns(tab)

	assert.Equal(t, "Col A", m[FieldLinkedIn])
}

func TestMapColumns_LinkedInThreshold(t *testing.T) {
	rows := [][]string{
		{"linkedin.com/in/a"},
		{"plain"},
		{"plain"},
	}
	tab := table([]string{"Mystery"}, rows...)

	m := MapColumns(tab)

	_, ok := m[FieldLinkedIn]
	assert.False(t, ok)
}

func TestMapColumns_ClaimedColumnNotReused(t *testing.T) {
	// A single URL-shaped column claimed by the website synonym pass must
	// not also be sniffed as linkedin/email.
	rows := [][]string{
		{"https://www.linkedin.com/company/a"},
		{"https://www.linkedin.com/company/b"},
		{"https://www.linkedin.com/company/c"},
	}
	tab := table([]string{"Website"}, rows...)

	m := MapColumns(tab)

	assert.Equal(t, "Website", m[FieldWebsite])
	_, ok := m[FieldLinkedIn]
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Mapping{}.Validate())
	assert.NoError(t, Mapping{FieldWebsite: "Site"}.Validate())
}

func TestLeads(t *testing.T) {
	tab := table(
		[]string{"Site", "Email", "Name"},
		[]string{"http://a.com", "a@a.com", "Alice"},
		[]string{"", "b@b.com", "Bob"},
		[]string{"http://c.com"}, // ragged row
	)
	m := Mapping{FieldWebsite: "Site", FieldEmail: "Email", FieldName: "Name"}

	leads := Leads(tab, m)

	// One lead per data row, including the empty-website one.
	require.Len(t, leads, 3)
	assert.Equal(t, "http://a.com", leads[0].Website)
	assert.Equal(t, "Alice", leads[0].Name)
	assert.Equal(t, "", leads[1].Website)
	assert.Equal(t, "Bob", leads[1].Name)
	assert.Equal(t, "http://c.com", leads[2].Website)
	assert.Equal(t, "", leads[2].Email)
	assert.Equal(t, "", leads[2].Company) // unmapped field defaults empty
}

func TestOverrides_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	m := Mapping{FieldWebsite: "Company URL", FieldEmail: "Work Email"}

	require.NoError(t, SaveOverrides(m, path))

	loaded, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}

func TestOverrides_LoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte("website: Custom Col\n"), 0o644))

	m, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, Mapping{FieldWebsite: "Custom Col"}, m)
}

func TestApply(t *testing.T) {
	tab := table([]string{"Site", "Mail"})
	inferred := Mapping{FieldWebsite: "Site"}

	merged, err := inferred.Apply(Mapping{FieldEmail: "Mail"}, tab)
	require.NoError(t, err)
	assert.Equal(t, "Site", merged[FieldWebsite])
	assert.Equal(t, "Mail", merged[FieldEmail])

	_, err = inferred.Apply(Mapping{FieldEmail: "Nope"}, tab)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found in input")
}
