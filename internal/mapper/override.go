package mapper

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/dits-agency/outreach-cli/internal/ingest"
)

// overrideFile is the on-disk shape of a mapping override: canonical field
// name to exact column header.
type overrideFile struct {
	Website  string `yaml:"website,omitempty"`
	Email    string `yaml:"email,omitempty"`
	Name     string `yaml:"name,omitempty"`
	Company  string `yaml:"company,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty"`
}

// LoadOverrides reads a YAML mapping override file.
func LoadOverrides(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "mapper: read override file")
	}

	var of overrideFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return nil, eris.Wrap(err, "mapper: parse override file")
	}

	m := make(Mapping)
	for field, col := range map[Field]string{
		FieldWebsite:  of.Website,
		FieldEmail:    of.Email,
		FieldName:     of.Name,
		FieldCompany:  of.Company,
		FieldLinkedIn: of.LinkedIn,
	} {
		if col != "" {
			m[field] = col
		}
	}
	return m, nil
}

// SaveOverrides writes a mapping in the override file format, so an
// inferred mapping can be pinned and hand-edited.
func SaveOverrides(m Mapping, path string) error {
	of := overrideFile{
		Website:  m[FieldWebsite],
		Email:    m[FieldEmail],
		Name:     m[FieldName],
		Company:  m[FieldCompany],
		LinkedIn: m[FieldLinkedIn],
	}

	data, err := yaml.Marshal(of)
	if err != nil {
		return eris.Wrap(err, "mapper: marshal overrides")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "mapper: write override file")
	}
	return nil
}

// Apply overlays overrides onto an inferred mapping. Overridden columns
// must exist in the table; unknown headers are an error rather than a
// silent drop.
func (m Mapping) Apply(overrides Mapping, t *ingest.Table) (Mapping, error) {
	out := make(Mapping, len(m))
	for f, col := range m {
		out[f] = col
	}
	for f, col := range overrides {
		if t.ColumnIndex(col) < 0 {
			return nil, eris.Errorf("mapper: override column %q for field %q not found in input", col, f)
		}
		out[f] = col
	}
	return out, nil
}
