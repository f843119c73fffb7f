package export

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"

	"github.com/dits-agency/outreach-cli/internal/model"
)

// WriteOutreachCSV writes the outreach-import file: only records with a
// send decision, projected to the fixed outreach columns. The header row
// is always written, even when no record qualifies.
func WriteOutreachCSV(records []model.ResultRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create outreach file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(outreachColumns); err != nil {
		return eris.Wrap(err, "export: write outreach header")
	}

	for _, r := range records {
		if r.Decision.Action != model.ActionSend {
			continue
		}
		if err := w.Write(buildOutreachRow(r)); err != nil {
			return eris.Wrap(err, "export: write outreach row")
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "export: flush outreach file")
}
