// Package csvio reads and writes the CSV interchange format for contacts.
// The column set is the mutable field set only: ids and creation timestamps
// are assigned by the store on import, never carried over.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"gitlab.com/dirk.krummacker/contacts-desk/internal/model"
	"gitlab.com/dirk.krummacker/contacts-desk/internal/validate"
)

var header = []string{"name", "email", "phone", "company", "tags", "notes"}

// Export writes the contacts as CSV and returns the number of data rows
// written.
func Export(w io.Writer, contacts []model.Contact) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range contacts {
		record := []string{c.Name, c.Email, c.Phone, c.Company, c.Tags, c.Notes}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(contacts), nil
}

// Read parses CSV with the header produced by Export. Columns may appear in
// any order; unknown columns are ignored. Rows with a blank name are skipped.
// A row that fails validation aborts the import with its line number.
func Read(r io.Reader) ([]model.Fields, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := map[string]int{}
	for i, name := range head {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("csv header is missing the name column")
	}

	cell := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var fields []model.Fields
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		f := model.Fields{
			Name:    cell(record, "name"),
			Email:   cell(record, "email"),
			Phone:   cell(record, "phone"),
			Company: cell(record, "company"),
			Tags:    cell(record, "tags"),
			Notes:   cell(record, "notes"),
		}
		if f.Name == "" {
			continue
		}
		if err := validate.Fields(f); err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		fields = append(fields, f)
	}
	return fields, nil
}
