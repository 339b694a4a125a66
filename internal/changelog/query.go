package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version has no row.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// Upsert writes row into the status table.
//
// Without a table the document is replaced by a generated one. Otherwise the
// first scanRows lines after the separator are searched for a row whose
// version cell equals row.Version; a match is replaced in place, and when
// there is none the row is inserted as the first data row.
func (d *Document) Upsert(row Row, scanRows int) Action {
	if scanRows <= 0 {
		scanRows = DefaultScanRows
	}

	header := d.HeaderIndex()
	if header < 0 {
		d.lines = newDocumentLines(row)
		return ActionCreated
	}

	d.terminate(header)
	insertAt := header + 1
	if insertAt < len(d.lines) && isSeparatorLine(d.lines[insertAt]) {
		d.terminate(insertAt)
	} else {
		d.insert(insertAt, SeparatorRow()+lineEnding(d.lines[header]))
	}
	insertAt++

	for i := insertAt; i < len(d.lines) && i < insertAt+scanRows; i++ {
		if !isRowLine(d.lines[i]) {
			break
		}
		if firstCell(d.lines[i]) == row.Version {
			d.lines[i] = row.String() + lineEnding(d.lines[i])
			return ActionUpdated
		}
	}

	d.insert(insertAt, row.String()+lineEnding(d.lines[header]))
	return ActionInserted
}

// Find returns the row for version among the parsed table rows.
func (d *Document) Find(version string) (*Row, error) {
	rows, err := d.Rows()
	if err != nil {
		return nil, err
	}

	available := make([]string, 0, len(rows))
	for i := range rows {
		if rows[i].Version == version {
			return &rows[i], nil
		}
		available = append(available, rows[i].Version)
	}

	return nil, &VersionNotFoundError{Version: version, AvailableVersions: available}
}

func (d *Document) insert(at int, line string) {
	d.lines = append(d.lines, "")
	copy(d.lines[at+1:], d.lines[at:])
	d.lines[at] = line
}

// terminate makes sure line i ends with a newline before another line follows it.
func (d *Document) terminate(i int) {
	if !strings.HasSuffix(d.lines[i], "\n") {
		d.lines[i] += "\n"
	}
}
