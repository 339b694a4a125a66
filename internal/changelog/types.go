package changelog

import (
	"strings"

	"github.com/ariel-frischer/docsync/internal/platform"
	"github.com/ariel-frischer/docsync/internal/testlog"
)

const (
	// Title is the first line of a freshly created CHANGELOG.
	Title = "# Local Changelog & Testing State"
	// Description follows the title in a freshly created CHANGELOG.
	Description = "Automated testing history for new Claude Code versions."

	// DateLayout is the format of the date column.
	DateLayout = "2006-01-02"

	// DefaultScanRows bounds how many data rows are searched for an existing version.
	DefaultScanRows = 15
)

// fixedColumns precede the per-platform status columns.
var fixedColumns = []string{"version", "date"}

// ColumnCount is the number of cells in every table row.
var ColumnCount = len(fixedColumns) + len(platform.All())

// HeaderRow returns the table header line (without newline).
func HeaderRow() string {
	return joinCells(append(append([]string{}, fixedColumns...), platform.Columns()...))
}

// SeparatorRow returns the header separator line (without newline).
func SeparatorRow() string {
	cells := make([]string, ColumnCount)
	for i := range cells {
		cells[i] = "---"
	}
	return joinCells(cells)
}

// Row is one data row of the status table.
type Row struct {
	Version  string           `json:"version" yaml:"version"`
	Date     string           `json:"date" yaml:"date"`
	Statuses []testlog.Status `json:"statuses" yaml:"statuses"`
}

// NewRow builds a row from a version, a date and statuses in column order.
func NewRow(version, date string, statuses []testlog.Status) Row {
	return Row{Version: version, Date: date, Statuses: statuses}
}

// Cells returns the row as ordered cell values.
func (r Row) Cells() []string {
	cells := make([]string, 0, len(fixedColumns)+len(r.Statuses))
	cells = append(cells, r.Version, r.Date)
	for _, s := range r.Statuses {
		cells = append(cells, string(s))
	}
	return cells
}

// String renders the row as a Markdown table line (without newline).
func (r Row) String() string {
	return joinCells(r.Cells())
}

// Status returns the status recorded for a platform column, or "" if unknown.
func (r Row) Status(column string) testlog.Status {
	for i, c := range platform.Columns() {
		if c == column && i < len(r.Statuses) {
			return r.Statuses[i]
		}
	}
	return ""
}

// Action describes what an upsert did to the document.
type Action string

const (
	// ActionCreated means no table existed and the document was generated.
	ActionCreated Action = "created"
	// ActionInserted means the row was added as the newest data row.
	ActionInserted Action = "inserted"
	// ActionUpdated means an existing row for the version was replaced.
	ActionUpdated Action = "updated"
)

func joinCells(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
