package changelog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ariel-frischer/docsync/internal/testlog"
)

// ValidationError represents a malformed table row with context.
type ValidationError struct {
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var separatorCell = regexp.MustCompile(`^:?-{3,}:?$`)

// Document is a CHANGELOG held as lines. Each line keeps its terminator so
// that untouched lines are written back byte for byte.
type Document struct {
	lines []string
}

// Parse splits content into a Document.
func Parse(content string) *Document {
	if content == "" {
		return &Document{}
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return &Document{lines: lines}
}

// String joins the lines back into file content.
func (d *Document) String() string {
	return strings.Join(d.lines, "")
}

// HeaderIndex returns the index of the table header line, or -1.
func (d *Document) HeaderIndex() int {
	for i, line := range d.lines {
		if isHeaderLine(line) {
			return i
		}
	}
	return -1
}

// Rows parses the data rows directly following the header separator.
// Parsing stops at the first line that is not a table row.
func (d *Document) Rows() ([]Row, error) {
	start := d.HeaderIndex()
	if start < 0 {
		return nil, &ValidationError{Message: "status table header not found"}
	}

	i := start + 1
	if i < len(d.lines) && isSeparatorLine(d.lines[i]) {
		i++
	}

	var rows []Row
	for ; i < len(d.lines) && isRowLine(d.lines[i]); i++ {
		row, err := ParseRow(d.lines[i])
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Line = i + 1
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseRow parses one data line into a Row.
func ParseRow(line string) (Row, error) {
	cells := splitCells(line)
	if len(cells) != ColumnCount {
		return Row{}, &ValidationError{
			Message: fmt.Sprintf("expected %d cells, got %d", ColumnCount, len(cells)),
		}
	}

	row := Row{Version: cells[0], Date: cells[1]}
	for _, c := range cells[2:] {
		s, err := testlog.ParseStatus(c)
		if err != nil {
			return Row{}, &ValidationError{Message: err.Error()}
		}
		row.Statuses = append(row.Statuses, s)
	}
	return row, nil
}

// isHeaderLine matches the header by its two fixed column markers.
func isHeaderLine(line string) bool {
	return strings.Contains(line, "| version |") && strings.Contains(line, "| js |")
}

func isRowLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

func isSeparatorLine(line string) bool {
	if !isRowLine(line) {
		return false
	}
	cells := splitCells(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorCell.MatchString(c) {
			return false
		}
	}
	return true
}

// splitCells returns the trimmed cell values of a table line.
func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// firstCell returns the version cell of a table line.
func firstCell(line string) string {
	cells := splitCells(line)
	if len(cells) == 0 {
		return ""
	}
	return cells[0]
}

// lineEnding returns the terminator of line, defaulting to "\n".
func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
