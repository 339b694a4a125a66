package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/docsync/internal/platform"
	"github.com/ariel-frischer/docsync/internal/testlog"
	"github.com/fatih/color"
)

// statusStyles maps statuses to their terminal color.
var statusStyles = map[testlog.Status]*color.Color{
	testlog.Passed:  color.New(color.FgGreen),
	testlog.Failed:  color.New(color.FgRed),
	testlog.Ignored: color.New(color.Faint),
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain bool // Disable colors; print raw Markdown rows
}

// FormatRows writes rows to the writer, newest first, one block per version.
func FormatRows(rows []Row, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		return formatPlain(rows, w)
	}

	for i, row := range rows {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := FormatRow(row, w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", row.Version, err)
		}
	}
	return nil
}

// FormatRow writes a single version with one line per platform.
func FormatRow(row Row, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		return formatPlain([]Row{row}, w)
	}

	bold := color.New(color.Bold).SprintFunc()
	if _, err := fmt.Fprintf(w, "## %s (%s)\n", bold("v"+row.Version), row.Date); err != nil {
		return err
	}

	width := columnWidth()
	for _, p := range platform.All() {
		s := row.Status(p.Column)
		label := fmt.Sprintf("  %-*s", width, p.Column)
		if _, err := fmt.Fprintf(w, "%s %s\n", label, FormatStatus(s, opts)); err != nil {
			return err
		}
	}
	return nil
}

// FormatStatus renders a status symbol followed by its name.
func FormatStatus(s testlog.Status, opts FormatOptions) string {
	text := fmt.Sprintf("%s %s", s, s.Name())
	if opts.Plain {
		return text
	}
	if c, ok := statusStyles[s]; ok {
		return c.Sprint(text)
	}
	return text
}

func formatPlain(rows []Row, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n", HeaderRow(), SeparatorRow()); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	return nil
}

// columnWidth returns the width of the longest platform column name.
func columnWidth() int {
	width := 0
	for _, c := range platform.Columns() {
		width = max(width, len(c))
	}
	return width
}

// SummaryLine returns a one-line count of statuses, e.g. "6 passed, 1 ignored".
func SummaryLine(statuses []testlog.Status) string {
	counts := map[testlog.Status]int{}
	for _, s := range statuses {
		counts[s]++
	}

	var parts []string
	for _, s := range []testlog.Status{testlog.Passed, testlog.Failed, testlog.Ignored} {
		if counts[s] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[s], s.Name()))
		}
	}
	if len(parts) == 0 {
		return "no platforms"
	}
	return strings.Join(parts, ", ")
}
