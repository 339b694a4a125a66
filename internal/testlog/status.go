package testlog

import "fmt"

// Status is the outcome recorded for one platform in the CHANGELOG table.
// Its value is the symbol written into the table cell.
type Status string

const (
	Passed  Status = "✅"
	Failed  Status = "❌"
	Ignored Status = "⚪"
)

// Name returns the lowercase word for the status.
func (s Status) Name() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the three table symbols.
func (s Status) Valid() bool {
	return s == Passed || s == Failed || s == Ignored
}

// ParseStatus accepts either a table symbol or a status name.
func ParseStatus(v string) (Status, error) {
	if s := Status(v); s.Valid() {
		return s, nil
	}
	switch v {
	case "passed":
		return Passed, nil
	case "failed":
		return Failed, nil
	case "ignored":
		return Ignored, nil
	}
	return "", fmt.Errorf("invalid status %q (expected ✅, ❌ or ⚪)", v)
}
