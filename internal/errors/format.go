package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// UseColor reports whether output to w should be colored: w must be a
// terminal and color must not be disabled (NO_COLOR, --plain).
func UseColor(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

func formatError(err *CLIError, useColors bool) string {
	paint := func(f func(a ...any) string, s string) string {
		if useColors {
			return f(s)
		}
		return s
	}

	var sb strings.Builder

	sb.WriteString(paint(errorLabel, "Error"))
	sb.WriteString(" [")
	sb.WriteString(paint(categoryFmt, err.Category.String()))
	sb.WriteString("]: ")
	sb.WriteString(paint(errorMsg, err.Message))
	sb.WriteString("\n")

	if err.Usage != "" {
		sb.WriteString("\n")
		sb.WriteString(paint(usageLabel, "Usage: "))
		sb.WriteString(paint(usageText, err.Usage))
		sb.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(paint(fixLabel, "To fix this:"))
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			sb.WriteString("  ")
			sb.WriteString(paint(bullet, "•"))
			sb.WriteString(" ")
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to w, with colors only when w is a terminal.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, formatError(err, UseColor(w)))
}

// FprintAny prints err to w. CLIErrors keep their structure; other errors are
// shown as runtime errors.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = Wrap(err, Runtime)
	}
	FprintError(w, cliErr)
}
