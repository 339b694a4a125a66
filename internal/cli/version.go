package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/docsync/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/docsync"

const defaultTerminalWidth = 80

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for docsync",
	Example: `  # Show version info
  docsync version

  # Plain output (for scripts)
  docsync version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout())
	},
}

func init() {
	versionCmd.GroupID = GroupInspect
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	info := version.Get()
	fmt.Fprintf(w, "docsync %s\n", info.Version)
	fmt.Fprintf(w, "commit: %s\n", info.Commit)
	fmt.Fprintf(w, "built: %s\n", info.BuildDate)
	fmt.Fprintf(w, "go: %s\n", info.GoVersion)
	fmt.Fprintf(w, "platform: %s\n", info.Platform)
}

// printPrettyVersion prints the build information inside a box sized to the terminal.
func printPrettyVersion(w io.Writer) {
	info := version.Get()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	rows := []struct{ label, value string }{
		{"Version", info.Version},
		{"Commit", truncateCommit(info.Commit)},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}

	boxWidth := min(44, terminalWidth(w)-2)
	inner := boxWidth - 2

	fmt.Fprintln(w, cyan("docsync"), dim("README & CHANGELOG sync for patch test runs"))
	fmt.Fprintln(w, "╭"+strings.Repeat("─", inner)+"╮")
	for _, r := range rows {
		text := fmt.Sprintf(" %10s  %s", r.label, r.value)
		pad := max(0, inner-len([]rune(text)))
		fmt.Fprintf(w, "│ %s  %s%s│\n", yellow(fmt.Sprintf("%10s", r.label)), r.value, strings.Repeat(" ", pad))
	}
	fmt.Fprintln(w, "╰"+strings.Repeat("─", inner)+"╯")
	if version.IsDevBuild() {
		fmt.Fprintln(w, dim("development build (version not set via -ldflags)"))
	}
	fmt.Fprintln(w, dim(SourceURL))
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
