package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/docsync/internal/changelog"
	clierrors "github.com/ariel-frischer/docsync/internal/errors"
	"github.com/spf13/cobra"
)

var (
	changelogFile   string
	changelogLog    string
	changelogDryRun bool

	changelogShowFile  string
	changelogShowLast  int
	changelogShowPlain bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog <v_js> <v_bin>",
	Short: "Record per-platform test results in CHANGELOG.md",
	Long: `Derive a ✅ / ❌ / ⚪ status for every platform from the test log and write
a row for v_js into the CHANGELOG status table.

An existing row for the same version is overwritten in place; otherwise the
row is inserted above the previous newest one. A CHANGELOG without a table is
replaced by a freshly generated one. A missing test log marks every platform
as failed.`,
	Example: `  docsync changelog 1.0.72 1.0.72
  docsync changelog 1.0.72 1.0.73 --log out/combined_test_output.log
  docsync changelog 1.0.72 1.0.72 --dry-run`,
	Args: requireVersions,
	RunE: runChangelog,
}

var changelogShowCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Show recorded test results from CHANGELOG.md",
	Long: `Show rows of the CHANGELOG status table.

By default, shows the 5 most recent versions. Pass a version to see only
that row, or use --last to control how many rows are shown.`,
	Example: `  docsync changelog show
  docsync changelog show 1.0.72
  docsync changelog show --last 10 --plain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChangelogShow,
}

func init() {
	changelogCmd.GroupID = GroupUpdate
	changelogCmd.AddCommand(changelogShowCmd)
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().StringVarP(&changelogFile, "file", "f", "", "CHANGELOG path (default from config: changelog_path)")
	changelogCmd.Flags().StringVarP(&changelogLog, "log", "l", "", "Test log path (default from config: log_path)")
	changelogCmd.Flags().BoolVar(&changelogDryRun, "dry-run", false, "Print the row instead of writing the file")

	changelogShowCmd.Flags().StringVarP(&changelogShowFile, "file", "f", "", "CHANGELOG path (default from config: changelog_path)")
	changelogShowCmd.Flags().IntVar(&changelogShowLast, "last", 5, "Number of versions to show")
	changelogShowCmd.Flags().BoolVar(&changelogShowPlain, "plain", false, "Print raw Markdown rows without colors")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	req := changelog.Request{
		JSVersion:     args[0],
		BinaryVersion: args[1],
		Path:          pathOr(changelogFile, appConfig.ChangelogPath),
		LogPath:       pathOr(changelogLog, appConfig.LogPath),
		DryRun:        changelogDryRun,
	}

	res, err := newChangelogUpdater().Update(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("updating %s: %w", req.Path, err)
	}
	reportChangelog(cmd, res)
	return nil
}

func newChangelogUpdater() *changelog.Updater {
	return changelog.NewUpdater(
		changelog.WithScanRows(appConfig.ScanRows),
		changelog.WithLogger(logger),
	)
}

func reportChangelog(cmd *cobra.Command, res *changelog.Result) {
	if res.Report.LogMissing {
		logger.Warnf("test log %s not found, every platform is recorded as failed", res.Report.LogPath)
	}

	out := cmd.OutOrStdout()
	if !res.Written {
		fmt.Fprintf(out, "Dry run: %s would get this row (%s):\n%s\n", res.Path, res.Action, res.Row)
		return
	}
	fmt.Fprintf(out, "Successfully updated %s for v%s\n", res.Path, res.Row.Version)
}

func runChangelogShow(cmd *cobra.Command, args []string) error {
	path := pathOr(changelogShowFile, appConfig.ChangelogPath)
	doc, err := newChangelogUpdater().Load(path)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Prerequisite,
			"cannot show recorded results",
			"Run 'docsync changelog <v_js> <v_bin>' first to create the table")
	}

	opts := changelog.FormatOptions{Plain: changelogShowPlain}
	out := cmd.OutOrStdout()

	if doc.HeaderIndex() < 0 {
		if len(args) == 1 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found in %s.\n", args[0], path)
			return NewExitError(ExitFailure)
		}
		fmt.Fprintf(out, "No versions recorded in %s.\n", path)
		return nil
	}

	if len(args) == 1 {
		row, err := doc.Find(args[0])
		if err != nil {
			var notFound *changelog.VersionNotFoundError
			if errors.As(err, &notFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found in %s.\n", notFound.Version, path)
				return NewExitError(ExitFailure)
			}
			return malformedTable(path, err)
		}
		return changelog.FormatRow(*row, out, opts)
	}

	rows, err := doc.Rows()
	if err != nil {
		return malformedTable(path, err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(out, "No versions recorded in %s.\n", path)
		return nil
	}

	shown := rows
	if changelogShowLast > 0 && len(rows) > changelogShowLast {
		shown = rows[:changelogShowLast]
	}
	if err := changelog.FormatRows(shown, out, opts); err != nil {
		return fmt.Errorf("formatting rows: %w", err)
	}
	if len(shown) < len(rows) {
		fmt.Fprintf(out, "\n(%d of %d versions shown. Use --last %d to see all)\n",
			len(shown), len(rows), len(rows))
	}
	return nil
}

func malformedTable(path string, err error) error {
	if changelog.IsValidationError(err) {
		return clierrors.WrapWithMessage(err, clierrors.Prerequisite,
			fmt.Sprintf("malformed status table in %s", path),
			"Check the table header: | version | date | js | ... |",
			"Every data row needs 9 cells with a status symbol (✅ ❌ ⚪) per platform")
	}
	return fmt.Errorf("reading %s: %w", path, err)
}
