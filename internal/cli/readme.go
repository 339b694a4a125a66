package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/docsync/internal/errors"
	"github.com/ariel-frischer/docsync/internal/readme"
	"github.com/spf13/cobra"
)

var (
	readmeDryRun bool
	readmeFile   string
	readmeStrict bool
)

var readmeCmd = &cobra.Command{
	Use:   "readme <v_js> <v_bin>",
	Short: "Update the tested-versions block in README.md",
	Long: `Replace the "Phiên bản đã test" block of the README with the given npm (v_js)
and native binary (v_bin) versions.

A missing README or a README without the block is reported but does not fail
the command unless --strict is given, in which case the exit code is 2.`,
	Example: `  docsync readme 1.0.72 1.0.72
  docsync readme 1.0.72 1.0.73 --dry-run
  docsync readme 1.0.72 1.0.72 --file docs/README.vi.md --strict`,
	Args: requireVersions,
	RunE: runReadme,
}

func init() {
	readmeCmd.GroupID = GroupUpdate
	rootCmd.AddCommand(readmeCmd)

	readmeCmd.Flags().BoolVar(&readmeDryRun, "dry-run", false, "Print the new block instead of writing the file")
	readmeCmd.Flags().StringVarP(&readmeFile, "file", "f", "", "README path (default from config: readme_path)")
	readmeCmd.Flags().BoolVar(&readmeStrict, "strict", false, "Exit with code 2 when the README was not updated")
}

func runReadme(cmd *cobra.Command, args []string) error {
	req := readme.Request{
		JSVersion:     args[0],
		BinaryVersion: args[1],
		Path:          pathOr(readmeFile, appConfig.ReadmePath),
		DryRun:        readmeDryRun,
	}

	res, err := readme.NewUpdater(readme.WithLogger(logger)).Update(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("updating %s: %w", req.Path, err)
	}
	reportReadme(cmd, req, res)

	if readmeStrict && !res.Outcome.OK() {
		return NewExitError(ExitNotUpdated)
	}
	return nil
}

func reportReadme(cmd *cobra.Command, req readme.Request, res *readme.Result) {
	out := cmd.OutOrStdout()
	switch res.Outcome {
	case readme.OutcomeUpdated:
		fmt.Fprintf(out, "Successfully updated %s to v%s / v%s\n", res.Path, req.JSVersion, req.BinaryVersion)
	case readme.OutcomeWouldUpdate:
		fmt.Fprintf(out, "Dry run: %s would be updated to:\n---\n%s\n---\n", res.Path, res.Block)
	case readme.OutcomeUnchanged:
		fmt.Fprintf(out, "%s already lists v%s / v%s, no changes needed\n", res.Path, req.JSVersion, req.BinaryVersion)
	case readme.OutcomeFileMissing:
		clierrors.FprintError(cmd.ErrOrStderr(), clierrors.ReadmeNotFound(res.Path))
	case readme.OutcomeBlockNotFound:
		clierrors.FprintError(cmd.ErrOrStderr(), clierrors.VersionBlockNotFound(res.Path))
	}
}
