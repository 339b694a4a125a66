package cli

import (
	"fmt"

	"github.com/ariel-frischer/docsync/internal/changelog"
	"github.com/ariel-frischer/docsync/internal/readme"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync <v_js> <v_bin>",
	Short: "Update README.md and CHANGELOG.md in one go",
	Long: `Run the README and CHANGELOG updates side by side, using the paths from
configuration. Results are reported in a fixed order once both are done.`,
	Example: `  docsync sync 1.0.72 1.0.72
  docsync sync 1.0.72 1.0.73 --dry-run`,
	Args: requireVersions,
	RunE: runSync,
}

func init() {
	syncCmd.GroupID = GroupUpdate
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Show what would change without writing files")
}

func runSync(cmd *cobra.Command, args []string) error {
	readmeReq := readme.Request{
		JSVersion:     args[0],
		BinaryVersion: args[1],
		Path:          appConfig.ReadmePath,
		DryRun:        syncDryRun,
	}
	changelogReq := changelog.Request{
		JSVersion:     args[0],
		BinaryVersion: args[1],
		Path:          appConfig.ChangelogPath,
		LogPath:       appConfig.LogPath,
		DryRun:        syncDryRun,
	}

	var (
		readmeRes    *readme.Result
		changelogRes *changelog.Result
	)

	// The updaters touch different files, so they can run concurrently.
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		res, err := readme.NewUpdater(readme.WithLogger(logger)).Update(ctx, readmeReq)
		if err != nil {
			return fmt.Errorf("updating %s: %w", readmeReq.Path, err)
		}
		readmeRes = res
		return nil
	})
	g.Go(func() error {
		res, err := newChangelogUpdater().Update(ctx, changelogReq)
		if err != nil {
			return fmt.Errorf("updating %s: %w", changelogReq.Path, err)
		}
		changelogRes = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	reportReadme(cmd, readmeReq, readmeRes)
	reportChangelog(cmd, changelogRes)
	return nil
}
