package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ariel-frischer/docsync/internal/changelog"
	"github.com/ariel-frischer/docsync/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchLog      string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <v_js> <v_bin>",
	Short: "Keep the CHANGELOG row current while tests are running",
	Long: `Watch the test log and rewrite the CHANGELOG row for v_js every time the
log changes, until interrupted. Bursts of writes are coalesced into one update.`,
	Example: `  docsync watch 1.0.72 1.0.72
  docsync watch 1.0.72 1.0.72 --log out/combined_test_output.log --debounce 2s`,
	Args: requireVersions,
	RunE: runWatch,
}

func init() {
	watchCmd.GroupID = GroupUpdate
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchLog, "log", "l", "", "Test log path (default from config: log_path)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before updating (default from config: watch_debounce)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	req := changelog.Request{
		JSVersion:     args[0],
		BinaryVersion: args[1],
		Path:          appConfig.ChangelogPath,
		LogPath:       pathOr(watchLog, appConfig.LogPath),
	}
	debounce := watchDebounce
	if debounce <= 0 {
		debounce = appConfig.WatchDebounce
	}

	updater := newChangelogUpdater()
	w := watch.New(watch.WithDebounce(debounce), watch.WithLogger(logger))

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, press Ctrl+C to stop\n", req.LogPath)
	return w.Run(cmd.Context(), req.LogPath, func(ctx context.Context) error {
		res, err := updater.Update(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s v%s: %s\n",
			time.Now().Format(time.TimeOnly), res.Action, req.JSVersion, changelog.SummaryLine(res.Report.Statuses()))
		return nil
	})
}
