package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/docsync/internal/changelog"
	clierrors "github.com/ariel-frischer/docsync/internal/errors"
	"github.com/ariel-frischer/docsync/internal/platform"
	"github.com/ariel-frischer/docsync/internal/testlog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	statusLog       string
	statusOutput    string
	statusPlain     bool
	statusPlatforms []string
)

var statusCmd = &cobra.Command{
	Use:   "status <v_js> <v_bin>",
	Short: "Show the per-platform result derived from the test log",
	Long: `Show the status every platform would be recorded with, without touching
any file. The js column is checked against v_js and every binary platform
against v_bin.`,
	Example: `  docsync status 1.0.72 1.0.72
  docsync status 1.0.72 1.0.73 --output json
  docsync status 1.0.72 1.0.72 --platform win-x64,win32-arm64`,
	Args: requireVersions,
	RunE: runStatus,
}

func init() {
	statusCmd.GroupID = GroupInspect
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusLog, "log", "l", "", "Test log path (default from config: log_path)")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text", "Output format: text, yaml or json")
	statusCmd.Flags().BoolVar(&statusPlain, "plain", false, "Plain text output (no colors)")
	statusCmd.Flags().StringSliceVarP(&statusPlatforms, "platform", "p", nil, "Only show these platforms (column name or log id)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	logPath := pathOr(statusLog, appConfig.LogPath)
	log, err := testlog.Load(cmd.Context(), logPath, testlog.WithLogger(logger))
	if err != nil {
		return err
	}
	report := log.Report(args[0], args[1])
	if len(statusPlatforms) > 0 {
		if report, err = filterPlatforms(report, statusPlatforms); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch statusOutput {
	case "text":
		return writeStatusText(out, report, changelog.FormatOptions{Plain: statusPlain})
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return clierrors.UnknownOutputFormat(statusOutput, "text", "yaml", "json")
	}
}

func writeStatusText(w io.Writer, report testlog.Report, opts changelog.FormatOptions) error {
	bold := fmt.Sprint
	if !opts.Plain {
		bold = color.New(color.Bold).SprintFunc()
	}

	fmt.Fprintf(w, "%s (js v%s, binary v%s)\n", bold("Test results"), report.JSVersion, report.BinaryVersion)
	if report.LogMissing {
		fmt.Fprintf(w, "Log %s not found, every platform counts as failed\n", report.LogPath)
	} else {
		fmt.Fprintf(w, "Log: %s\n", report.LogPath)
	}
	fmt.Fprintln(w)

	for _, ps := range report.Platforms {
		if _, err := fmt.Fprintf(w, "  %-12s %-13s v%-10s %s\n",
			ps.Platform, ps.LogID, ps.Version, changelog.FormatStatus(ps.Status, opts)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%s\n", changelog.SummaryLine(report.Statuses()))
	return err
}

// filterPlatforms keeps the requested platforms, still in table order.
func filterPlatforms(report testlog.Report, names []string) (testlog.Report, error) {
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		p, err := platform.Lookup(name)
		if err != nil {
			return report, clierrors.NewArgumentError(err.Error(),
				"Use a column name from the CHANGELOG header or the id the test runner prints")
		}
		keep[p.Column] = true
	}

	filtered := report.Platforms[:0:0]
	for _, ps := range report.Platforms {
		if keep[ps.Platform] {
			filtered = append(filtered, ps)
		}
	}
	report.Platforms = filtered
	return report, nil
}
