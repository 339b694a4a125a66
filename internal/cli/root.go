package cli

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/docsync/internal/config"
	clierrors "github.com/ariel-frischer/docsync/internal/errors"
	"github.com/ariel-frischer/docsync/internal/git"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Command group IDs for help output
const (
	GroupUpdate        = "update"
	GroupInspect       = "inspect"
	GroupConfiguration = "configuration"
)

var (
	configFile   string
	debugFlag    bool
	repoRootFlag bool
)

// appConfig and logger are set up by the root command before any subcommand runs.
var appConfig *config.Configuration

var logger = zap.NewNop().Sugar()

var rootCmd = &cobra.Command{
	Use:   "docsync",
	Short: "Keep the README version banner and CHANGELOG test table in sync",
	Long: `docsync updates the documentation of the Claude Code Vietnamese patch after a test run.

It rewrites the "Phiên bản đã test" block of README.md with the tested npm and
binary versions, and records one row per version in the CHANGELOG.md status
table with a ✅ / ❌ / ⚪ result for every platform, derived from the combined
test runner output.

Source: https://github.com/ariel-frischer/docsync`,
	Example: `  # Update both files after a test run
  docsync sync 1.0.72 1.0.72

  # Preview the README change
  docsync readme 1.0.72 1.0.72 --dry-run

  # Record results for a separate binary release
  docsync changelog 1.0.72 1.0.73 --log out/combined_test_output.log

  # Show the recorded table
  docsync changelog show`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupUpdate, Title: "Update Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to an extra config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&repoRootFlag, "repo-root", false, "Resolve relative paths against the git repository root")
}

// Execute runs the root command until it finishes or the process is interrupted.
// The returned error maps to a process exit code with ExitCode.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return ExecuteContext(ctx)
}

// ExecuteContext runs the root command with ctx and reports any error on stderr.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		clierrors.FprintAny(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// setupRuntime builds the logger and loads configuration for the invoked command.
func setupRuntime(cmd *cobra.Command, args []string) error {
	logger = newLogger(cmd.ErrOrStderr(), debugFlag)
	git.SetDebugLogger(logger.Debugf)

	loaded, err := config.LoadWithOptions(config.LoadOptions{ConfigFile: configFile})
	if err != nil {
		path := configFile
		if path == "" {
			path = config.ProjectConfigPath()
		}
		return clierrors.ConfigParseError(path, err)
	}
	for _, layer := range loaded.Sources {
		logger.Debugw("config layer loaded", "source", layer.Source, "path", layer.Path)
	}

	cfg := loaded.Configuration
	if repoRootFlag || cfg.UseRepoRoot {
		root, err := git.RepositoryRoot(".")
		if err != nil {
			return clierrors.NotARepository(err)
		}
		logger.Debugw("resolving paths against repository root", "root", root)
		cfg = cfg.Resolve(root)
	}
	appConfig = cfg
	return nil
}

// newLogger writes human-readable log lines to w at warn level, or debug with --debug.
func newLogger(w io.Writer, debug bool) *zap.SugaredLogger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	if clierrors.UseColor(w) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}
