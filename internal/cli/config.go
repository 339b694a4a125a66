package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/docsync/internal/config"
	clierrors "github.com/ariel-frischer/docsync/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configShowOutput string
	configInitUser   bool
	configInitForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage docsync configuration",
	Long: `Manage docsync configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (DOCSYNC_*)
  2. File passed with --config
  3. Project config (.docsync/config.yml or .docsync/config.json)
  4. User config (~/.config/docsync/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  docsync config show

  # List all keys
  docsync config keys

  # Write a commented project config
  docsync config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		view := configView(appConfig)
		switch configShowOutput {
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(view); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			return enc.Close()
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		default:
			return clierrors.UnknownOutputFormat(configShowOutput, "yaml", "json")
		}
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all configuration keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, key := range config.SortedKeys() {
			schema := config.KnownKeys[key]
			fmt.Fprintf(out, "%-16s %-9s %-26v %s\n", key, schema.Type, schema.Default, schema.Description)
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file",
	Long: `Write a config file listing every option with its default value.
By default the project config (.docsync/config.yml) is written; use --user
for the user config.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configCmd.AddCommand(configShowCmd, configKeysCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)

	configShowCmd.Flags().StringVarP(&configShowOutput, "output", "o", "yaml", "Output format: yaml or json")
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
}

// configView renders durations as strings so the output can be fed back as config.
func configView(cfg *config.Configuration) map[string]any {
	return map[string]any{
		"readme_path":    cfg.ReadmePath,
		"changelog_path": cfg.ChangelogPath,
		"log_path":       cfg.LogPath,
		"scan_rows":      cfg.ScanRows,
		"use_repo_root":  cfg.UseRepoRoot,
		"watch_debounce": cfg.WatchDebounce.String(),
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	if configInitUser {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return fmt.Errorf("locating user config directory: %w", err)
		}
		path = userPath
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return clierrors.NewConfigError(
			fmt.Sprintf("%s already exists", path),
			"Pass --force to overwrite it",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
