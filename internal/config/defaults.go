package config

// GetDefaultConfigTemplate returns a commented config template
// that documents every available option
func GetDefaultConfigTemplate() string {
	return `# docsync configuration
# See 'docsync config keys' for all options

readme_path: README.md                # README holding the tested-versions block
changelog_path: CHANGELOG.md          # CHANGELOG holding the per-platform status table
log_path: combined_test_output.log    # Test runner output scanned for markers
scan_rows: 15                         # Table rows searched for an existing version (1-100)
use_repo_root: false                  # Resolve relative paths against the git root
watch_debounce: 500ms                 # Quiet period before 'docsync watch' updates
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for key, schema := range KnownKeys {
		defaults[key] = schema.Default
	}
	return defaults
}
