package errors

import "fmt"

// Common error messages for the docsync CLI.
// These templates keep messages consistent and actionable.

// MissingVersions creates an error for a command invoked without both versions.
func MissingVersions(usage string) *CLIError {
	return NewArgumentErrorWithUsage(
		"both <v_js> and <v_bin> versions are required",
		usage,
		"Pass the npm package version first and the native binary version second",
		"Example: docsync changelog 1.0.72 1.0.72",
	)
}

// ReadmeNotFound creates an error for a missing README file.
func ReadmeNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s not found", path),
		"Run docsync from the repository root, or pass --file",
		"Set readme_path in .docsync/config.yml",
	)
}

// VersionBlockNotFound creates an error for a README without the version banner.
func VersionBlockNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("could not find the version block in %s even with the fallback pattern", path),
		"Add a block starting with **Phiên bản đã test:** followed by the npm and binary lines",
		"End the block with (Chi tiết tại [CHANGELOG.md](./CHANGELOG.md)) or a blank line",
	)
}

// ConfigParseError creates an error for an unreadable config file.
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to load config %s: %v", path, err),
		Remediation: []string{
			"Check the YAML syntax of the file",
			"Run 'docsync config show' to see the effective configuration",
		},
		Err: err,
	}
}

// UnknownOutputFormat creates an error for an unsupported --output value.
func UnknownOutputFormat(format string, supported ...string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown output format %q", format),
		fmt.Sprintf("Use one of: %v", supported),
	)
}

// NotARepository creates an error for --repo-root outside a git repository.
func NotARepository(err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("not inside a git repository: %v", err),
		Remediation: []string{
			"Run docsync inside the project checkout",
			"Or disable use_repo_root and pass paths explicitly",
		},
		Err: err,
	}
}
