package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCmd_UpdatesBothFiles(t *testing.T) {
	workspace(t)
	writeFile(t, "README.md", sampleReadme)
	writeFile(t, "CHANGELOG.md", sampleChangelog)
	writeFile(t, "combined_test_output.log", "ok\n")

	stdout, stderr, code := run(t, "sync", "1.0.72", "1.0.72")

	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t,
		"Successfully updated README.md to v1.0.72 / v1.0.72\n"+
			"Successfully updated CHANGELOG.md for v1.0.72\n",
		stdout)
	assert.Contains(t, readFile(t, "README.md"), "- npm: v1.0.72\n- binary: v1.0.72\n")
	assert.Contains(t, readFile(t, "CHANGELOG.md"), "| 1.0.72 | "+today()+" | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ |")
}

func TestSyncCmd_DryRunWritesNothing(t *testing.T) {
	workspace(t)
	writeFile(t, "README.md", sampleReadme)
	writeFile(t, "CHANGELOG.md", sampleChangelog)

	stdout, _, code := run(t, "sync", "1.0.72", "1.0.72", "--dry-run")

	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Dry run: README.md would be updated to:")
	assert.Contains(t, stdout, "Dry run: CHANGELOG.md would get this row (inserted):")
	assert.Equal(t, sampleReadme, readFile(t, "README.md"))
	assert.Equal(t, sampleChangelog, readFile(t, "CHANGELOG.md"))
}

func TestSyncCmd_MissingReadmeStillUpdatesChangelog(t *testing.T) {
	workspace(t)
	writeFile(t, "combined_test_output.log", "ok\n")

	stdout, stderr, code := run(t, "sync", "1.0.72", "1.0.72")

	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "README.md not found")
	assert.Contains(t, stdout, "Successfully updated CHANGELOG.md for v1.0.72")
}
