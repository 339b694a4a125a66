package changelog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ariel-frischer/docsync/internal/testlog"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC)
}

func writeFile(t *testing.T, fsys billy.Filesystem, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fsys, path, []byte(content), 0o644))
}

func readFile(t *testing.T, fsys billy.Filesystem, path string) string {
	t.Helper()
	data, err := util.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

func newTestUpdater(fsys billy.Filesystem) *Updater {
	return NewUpdater(WithFilesystem(fsys), WithClock(fixedNow))
}

func TestUpdate_NewVersionEndToEnd(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	writeFile(t, fsys, "CHANGELOG.md", `# Changelog
| version | date | js | mac-arm64 | mac-x64 | linux-arm64 | linux-x64 | win-x64 | win-arm64 |
| --- | --- | --- | --- | --- | --- | --- | --- | --- |
| 1.0.0 | 2024-01-01 | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ |
`)
	writeFile(t, fsys, testlog.DefaultPath,
		"RESULT_IGNORED: 1.1.0:win32-arm64\n"+
			"PASS  patch-cli-claude-code.test.js > Binary Patch Test on linux-x64\n")

	result, err := newTestUpdater(fsys).Update(context.Background(), Request{
		JSVersion:     "1.1.0",
		BinaryVersion: "1.1.0",
	})
	require.NoError(t, err)
	assert.Equal(t, ActionInserted, result.Action)
	assert.True(t, result.Written)

	want := `# Changelog
| version | date | js | mac-arm64 | mac-x64 | linux-arm64 | linux-x64 | win-x64 | win-arm64 |
| --- | --- | --- | --- | --- | --- | --- | --- | --- |
| 1.1.0 | 2025-06-07 | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ | ⚪ |
| 1.0.0 | 2024-01-01 | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ |
`
	assert.Equal(t, want, readFile(t, fsys, "CHANGELOG.md"))
}

func TestUpdate_ExistingVersionIsOverwritten(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	writeFile(t, fsys, "CHANGELOG.md", `# Changelog
| version | date | js | mac-arm64 | mac-x64 | linux-arm64 | linux-x64 | win-x64 | win-arm64 |
| --- | --- | --- | --- | --- | --- | --- | --- | --- |
| 1.1.0 | 2024-01-01 | ❌ | ❌ | ❌ | ❌ | ❌ | ❌ | ❌ |
`)
	writeFile(t, fsys, testlog.DefaultPath, "Test passed perfectly\n")

	result, err := newTestUpdater(fsys).Update(context.Background(), Request{
		JSVersion:     "1.1.0",
		BinaryVersion: "1.1.0",
	})
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, result.Action)

	got := readFile(t, fsys, "CHANGELOG.md")
	assert.Contains(t, got, "| 1.1.0 | 2025-06-07 | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ |\n")
	assert.NotContains(t, got, "❌")
	assert.NotContains(t, got, "2024-01-01")
}

func TestUpdate_MissingLogMarksEveryPlatformFailed(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()

	result, err := newTestUpdater(fsys).Update(context.Background(), Request{
		JSVersion:     "2.0.0",
		BinaryVersion: "2.0.0",
		Path:          "docs/CHANGELOG.md",
		LogPath:       "missing.log",
	})
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, result.Action)
	assert.True(t, result.Report.LogMissing)
	assert.Equal(t, allStatuses(testlog.Failed), result.Row.Statuses)

	got := readFile(t, fsys, "docs/CHANGELOG.md")
	assert.Equal(t, RenderNewString(result.Row), got)
	assert.Contains(t, got, "| 2.0.0 | 2025-06-07 | ❌ | ❌ | ❌ | ❌ | ❌ | ❌ | ❌ |")
}

func TestUpdate_SeparateBinaryVersion(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	writeFile(t, fsys, "run.log",
		"RESULT_IGNORED: 2.0.1:js\n"+
			"RESULT_IGNORED: 2.0.0:darwin-x64\n"+
			testlog.BinaryFailureMarker("linux-arm64")+" > should patch\n")

	result, err := newTestUpdater(fsys).Update(context.Background(), Request{
		JSVersion:     "2.0.1",
		BinaryVersion: "2.0.0",
		LogPath:       "run.log",
	})
	require.NoError(t, err)

	assert.Equal(t, "| 2.0.1 | 2025-06-07 | ⚪ | ✅ | ⚪ | ❌ | ✅ | ✅ | ✅ |", result.Row.String())
}

func TestUpdate_DryRunDoesNotWrite(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	original := tableLines("| 1.0.0 | 2024-01-01 | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ |")
	writeFile(t, fsys, "CHANGELOG.md", original)

	result, err := newTestUpdater(fsys).Update(context.Background(), Request{
		JSVersion:     "1.1.0",
		BinaryVersion: "1.1.0",
		DryRun:        true,
	})
	require.NoError(t, err)
	assert.False(t, result.Written)
	assert.Contains(t, result.Content, "| 1.1.0 |")
	assert.Equal(t, original, readFile(t, fsys, "CHANGELOG.md"))
}

func TestUpdate_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		req Request
		ctx func() context.Context
	}{
		"missing js version": {
			req: Request{BinaryVersion: "1.0.0"},
			ctx: context.Background,
		},
		"missing binary version": {
			req: Request{JSVersion: "1.0.0"},
			ctx: context.Background,
		},
		"cancelled context": {
			req: Request{JSVersion: "1.0.0", BinaryVersion: "1.0.0"},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fsys := memfs.New()
			_, err := newTestUpdater(fsys).Update(tt.ctx(), tt.req)
			assert.Error(t, err)

			_, statErr := fsys.Stat(DefaultPath)
			assert.Error(t, statErr, "no file should be written")
		})
	}
}

func TestUpdater_Load(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	writeFile(t, fsys, "CHANGELOG.md", sampleChangelog)

	doc, err := newTestUpdater(fsys).Load("CHANGELOG.md")
	require.NoError(t, err)
	rows, err := doc.Rows()
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = newTestUpdater(fsys).Load("nope.md")
	assert.Error(t, err)
}

func TestUpdate_OSFilesystem(t *testing.T) {
	root := t.TempDir()
	work := filepath.Join(root, "scripts")
	require.NoError(t, os.Mkdir(work, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, testlog.DefaultPath),
		[]byte("RESULT_IGNORED: 2.0.0:win32-x64\n"), 0o644))
	{
		prevWD, wdErr := os.Getwd()
		require.NoError(t, wdErr)
		require.NoError(t, os.Chdir(work))
		t.Cleanup(func() { _ = os.Chdir(prevWD) })
	}

	u := NewUpdater(WithClock(fixedNow))
	result, err := u.Update(context.Background(), Request{
		JSVersion:     "2.0.0",
		BinaryVersion: "2.0.0",
		Path:          "../CHANGELOG.md",
		LogPath:       "../" + testlog.DefaultPath,
	})
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, result.Action)
	assert.True(t, result.Written)
	assert.False(t, result.Report.LogMissing)
	assert.Equal(t, "../CHANGELOG.md", result.Path)

	data, err := os.ReadFile(filepath.Join(root, "CHANGELOG.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "| 2.0.0 | 2025-06-07 | ✅ | ✅ | ✅ | ✅ | ✅ | ⚪ | ✅ |\n")

	doc, err := u.Load(filepath.Join(root, "CHANGELOG.md"))
	require.NoError(t, err)
	rows, err := doc.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2.0.0", rows[0].Version)
}
