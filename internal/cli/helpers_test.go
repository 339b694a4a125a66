package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const sampleReadme = `# Claude Code Vietnamese Patch

**Phiên bản đã test:**
- npm: v1.0.60
- binary: v1.0.60
(Chi tiết tại [CHANGELOG.md](./CHANGELOG.md))

## Cài đặt
`

const sampleChangelog = `# Local Changelog & Testing State

Automated testing history for new Claude Code versions.

| version | date | js | mac-arm64 | mac-x64 | linux-arm64 | linux-x64 | win-x64 | win-arm64 |
| --- | --- | --- | --- | --- | --- | --- | --- | --- |
| 1.0.0 | 2025-01-01 | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ |
`

// syncBuffer is a bytes.Buffer safe for a command writing from another goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// workspace changes into a fresh directory isolated from any user config.
// Tests using it must not run in parallel.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	{
		prevWD, wdErr := os.Getwd()
		require.NoError(t, wdErr)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(prevWD) })
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// run executes docsync with args and returns stdout, stderr and the exit code.
func run(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	return runContext(t, context.Background(), args...)
}

func runContext(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	resetFlags(rootCmd)
	var out, errOut syncBuffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := ExecuteContext(ctx)
	return out.String(), errOut.String(), ExitCode(err)
}

// resetFlags restores every flag to its default so runs do not leak into each other.
// The command context is cleared too: cobra only hands the root context down to
// a subcommand that has none, so a context left from an earlier run would win.
func resetFlags(cmd *cobra.Command) {
	cmd.SetContext(nil)

	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func countRows(content, prefix string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}
