package changelog

import (
	"testing"

	"github.com/ariel-frischer/docsync/internal/testlog"
	"github.com/stretchr/testify/assert"
)

func allStatuses(s testlog.Status) []testlog.Status {
	out := make([]testlog.Status, ColumnCount-2)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestHeaderAndSeparator(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"| version | date | js | mac-arm64 | mac-x64 | linux-arm64 | linux-x64 | win-x64 | win-arm64 |",
		HeaderRow())
	assert.Equal(t,
		"| --- | --- | --- | --- | --- | --- | --- | --- | --- |",
		SeparatorRow())
	assert.Equal(t, 9, ColumnCount)
}

func TestRenderNewString(t *testing.T) {
	t.Parallel()

	row := NewRow("1.2.3", "2025-05-06", allStatuses(testlog.Passed))
	want := "# Local Changelog & Testing State\n" +
		"\n" +
		"Automated testing history for new Claude Code versions.\n" +
		"\n" +
		"| version | date | js | mac-arm64 | mac-x64 | linux-arm64 | linux-x64 | win-x64 | win-arm64 |\n" +
		"| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n" +
		"| 1.2.3 | 2025-05-06 | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ | ✅ |\n"

	assert.Equal(t, want, RenderNewString(row))
}

func TestRenderNew_IsIdempotent(t *testing.T) {
	t.Parallel()

	row := NewRow("1.2.3", "2025-05-06", allStatuses(testlog.Failed))
	doc := Parse(RenderNewString(row))

	assert.Equal(t, ActionUpdated, doc.Upsert(row, DefaultScanRows))
	assert.Equal(t, RenderNewString(row), doc.String())
}
