package readme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalReadme = `# Title
**Phiên bản đã test:**
- npm: v0.0.1
- binary: v0.0.1
(Chi tiết tại [CHANGELOG.md](./CHANGELOG.md))

## Other Section
`

func TestBlock(t *testing.T) {
	t.Parallel()

	want := "**Phiên bản đã test:**\n" +
		"- npm: v1.2.3\n" +
		"- binary: v4.5.6\n" +
		"(Chi tiết tại [CHANGELOG.md](./CHANGELOG.md))"
	assert.Equal(t, want, Block("1.2.3", "4.5.6"))
}

func TestFind(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content      string
		wantFound    bool
		wantFallback bool
		wantSpan     string
	}{
		"canonical block": {
			content:   canonicalReadme,
			wantFound: true,
			wantSpan:  "**Phiên bản đã test:**\n- npm: v0.0.1\n- binary: v0.0.1\n(Chi tiết tại [CHANGELOG.md](./CHANGELOG.md))",
		},
		"extra notes inside block": {
			content:   "**Phiên bản đã test:**\n- npm: v1\n- note\n- binary: v1\n(see [CHANGELOG.md](./CHANGELOG.md))\nafter\n",
			wantFound: true,
			wantSpan:  "**Phiên bản đã test:**\n- npm: v1\n- note\n- binary: v1\n(see [CHANGELOG.md](./CHANGELOG.md))",
		},
		"link missing uses fallback": {
			content:      "intro\n**Phiên bản đã test:**\n- npm: v1\n- binary: v1\n\n## Next\n",
			wantFound:    true,
			wantFallback: true,
			wantSpan:     "**Phiên bản đã test:**\n- npm: v1\n- binary: v1\n\n",
		},
		"no heading": {
			content: "# Title\n- npm: v1\n",
		},
		"heading without terminator": {
			content: "# Title\n**Phiên bản đã test:**\n- npm: v1",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, found := Find(tt.content)
			require.Equal(t, tt.wantFound, found)
			if !found {
				return
			}
			assert.Equal(t, tt.wantFallback, m.Fallback)
			assert.Equal(t, tt.wantSpan, tt.content[m.Start:m.End])
		})
	}
}

func TestReplace_PreservesSurroundingContent(t *testing.T) {
	t.Parallel()

	got, m, ok := Replace(canonicalReadme, "1.2.3", "1.2.4")
	require.True(t, ok)
	assert.False(t, m.Fallback)

	want := `# Title
**Phiên bản đã test:**
- npm: v1.2.3
- binary: v1.2.4
(Chi tiết tại [CHANGELOG.md](./CHANGELOG.md))

## Other Section
`
	assert.Equal(t, want, got)
}

func TestReplace_FallbackKeepsBlankLine(t *testing.T) {
	t.Parallel()

	content := "intro\n**Phiên bản đã test:**\n- npm: v1\nstray note\n\n## Next\n"
	got, m, ok := Replace(content, "2.0.0", "2.0.0")
	require.True(t, ok)
	assert.True(t, m.Fallback)
	assert.Equal(t, "intro\n"+Block("2.0.0", "2.0.0")+"\n\n## Next\n", got)

	// The repaired block is found by the precise pattern from then on.
	again, m, ok := Replace(got, "2.0.0", "2.0.0")
	require.True(t, ok)
	assert.False(t, m.Fallback)
	assert.Equal(t, got, again)
}

func TestReplace_OnlyFirstBlock(t *testing.T) {
	t.Parallel()

	content := canonicalReadme + "\n" + canonicalReadme
	got, _, ok := Replace(content, "9.9.9", "9.9.9")
	require.True(t, ok)
	assert.Contains(t, got, "- npm: v9.9.9")
	assert.Contains(t, got, "- npm: v0.0.1", "second block is left alone")
}

func TestReplace_VersionsAreLiteral(t *testing.T) {
	t.Parallel()

	got, _, ok := Replace(canonicalReadme, "$1", "${0}")
	require.True(t, ok)
	assert.Contains(t, got, "- npm: v$1\n")
	assert.Contains(t, got, "- binary: v${0}\n")
}
