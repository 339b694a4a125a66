package readme

import (
	"fmt"
	"regexp"
)

const (
	// Heading opens the version block.
	Heading = "**Phiên bản đã test:**"
	// ChangelogLink closes the version block.
	ChangelogLink = "(Chi tiết tại [CHANGELOG.md](./CHANGELOG.md))"
)

var (
	// primaryPattern matches the heading, at least one line, and the line
	// that opens with "(" and ends with the CHANGELOG link.
	primaryPattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(Heading) +
		`\n.*?\n\(.*?\[CHANGELOG\.md\]\(\./CHANGELOG\.md\)\)`)

	// fallbackPattern matches from the heading to the next blank line.
	fallbackPattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(Heading) + `.*?\n\n`)
)

// Block renders the version block for the given versions.
func Block(jsVersion, binaryVersion string) string {
	return fmt.Sprintf("%s\n- npm: v%s\n- binary: v%s\n%s", Heading, jsVersion, binaryVersion, ChangelogLink)
}

// Match describes where the version block was found.
type Match struct {
	Start, End int
	// Fallback is true when only the loose heading-to-blank-line pattern matched.
	Fallback bool
}

// Find locates the version block in content. The precise pattern is tried
// first; the fallback only when it does not match.
func Find(content string) (Match, bool) {
	if loc := primaryPattern.FindStringIndex(content); loc != nil {
		return Match{Start: loc[0], End: loc[1]}, true
	}
	if loc := fallbackPattern.FindStringIndex(content); loc != nil {
		return Match{Start: loc[0], End: loc[1], Fallback: true}, true
	}
	return Match{}, false
}

// Replace swaps the first version block in content for a freshly rendered one.
// Anything between the old anchors is dropped. A fallback match keeps the
// blank line that terminated it. ok is false when no block was found.
func Replace(content, jsVersion, binaryVersion string) (updated string, m Match, ok bool) {
	m, ok = Find(content)
	if !ok {
		return content, m, false
	}

	block := Block(jsVersion, binaryVersion)
	if m.Fallback {
		block += "\n\n"
	}
	return content[:m.Start] + block + content[m.End:], m, true
}
