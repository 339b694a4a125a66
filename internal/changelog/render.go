package changelog

import "strings"

// RenderNewString renders a complete CHANGELOG containing only the given row.
// It is what a file without a status table is replaced with.
func RenderNewString(row Row) string {
	var b strings.Builder
	for _, line := range newDocumentLines(row) {
		b.WriteString(line)
	}
	return b.String()
}

func newDocumentLines(row Row) []string {
	return []string{
		Title + "\n",
		"\n",
		Description + "\n",
		"\n",
		HeaderRow() + "\n",
		SeparatorRow() + "\n",
		row.String() + "\n",
	}
}
