package markdown

import "strings"

// LineAt returns the zero-based line containing the rune offset cursor.
// Offsets past the end of source resolve to the last line.
func LineAt(source string, cursor int) int {
	if cursor <= 0 {
		return 0
	}
	line, n := 0, 0
	for _, r := range source {
		if n == cursor {
			break
		}
		if r == '\n' {
			line++
		}
		n++
	}
	return line
}

// InsertAt inserts text at the rune offset cursor, clamped to the bounds of
// source. It returns the new source and the offset just past the inserted text.
func InsertAt(source string, cursor int, text string) (string, int) {
	runes := []rune(source)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	var b strings.Builder
	b.Grow(len(source) + len(text))
	b.WriteString(string(runes[:cursor]))
	b.WriteString(text)
	b.WriteString(string(runes[cursor:]))
	return b.String(), cursor + len([]rune(text))
}
