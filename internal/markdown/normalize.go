package markdown

import (
	"regexp"
	"strings"
)

var (
	linkSyntax    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	codeSpan      = regexp.MustCompile("`([^`]+)`")
	strikethrough = regexp.MustCompile(`~~([^~]+)~~`)
	emphasisMark  = regexp.MustCompile(`[*_]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	blockPrefix   = regexp.MustCompile("^[#>*\\-+\\d.`\\s]+")
)

// Normalize strips inline markdown syntax so that source text can be compared
// with the plain text of rendered elements. The rules run in a fixed order:
// links, code spans, strikethrough, emphasis markers, whitespace.
//
// Emphasis markers are removed without regard to pairing, so literal '*' and
// '_' characters disappear as well.
func Normalize(text string) string {
	text = linkSyntax.ReplaceAllString(text, "$1")
	text = codeSpan.ReplaceAllString(text, "$1")
	text = strikethrough.ReplaceAllString(text, "$1")
	text = emphasisMark.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripBlockPrefix removes leading block markers (heading hashes, quote and
// list markers, ordinal digits, fences) from key point content.
func StripBlockPrefix(content string) string {
	return strings.TrimSpace(blockPrefix.ReplaceAllString(content, ""))
}
