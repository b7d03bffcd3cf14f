package preview

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mdsync/internal/contextutil"
	"mdsync/internal/markdown"
	"mdsync/internal/match"
)

// Match pairs a key point with the preview element it was located at.
type Match struct {
	KeyPoint markdown.KeyPoint
	Element  Element
	Score    float64 // 1 for types matched by containment
}

// candidate is a scored element, discarded after a locate call.
type candidate struct {
	element Element
	score   float64
}

// CodeMode selects how fenced code blocks are scored.
type CodeMode string

const (
	// CodeText scores code like paragraphs, against the normalized source.
	CodeText CodeMode = "text"
	// CodeLines scores the code body line by line.
	CodeLines CodeMode = "lines"
)

// Locator maps key points to rendered preview elements.
type Locator struct {
	threshold float64
	codeMode  CodeMode
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithThreshold sets the score a paragraph or code candidate must exceed.
func WithThreshold(threshold float64) LocatorOption {
	return func(l *Locator) {
		l.threshold = threshold
	}
}

// WithCodeMode selects the code block scorer.
func WithCodeMode(mode CodeMode) LocatorOption {
	return func(l *Locator) {
		l.codeMode = mode
	}
}

// NewLocator creates a Locator using the default threshold.
func NewLocator(opts ...LocatorOption) *Locator {
	l := &Locator{
		threshold: match.DefaultThreshold,
		codeMode:  CodeText,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate finds the preview element for each key point. Key points without a
// matching element are left out of the result; a tree without a mounted
// content container yields an empty result.
func (l *Locator) Locate(ctx context.Context, points []markdown.KeyPoint, tree Tree) []Match {
	matches := []Match{}
	if tree == nil {
		return matches
	}
	content, ok := tree.Content()
	if !ok {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "preview content not mounted")
		return matches
	}
	for _, kp := range points {
		if m, ok := l.locate(ctx, kp, tree, content); ok {
			matches = append(matches, m)
		}
	}
	return matches
}

// LocateOne locates a single key point.
func (l *Locator) LocateOne(ctx context.Context, kp markdown.KeyPoint, tree Tree) (Match, bool) {
	found := l.Locate(ctx, []markdown.KeyPoint{kp}, tree)
	if len(found) == 0 {
		return Match{}, false
	}
	return found[0], true
}

func (l *Locator) locate(ctx context.Context, kp markdown.KeyPoint, tree Tree, content Element) (Match, bool) {
	logger := contextutil.LoggerFromContext(ctx)

	selector, ok := selectorFor(kp)
	if !ok {
		return Match{}, false
	}
	elements := tree.QueryAll(content, selector)

	switch kp.Type {
	case markdown.Paragraph, markdown.CodeBlock:
		scored := make([]candidate, 0, len(elements))
		for _, el := range elements {
			text := strings.TrimSpace(tree.TextContent(el))
			score := l.score(kp, text)
			logger.DebugContext(ctx, "comparing candidate",
				"type", kp.Type, "line", kp.LineIndex, "element", excerpt(text), "score", score)
			scored = append(scored, candidate{element: el, score: score})
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].score > scored[j].score
		})
		if len(scored) == 0 || !match.Accept(scored[0].score, l.threshold) {
			logger.DebugContext(ctx, "no matching element", "type", kp.Type, "line", kp.LineIndex)
			return Match{}, false
		}
		return Match{KeyPoint: kp, Element: scored[0].element, Score: scored[0].score}, true
	}

	want := markdown.StripBlockPrefix(kp.Content)
	for _, el := range elements {
		text := strings.TrimSpace(tree.TextContent(el))
		if strings.Contains(text, want) || strings.Contains(want, text) {
			return Match{KeyPoint: kp, Element: el, Score: 1}, true
		}
	}
	logger.DebugContext(ctx, "no matching element", "type", kp.Type, "line", kp.LineIndex)
	return Match{}, false
}

func (l *Locator) score(kp markdown.KeyPoint, text string) float64 {
	if kp.Type == markdown.CodeBlock && l.codeMode == CodeLines {
		return match.CodeScore(text, kp.CodeBody())
	}
	return match.Score(text, markdown.Normalize(kp.Content))
}

// selectorFor maps a key point to the selector of its candidate elements.
func selectorFor(kp markdown.KeyPoint) (string, bool) {
	switch kp.Type {
	case markdown.Heading:
		level := kp.Level
		if level < 1 || level > 6 {
			return "", false
		}
		return fmt.Sprintf("h%d", level), true
	case markdown.Paragraph:
		return "p", true
	case markdown.List:
		if markdown.IsOrderedListItem(kp.Content) {
			return "ol > li", true
		}
		return "ul > li", true
	case markdown.CodeBlock:
		return "pre code, pre", true
	case markdown.Blockquote:
		return "blockquote", true
	case markdown.Rule:
		return "hr", true
	}
	return "", false
}

func excerpt(text string) string {
	const limit = 50
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
