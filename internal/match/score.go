// Package match scores the textual similarity of source fragments and rendered
// preview text.
package match

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultThreshold is the score a candidate has to exceed to be accepted.
const DefaultThreshold = 0.7

// Scorer computes a similarity in [0, 1] between two texts.
type Scorer func(a, b string) float64

// Accept reports whether score clears threshold. The comparison is strict.
func Accept(score, threshold float64) bool {
	return score > threshold
}

var folder = cases.Fold()

// Score is a cheap similarity heuristic for texts that mostly survive
// rendering unchanged. The first applicable rule wins:
//
//	exact match (case-folded)      1.0
//	one text contains the other    0.9
//	fuzzy word containment         matching words of a / max(words of a, words of b)
//
// A word of a matches if it contains, or is contained by, some word of b.
// Words are counted as lists, so repeated words count repeatedly.
func Score(a, b string) float64 {
	a = folder.String(a)
	b = folder.String(b)

	if a == b {
		return 1
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.9
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	total := max(len(wordsA), len(wordsB))
	if total == 0 {
		return 0
	}

	matching := 0
	for _, wa := range wordsA {
		for _, wb := range wordsB {
			if strings.Contains(wb, wa) || strings.Contains(wa, wb) {
				matching++
				break
			}
		}
	}
	return float64(matching) / float64(total)
}

var horizontalSpace = regexp.MustCompile(`[ \t\f\r\v]+`)

// CodeScore compares code block texts line by line. Horizontal whitespace is
// collapsed inside each line; line structure is kept.
func CodeScore(a, b string) float64 {
	a = normalizeCode(a)
	b = normalizeCode(b)
	if a == b {
		return 1
	}

	linesA := strings.Split(a, "\n")
	linesB := strings.Split(b, "\n")
	diff := len(linesA) - len(linesB)
	if diff > 2 || diff < -2 {
		return 0.5
	}

	matched := 0
	for _, la := range linesA {
		for _, lb := range linesB {
			if strings.Contains(la, lb) || strings.Contains(lb, la) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(max(len(linesA), len(linesB)))
}

func normalizeCode(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	}
	return strings.Join(lines, "\n")
}
