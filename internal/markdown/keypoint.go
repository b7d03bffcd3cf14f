package markdown

import (
	"regexp"
	"strings"
)

// KeyPointType identifies the structural kind of a key point.
type KeyPointType string

const (
	Heading    KeyPointType = "heading"
	Paragraph  KeyPointType = "paragraph"
	List       KeyPointType = "list"
	Blockquote KeyPointType = "blockquote"
	CodeBlock  KeyPointType = "codeblock"
	Rule       KeyPointType = "hr"
)

// KeyPoint is one structural unit of a markdown source, used as an alignment
// anchor between the source text and the rendered preview.
type KeyPoint struct {
	Type      KeyPointType `json:"type"`
	LineIndex int          `json:"lineIndex"`       // zero-based first line of the unit
	Content   string       `json:"content"`         // trimmed text of the unit
	Level     int          `json:"level,omitempty"` // heading depth, headings only
	EndIndex  int          `json:"endIndex,omitempty"`
}

// HasEnd reports whether the key point spans a closing line (fenced code blocks).
func (kp KeyPoint) HasEnd() bool {
	return kp.Type == CodeBlock
}

// CodeBody returns the lines of a code block between its fences.
func (kp KeyPoint) CodeBody() string {
	lines := strings.Split(kp.Content, "\n")
	if kp.Type != CodeBlock || len(lines) < 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

var (
	fenceLine      = regexp.MustCompile("^```")
	headingLine    = regexp.MustCompile(`^(#{1,6})\s`)
	listLine       = regexp.MustCompile(`^(\*|-|\+|\d+\.)\s`)
	blockquoteLine = regexp.MustCompile(`^>`)
	ruleLine       = regexp.MustCompile(`^(---|\*\*\*|___)$`)
	orderedItem    = regexp.MustCompile(`^\d+\.`)
)

// ExtractKeyPoints splits source into lines and classifies them into key points
// in a single pass. It is a line classifier, not a CommonMark parser: nested
// containers and lazy continuation lines are not recognized.
//
// A fenced code block that is never closed swallows the rest of the document
// and produces no key point.
func ExtractKeyPoints(source string) []KeyPoint {
	if source == "" {
		return []KeyPoint{}
	}

	points := []KeyPoint{}
	var (
		inCode    bool
		codeLines []string
		codeStart int
		paragraph []string
	)
	paraStart := -1

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		points = append(points, KeyPoint{
			Type:      Paragraph,
			LineIndex: paraStart,
			Content:   strings.TrimSpace(strings.Join(paragraph, "\n")),
		})
		paragraph = nil
		paraStart = -1
	}

	for i, line := range strings.Split(source, "\n") {
		if fenceLine.MatchString(line) {
			if !inCode {
				flushParagraph()
				inCode = true
				codeStart = i
				codeLines = []string{line}
			} else {
				inCode = false
				codeLines = append(codeLines, line)
				points = append(points, KeyPoint{
					Type:      CodeBlock,
					LineIndex: codeStart,
					Content:   strings.Join(codeLines, "\n"),
					EndIndex:  i,
				})
				codeLines = nil
			}
			continue
		}
		if inCode {
			codeLines = append(codeLines, line)
			continue
		}

		if m := headingLine.FindStringSubmatch(line); m != nil {
			flushParagraph()
			points = append(points, KeyPoint{
				Type:      Heading,
				LineIndex: i,
				Content:   strings.TrimSpace(line),
				Level:     len(m[1]),
			})
			continue
		}

		var kind KeyPointType
		switch {
		case listLine.MatchString(line):
			kind = List
		case blockquoteLine.MatchString(line):
			kind = Blockquote
		case ruleLine.MatchString(line):
			kind = Rule
		}
		if kind != "" {
			flushParagraph()
			points = append(points, KeyPoint{
				Type:      kind,
				LineIndex: i,
				Content:   strings.TrimSpace(line),
			})
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flushParagraph()
			continue
		}
		if paraStart == -1 {
			paraStart = i
		}
		paragraph = append(paragraph, trimmed)
	}
	flushParagraph()

	return points
}

// IsOrderedListItem reports whether list content starts with a "digit." marker.
func IsOrderedListItem(content string) bool {
	return orderedItem.MatchString(strings.TrimSpace(content))
}

// NearestKeyPoint returns the closest key point starting at or before line.
func NearestKeyPoint(points []KeyPoint, line int) (KeyPoint, bool) {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].LineIndex <= line {
			return points[i], true
		}
	}
	return KeyPoint{}, false
}
