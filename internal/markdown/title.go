package markdown

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const untitled = "Untitled"

var titleParser = goldmark.New().Parser()

// Title picks a document title:
// 1. First # Heading (level 1)
// 2. First ## Heading (level 2) if no level 1
// 3. Filename without extension (capitalized words) if no headings
// 4. "Untitled"
func Title(source, filename string) string {
	content := []byte(source)
	doc := titleParser.Parse(text.NewReader(content))

	var firstH1, firstH2 string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headingText := nodeText(heading, content)
		if heading.Level == 1 && firstH1 == "" {
			firstH1 = headingText
			return ast.WalkStop, nil
		}
		if heading.Level == 2 && firstH2 == "" {
			firstH2 = headingText
		}
		return ast.WalkSkipChildren, nil
	})

	switch {
	case firstH1 != "":
		return firstH1
	case firstH2 != "":
		return firstH2
	}
	if t := titleFromFilename(filename); t != "" {
		return t
	}
	return untitled
}

// titleFromFilename removes the extension and capitalizes each word.
func titleFromFilename(filename string) string {
	if filename == "" {
		return ""
	}
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// nodeText extracts the text content of n and its children.
func nodeText(n ast.Node, content []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
