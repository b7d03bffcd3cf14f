package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ContentClass is the class of the element wrapping rendered preview content.
const ContentClass = "preview-content"

var pastedImageID = regexp.MustCompile(`^img-[0-9]+(-[0-9a-f]+)?$`)

// IsPastedImageID reports whether dest names an image pasted into the editor
// rather than a URL.
func IsPastedImageID(dest string) bool {
	return pastedImageID.MatchString(dest)
}

type rendererConfig struct {
	imageBase      string
	highlightStyle string
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

// WithImageBase sets the URL prefix pasted image ids are resolved against.
func WithImageBase(base string) RendererOption {
	return func(c *rendererConfig) {
		c.imageBase = strings.TrimSuffix(base, "/")
	}
}

// WithHighlightStyle enables syntax highlighting of fenced code blocks using
// the named chroma style. An empty style disables highlighting.
func WithHighlightStyle(style string) RendererOption {
	return func(c *rendererConfig) {
		c.highlightStyle = style
	}
}

// Renderer converts markdown source into preview HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a goldmark based preview renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	cfg := rendererConfig{imageBase: "/api/images"}
	for _, opt := range opts {
		opt(&cfg)
	}

	extensions := []goldmark.Extender{
		extension.GFM,
		extension.Table,
		extension.TaskList,
		extension.Strikethrough,
	}
	if cfg.highlightStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.highlightStyle),
		))
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extensions...),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(
					util.Prioritized(&imageResolver{base: cfg.imageBase}, 500),
				),
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
		),
	}
}

// Render converts source to HTML wrapped in the preview content container.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(`<div class="` + ContentClass + `">`)
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	buf.WriteString(`</div>`)
	return buf.String(), nil
}

// imageResolver points pasted image references at the image endpoint.
type imageResolver struct {
	base string
}

func (t *imageResolver) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := n.(*ast.Image); ok {
			if dest := string(img.Destination); IsPastedImageID(dest) {
				img.Destination = []byte(t.base + "/" + dest)
			}
		}
		return ast.WalkContinue, nil
	})
}
