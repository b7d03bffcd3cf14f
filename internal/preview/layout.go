package preview

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LayoutConfig holds the metrics of the block flow used to estimate offsets
// when no measured offsets are available.
type LayoutConfig struct {
	LineHeight   float64 `yaml:"line_height"`
	CharsPerLine int     `yaml:"chars_per_line"`
	BlockGap     float64 `yaml:"block_gap"`
	ImageHeight  float64 `yaml:"image_height"`
}

// DefaultLayout matches a 16px body font with 1.6 line height.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		LineHeight:   25.6,
		CharsPerLine: 80,
		BlockGap:     16,
		ImageHeight:  240,
	}
}

var headingScale = map[atom.Atom]float64{
	atom.H1: 2,
	atom.H2: 1.5,
	atom.H3: 1.25,
	atom.H4: 1,
	atom.H5: 0.875,
	atom.H6: 0.85,
}

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Pre: true, atom.Blockquote: true, atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Hr: true,
	atom.Div: true, atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tr: true,
	atom.Dl: true, atom.Dt: true, atom.Dd: true, atom.Section: true, atom.Article: true,
	atom.Figure: true, atom.Details: true, atom.Summary: true,
}

// items stack without a trailing gap.
var flowItems = map[atom.Atom]bool{
	atom.Li: true, atom.Tr: true, atom.Dt: true, atom.Dd: true, atom.Thead: true, atom.Tbody: true,
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockAtoms[n.DataAtom]
}

type flow struct {
	cfg  LayoutConfig
	tops map[*html.Node]float64
}

// estimateLayout assigns a top offset to every block below content, with
// content itself at 0.
func estimateLayout(content *html.Node, cfg LayoutConfig) map[*html.Node]float64 {
	def := DefaultLayout()
	if cfg.LineHeight <= 0 {
		cfg.LineHeight = def.LineHeight
	}
	if cfg.CharsPerLine <= 0 {
		cfg.CharsPerLine = def.CharsPerLine
	}
	if cfg.BlockGap < 0 {
		cfg.BlockGap = 0
	}
	if cfg.ImageHeight < 0 {
		cfg.ImageHeight = 0
	}

	f := &flow{cfg: cfg, tops: map[*html.Node]float64{content: 0}}
	f.container(content, 0)
	return f.tops
}

// container lays out the children of n starting at y and returns the bottom.
// Runs of inline content between blocks form anonymous line boxes.
func (f *flow) container(n *html.Node, y float64) float64 {
	var inline strings.Builder
	images := 0
	flush := func() {
		text := strings.TrimSpace(inline.String())
		y += f.textHeight(text, 1) + float64(images)*f.cfg.ImageHeight
		inline.Reset()
		images = 0
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlock(c) {
			flush()
			y = f.block(c, y)
			continue
		}
		collectInline(c, &inline, &images)
	}
	flush()
	return y
}

func (f *flow) block(n *html.Node, y float64) float64 {
	f.tops[n] = y

	switch n.DataAtom {
	case atom.Hr:
		return y + f.cfg.BlockGap
	case atom.Pre:
		lines := strings.Count(strings.TrimRight(textOf(n), "\n"), "\n") + 1
		return y + float64(lines)*f.cfg.LineHeight + f.cfg.BlockGap
	}
	if scale, ok := headingScale[n.DataAtom]; ok {
		return y + f.textHeight(strings.TrimSpace(textOf(n)), scale) + f.cfg.BlockGap
	}

	bottom := f.container(n, y)
	if flowItems[n.DataAtom] {
		return bottom
	}
	return bottom + f.cfg.BlockGap
}

// textHeight wraps text at the configured line width, scaled for headings.
func (f *flow) textHeight(text string, scale float64) float64 {
	if text == "" {
		return 0
	}
	perLine := int(float64(f.cfg.CharsPerLine) / scale)
	if perLine < 1 {
		perLine = 1
	}
	runes := utf8.RuneCountInString(text)
	lines := (runes + perLine - 1) / perLine
	return float64(lines) * f.cfg.LineHeight * scale
}

func collectInline(n *html.Node, b *strings.Builder, images *int) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Img {
			*images++
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectInline(c, b, images)
	}
}
