package preview

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"mdsync/internal/markdown"
)

var (
	contentSelector = cascadia.MustCompile("." + markdown.ContentClass)
	blockSelector   = cascadia.MustCompile(BlockSelector)
)

type treeConfig struct {
	layout  LayoutConfig
	offsets []float64
}

// TreeOption configures an HTMLTree.
type TreeOption func(*treeConfig)

// WithLayout sets the metrics used to estimate element offsets.
func WithLayout(cfg LayoutConfig) TreeOption {
	return func(c *treeConfig) {
		c.layout = cfg
	}
}

// WithMeasuredOffsets supplies offsets measured by the browser, indexed by
// block ordinal (see BlockSelector). Measured offsets take precedence over
// estimated ones.
func WithMeasuredOffsets(offsets []float64) TreeOption {
	return func(c *treeConfig) {
		c.offsets = offsets
	}
}

// HTMLTree is a Tree backed by a parsed HTML document.
type HTMLTree struct {
	nodes    []*html.Node
	handles  map[*html.Node]Element
	content  *html.Node
	ordinals map[*html.Node]int
	measured map[*html.Node]float64
	tops     map[*html.Node]float64

	mu        sync.Mutex
	selectors map[string]cascadia.Selector
}

var _ Tree = (*HTMLTree)(nil)

// ParseHTML parses rendered preview HTML into a tree.
func ParseHTML(r io.Reader, opts ...TreeOption) (*HTMLTree, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse preview html: %w", err)
	}
	return FromNode(root, opts...), nil
}

// FromNode builds a tree over an already parsed HTML document.
func FromNode(root *html.Node, opts ...TreeOption) *HTMLTree {
	cfg := treeConfig{layout: DefaultLayout()}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &HTMLTree{
		handles:   make(map[*html.Node]Element),
		ordinals:  make(map[*html.Node]int),
		measured:  make(map[*html.Node]float64),
		tops:      map[*html.Node]float64{},
		selectors: make(map[string]cascadia.Selector),
	}
	t.register(root)

	t.content = contentSelector.MatchFirst(root)
	if t.content == nil {
		return t
	}
	i := 0
	for _, n := range blockSelector.MatchAll(t.content) {
		if n == t.content {
			continue
		}
		t.ordinals[n] = i
		if i < len(cfg.offsets) {
			t.measured[n] = cfg.offsets[i]
		}
		i++
	}
	t.tops = estimateLayout(t.content, cfg.layout)
	return t
}

func (t *HTMLTree) register(n *html.Node) {
	if n.Type == html.ElementNode {
		t.handles[n] = Element(len(t.nodes))
		t.nodes = append(t.nodes, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.register(c)
	}
}

func (t *HTMLTree) node(el Element) *html.Node {
	if el < 0 || int(el) >= len(t.nodes) {
		return nil
	}
	return t.nodes[el]
}

// Content returns the .preview-content container.
func (t *HTMLTree) Content() (Element, bool) {
	if t.content == nil {
		return NoElement, false
	}
	return t.handles[t.content], true
}

// QueryAll matches selector against the descendants of scope. An invalid
// selector matches nothing.
func (t *HTMLTree) QueryAll(scope Element, selector string) []Element {
	n := t.node(scope)
	if n == nil {
		return nil
	}
	sel, err := t.compile(selector)
	if err != nil {
		slog.Default().Debug("invalid preview selector", "selector", selector, "error", err)
		return nil
	}
	var out []Element
	for _, m := range sel.MatchAll(n) {
		if m == n {
			continue
		}
		out = append(out, t.handles[m])
	}
	return out
}

func (t *HTMLTree) compile(selector string) (cascadia.Selector, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sel, ok := t.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	t.selectors[selector] = sel
	return sel, nil
}

// TextContent concatenates the text nodes below el in document order.
func (t *HTMLTree) TextContent(el Element) string {
	n := t.node(el)
	if n == nil {
		return ""
	}
	return textOf(n)
}

// OffsetTop returns the measured offset of el or its nearest block ancestor,
// falling back to the estimated layout.
func (t *HTMLTree) OffsetTop(el Element) float64 {
	n := t.node(el)
	for p := n; p != nil; p = p.Parent {
		if top, ok := t.measured[p]; ok {
			return top
		}
	}
	for p := n; p != nil; p = p.Parent {
		if top, ok := t.tops[p]; ok {
			return top
		}
	}
	return 0
}

// Describe reports the tag name and block ordinal of el.
func (t *HTMLTree) Describe(el Element) ElementInfo {
	n := t.node(el)
	if n == nil {
		return ElementInfo{Ordinal: -1}
	}
	ordinal, ok := t.ordinals[n]
	if !ok {
		ordinal = -1
	}
	return ElementInfo{Tag: n.Data, Ordinal: ordinal}
}

// BlockCount returns the number of block elements inside the content container.
func (t *HTMLTree) BlockCount() int {
	return len(t.ordinals)
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
