// Package preview locates rendered preview elements that correspond to
// markdown key points.
//
// The rendered preview is reached only through the Tree capability interface,
// so matching can run against a parsed HTML document (HTMLTree) as well as
// against a tree mirrored from a browser.
package preview

// Element is an opaque handle to a node of a rendered preview tree.
type Element int

// NoElement is the zero handle returned alongside a false ok value.
const NoElement Element = -1

// ElementInfo describes an element for API consumers.
type ElementInfo struct {
	Tag     string `json:"tag"`
	Ordinal int    `json:"ordinal"` // position among block elements, -1 if not a block
}

// Tree is the read-only view of a rendered preview.
type Tree interface {
	// Content returns the container holding the rendered markdown. ok is
	// false while the preview is not mounted.
	Content() (el Element, ok bool)
	// QueryAll returns the descendants of scope matching a CSS selector, in
	// document order.
	QueryAll(scope Element, selector string) []Element
	// TextContent concatenates all descendant text of el in document order.
	TextContent(el Element) string
	// OffsetTop returns the vertical position of el inside the preview.
	OffsetTop(el Element) float64
	// Describe reports the tag and block ordinal of el.
	Describe(el Element) ElementInfo
}

// Behavior selects how a scroll is animated.
type Behavior string

const (
	Smooth  Behavior = "smooth"
	Instant Behavior = "instant"
)

// Viewport is the scrollable preview pane.
type Viewport interface {
	// Tree returns the rendered tree, or nil if nothing is rendered yet.
	Tree() Tree
	// ScrollTo moves the pane to the given offset.
	ScrollTo(top float64, behavior Behavior)
}

// BlockSelector enumerates the elements that carry a block ordinal. Offsets
// measured by a browser are reported in this order.
const BlockSelector = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote, hr"
