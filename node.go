package wikifilter

// Node is a document tree node as seen by the rewriter.
// The set of variants is closed: only types in this package implement Node.
type Node interface {
	node()
}

// ImageNode references an image asset by a relative or local path.
type ImageNode struct {
	URL string
}

// MathNode holds raw math source.
type MathNode struct {
	Text string
}

// LinkNode is a hyperlink. Title may be empty.
type LinkNode struct {
	URL   string
	Title string
}

// TextNode is literal text. It is never rewritten.
type TextNode struct {
	Text string
}

// RawMarkupNode is unescaped target-format markup emitted verbatim by the
// renderer. Math and link rewrites produce it.
type RawMarkupNode struct {
	Content string
}

// OtherNode stands for any host node the rewriter does not recognize.
// Kind carries the host's name for the node, for diagnostics only.
type OtherNode struct {
	Kind string
}

func (ImageNode) node()     {}
func (MathNode) node()      {}
func (LinkNode) node()      {}
func (TextNode) node()      {}
func (RawMarkupNode) node() {}
func (OtherNode) node()     {}
