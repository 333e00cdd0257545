package pandoc

import (
	"errors"
	"fmt"
	"sort"

	wikifilter "github.com/alnah/go-wikifilter"
)

// ErrUnsupportedReplacement is returned when a visitor replaces a node with a
// variant that cannot stand in a pandoc inline position.
var ErrUnsupportedReplacement = errors.New("unsupported replacement node")

// Element tags the walker maps to rewriter nodes.
const (
	tagImage     = "Image"
	tagLink      = "Link"
	tagMath      = "Math"
	tagStr       = "Str"
	tagRawInline = "RawInline"
)

// rawFormat is the format of emitted RawInline elements.
const rawFormat = "html"

// Visitor decides the replacement for a single node.
// *wikifilter.Rewriter satisfies it.
type Visitor interface {
	Visit(node wikifilter.Node) (replacement wikifilter.Node, changed bool, err error)
}

// Compile-time interface implementation check.
var _ Visitor = (*wikifilter.Rewriter)(nil)

// Stats counts the rewrites applied during a walk.
type Stats struct {
	Images int
	Math   int
	Links  int
}

// Total returns the number of rewritten nodes.
func (s Stats) Total() int {
	return s.Images + s.Math + s.Links
}

// Add returns the sum of two Stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{Images: s.Images + o.Images, Math: s.Math + o.Math, Links: s.Links + o.Links}
}

// Walk visits every element depth-first, children before their parent,
// metadata first (keys in sorted order), then blocks, and applies the
// visitor's replacements in place. The first visitor error aborts the walk;
// the document is then partially rewritten and must be discarded.
func (d *Document) Walk(v Visitor) (Stats, error) {
	w := &walker{visitor: v}

	if meta, ok := d.root[keyMeta].(map[string]any); ok {
		if err := w.walkObject(meta); err != nil {
			return w.stats, err
		}
	}

	blocks, ok := d.root[keyBlocks].([]any)
	if !ok {
		return w.stats, fmt.Errorf("%w: missing %q array", ErrMalformedDocument, keyBlocks)
	}
	if err := w.walkList(blocks); err != nil {
		return w.stats, err
	}

	return w.stats, nil
}

type walker struct {
	visitor Visitor
	stats   Stats
}

// walkValue walks any JSON value and returns the value to store in its place.
func (w *walker) walkValue(val any) (any, error) {
	switch v := val.(type) {
	case []any:
		return v, w.walkList(v)
	case map[string]any:
		if tag, ok := v["t"].(string); ok {
			return w.walkElement(v, tag)
		}
		return v, w.walkObject(v)
	default:
		return v, nil
	}
}

func (w *walker) walkList(list []any) error {
	for i, item := range list {
		repl, err := w.walkValue(item)
		if err != nil {
			return err
		}
		list[i] = repl
	}
	return nil
}

// walkObject walks a plain JSON object such as the metadata map.
func (w *walker) walkObject(obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		repl, err := w.walkValue(obj[k])
		if err != nil {
			return err
		}
		obj[k] = repl
	}
	return nil
}

// walkElement walks an element's content first, then visits the element
// itself. Nested images are therefore checked even when their parent is
// replaced by raw markup; rewrites counted inside a replaced parent are
// dropped from the stats along with the content.
func (w *walker) walkElement(elem map[string]any, tag string) (any, error) {
	before := w.stats
	if content, ok := elem["c"]; ok {
		c, err := w.walkValue(content)
		if err != nil {
			return nil, err
		}
		elem["c"] = c
	}

	node, err := toNode(elem, tag)
	if err != nil {
		return nil, err
	}

	repl, changed, err := w.visitor.Visit(node)
	if err != nil {
		return nil, err
	}
	if !changed {
		return elem, nil
	}

	switch r := repl.(type) {
	case wikifilter.ImageNode:
		if tag != tagImage {
			return nil, fmt.Errorf("%w: image in place of %s", ErrUnsupportedReplacement, tag)
		}
		setTargetURL(elem, r.URL)
		w.stats.Images++
		return elem, nil
	case wikifilter.RawMarkupNode:
		w.stats = before
		w.countRaw(tag)
		return rawInline(r.Content), nil
	default:
		return nil, fmt.Errorf("%w: %T in place of %s", ErrUnsupportedReplacement, repl, tag)
	}
}

func (w *walker) countRaw(tag string) {
	switch tag {
	case tagMath:
		w.stats.Math++
	case tagLink:
		w.stats.Links++
	}
}

// toNode maps a pandoc element to the rewriter's node model.
func toNode(elem map[string]any, tag string) (wikifilter.Node, error) {
	switch tag {
	case tagImage:
		url, _, err := target(elem, tag)
		if err != nil {
			return nil, err
		}
		return wikifilter.ImageNode{URL: url}, nil
	case tagLink:
		url, title, err := target(elem, tag)
		if err != nil {
			return nil, err
		}
		return wikifilter.LinkNode{URL: url, Title: title}, nil
	case tagMath:
		c, ok := elem["c"].([]any)
		if !ok || len(c) != 2 {
			return nil, fmt.Errorf("%w: %s content must be [mathType, text]", ErrMalformedDocument, tag)
		}
		text, ok := c[1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s text is not a string", ErrMalformedDocument, tag)
		}
		return wikifilter.MathNode{Text: text}, nil
	case tagStr:
		text, ok := elem["c"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s content is not a string", ErrMalformedDocument, tag)
		}
		return wikifilter.TextNode{Text: text}, nil
	default:
		return wikifilter.OtherNode{Kind: tag}, nil
	}
}

// target extracts [url, title] from an Image or Link: c = [attr, inlines, [url, title]].
func target(elem map[string]any, tag string) (url, title string, err error) {
	tgt, err := targetPair(elem, tag)
	if err != nil {
		return "", "", err
	}
	url, okURL := tgt[0].(string)
	title, okTitle := tgt[1].(string)
	if !okURL || !okTitle {
		return "", "", fmt.Errorf("%w: %s target must hold two strings", ErrMalformedDocument, tag)
	}
	return url, title, nil
}

func targetPair(elem map[string]any, tag string) ([]any, error) {
	c, ok := elem["c"].([]any)
	if !ok || len(c) != 3 {
		return nil, fmt.Errorf("%w: %s content must be [attr, inlines, target]", ErrMalformedDocument, tag)
	}
	tgt, ok := c[2].([]any)
	if !ok || len(tgt) != 2 {
		return nil, fmt.Errorf("%w: %s target must be [url, title]", ErrMalformedDocument, tag)
	}
	return tgt, nil
}

// setTargetURL overwrites the url of an element already validated by toNode.
func setTargetURL(elem map[string]any, url string) {
	c := elem["c"].([]any)
	tgt := c[2].([]any)
	tgt[0] = url
}

func rawInline(content string) map[string]any {
	return map[string]any{
		"t": tagRawInline,
		"c": []any{rawFormat, content},
	}
}
