package markdown

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	wikifilter "github.com/alnah/go-wikifilter"
)

// ErrUnsupportedReplacement is recorded when a visitor returns a replacement
// the goldmark tree cannot hold in the node's position.
var ErrUnsupportedReplacement = errors.New("unsupported replacement node")

// transformerPriority runs the rewrite after goldmark's own transformers.
const transformerPriority = 999

// Visitor decides the replacement for a single node.
// *wikifilter.Rewriter satisfies it.
type Visitor interface {
	Visit(node wikifilter.Node) (replacement wikifilter.Node, changed bool, err error)
}

// Compile-time interface implementation checks.
var (
	_ Visitor               = (*wikifilter.Rewriter)(nil)
	_ parser.ASTTransformer = (*rewriteTransformer)(nil)
	_ goldmark.Extender     = (*rewriteExtension)(nil)
)

// errKey stores the first visitor error of a parse in its parser.Context.
var errKey = parser.NewContextKey()

// Err returns the visitor error recorded while parsing with pc, if any.
func Err(pc parser.Context) error {
	if err, ok := pc.Get(errKey).(error); ok {
		return err
	}
	return nil
}

type rewriteExtension struct {
	visitor Visitor
}

// NewExtension returns a goldmark extension that rewrites the parsed tree with v.
// goldmark transformers cannot fail, so the first error is stored in the parser
// context: parse with parser.WithContext and check Err afterwards.
func NewExtension(v Visitor) goldmark.Extender {
	return &rewriteExtension{visitor: v}
}

func (e *rewriteExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&rewriteTransformer{visitor: e.visitor}, transformerPriority),
		),
	)
}

type rewriteTransformer struct {
	visitor Visitor
}

// pendingRaw is a node to swap for raw markup once the walk is over;
// replacing children while ast.Walk iterates them would skip siblings.
type pendingRaw struct {
	node    ast.Node
	content string
}

func (t *rewriteTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var pending []pendingRaw

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		// Visit on leave so an image inside link text is checked before
		// the link is swapped for raw markup.
		if entering {
			return ast.WalkContinue, nil
		}

		repl, changed, err := t.visitor.Visit(toNode(n, source))
		if err != nil {
			return ast.WalkStop, err
		}
		if !changed {
			return ast.WalkContinue, nil
		}

		switch r := repl.(type) {
		case wikifilter.ImageNode:
			img, ok := n.(*ast.Image)
			if !ok {
				return ast.WalkStop, fmt.Errorf("%w: image in place of %s", ErrUnsupportedReplacement, n.Kind())
			}
			img.Destination = []byte(r.URL)
			return ast.WalkContinue, nil
		case wikifilter.RawMarkupNode:
			pending = append(pending, pendingRaw{node: n, content: r.Content})
			return ast.WalkContinue, nil
		default:
			return ast.WalkStop, fmt.Errorf("%w: %T in place of %s", ErrUnsupportedReplacement, repl, n.Kind())
		}
	})
	if err != nil {
		pc.Set(errKey, err)
		return
	}

	for _, p := range pending {
		parent := p.node.Parent()
		if parent == nil {
			continue
		}
		parent.ReplaceChild(parent, p.node, rawString(p.content))
	}
}

// rawString builds an inline node the HTML renderer writes verbatim.
func rawString(content string) *ast.String {
	s := ast.NewString([]byte(content))
	s.SetCode(true)
	return s
}

// toNode maps a goldmark node to the rewriter's node model.
func toNode(n ast.Node, source []byte) wikifilter.Node {
	switch v := n.(type) {
	case *ast.Image:
		return wikifilter.ImageNode{URL: string(v.Destination)}
	case *ast.Link:
		return wikifilter.LinkNode{URL: string(v.Destination), Title: string(v.Title)}
	case *ast.AutoLink:
		return wikifilter.LinkNode{URL: string(v.URL(source))}
	case *ast.Text:
		return wikifilter.TextNode{Text: string(v.Segment.Value(source))}
	default:
		return wikifilter.OtherNode{Kind: n.Kind().String()}
	}
}
