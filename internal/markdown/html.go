package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// htmlTemplate wraps goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Preview</title>
</head>
<body>
%s
</body>
</html>`

// Converter renders Markdown to HTML after rewriting it.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter creates a Converter with GFM extensions, footnotes, syntax
// highlighting and the rewrite extension for v.
func NewConverter(v Visitor) *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes, so the page stylesheet controls colors
				),
			),
			NewExtension(v),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
			// WithUnsafe is not set: raw HTML typed in the source is dropped,
			// only markup produced by the rewrite is emitted verbatim.
		),
	)
	return &Converter{md: md}
}

// Fragment converts Markdown to an HTML fragment. The visitor's error, such as
// a missing image asset, is returned unwrapped.
func (c *Converter) Fragment(content []byte) ([]byte, error) {
	pc := parser.NewContext()

	var buf bytes.Buffer
	if err := c.md.Convert(content, &buf, parser.WithContext(pc)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	if err := Err(pc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *Converter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		frag, err := c.Fragment([]byte(content))
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{html: fmt.Sprintf(htmlTemplate, frag)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
