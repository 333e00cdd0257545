// Package markdown applies the rewriter to goldmark's Markdown AST and renders
// an HTML preview of the rewritten document.
//
// It is the pure-Go counterpart of the pandoc filter: images get their
// published absolute URL, links become literal anchors. goldmark's core
// grammar has no math node, so math source is left to the renderer.
package markdown
