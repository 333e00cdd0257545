// Package pandoc runs a node visitor over the JSON AST that pandoc hands to
// filter executables (pandoc --filter).
//
// The package decodes the document generically, so node types it does not
// rewrite are round-tripped without loss:
//   - Decode reads and validates the JSON document
//   - Document.Walk visits every element depth-first, children before their
//     parent, metadata first, then blocks
//   - Document.Encode writes the JSON back
//
// Filter chains the three and only writes output once the whole document has
// been rewritten. Converter drives the pandoc executable itself, for callers
// that start from Markdown rather than from a filter pipe.
package pandoc
