package pandoc

import (
	"fmt"
	"io"
)

// Filter reads a pandoc JSON document from r, rewrites it with v and writes
// the result to w. Nothing is written to w unless every node was rewritten
// successfully.
func Filter(r io.Reader, w io.Writer, v Visitor) (Stats, error) {
	doc, err := Decode(r)
	if err != nil {
		return Stats{}, err
	}

	stats, err := doc.Walk(v)
	if err != nil {
		return stats, err
	}

	out, err := doc.Bytes()
	if err != nil {
		return stats, err
	}

	if _, err := w.Write(out); err != nil {
		return stats, fmt.Errorf("writing pandoc document: %w", err)
	}
	return stats, nil
}
