package pandoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for document decoding.
var (
	ErrMalformedDocument  = errors.New("malformed pandoc document")
	ErrUnsupportedVersion = errors.New("unsupported pandoc API version")
)

// Top-level document keys.
const (
	keyAPIVersion = "pandoc-api-version"
	keyMeta       = "meta"
	keyBlocks     = "blocks"
)

// supportedMajor is the pandoc-types major version this package understands.
const supportedMajor = 1

// minSupportedMinor is the first pandoc-types release with the
// {"pandoc-api-version", "meta", "blocks"} object layout.
const minSupportedMinor = 17

// Document is a decoded pandoc JSON AST.
type Document struct {
	root map[string]any
}

// Decode reads a single pandoc JSON document from r.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep numbers (list start, table widths) byte-exact

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedDocument)
	}

	root, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not an object (pandoc older than 1.18?)", ErrMalformedDocument)
	}

	doc := &Document{root: root}
	if _, err := doc.APIVersion(); err != nil {
		return nil, err
	}
	if _, ok := root[keyBlocks].([]any); !ok {
		return nil, fmt.Errorf("%w: missing %q array", ErrMalformedDocument, keyBlocks)
	}
	if meta, present := root[keyMeta]; present {
		if _, ok := meta.(map[string]any); !ok {
			return nil, fmt.Errorf("%w: %q is not an object", ErrMalformedDocument, keyMeta)
		}
	}

	return doc, nil
}

// APIVersion returns the pandoc-types version the document was written with.
func (d *Document) APIVersion() ([]int, error) {
	raw, ok := d.root[keyAPIVersion].([]any)
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformedDocument, keyAPIVersion)
	}

	version := make([]int, len(raw))
	for i, part := range raw {
		num, ok := part.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: %q component %d is not a number", ErrMalformedDocument, keyAPIVersion, i)
		}
		n, err := num.Int64()
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q component %d: %s", ErrMalformedDocument, keyAPIVersion, i, num)
		}
		version[i] = int(n)
	}

	if version[0] != supportedMajor || (len(version) > 1 && version[1] < minSupportedMinor) {
		return nil, fmt.Errorf("%w: %v (need %d.%d or later %d.x)", ErrUnsupportedVersion, version, supportedMajor, minSupportedMinor, supportedMajor)
	}

	return version, nil
}

// Encode writes the document as JSON followed by a newline.
// HTML characters are not escaped so raw markup stays readable.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d.root); err != nil {
		return fmt.Errorf("encoding pandoc document: %w", err)
	}
	return nil
}

// Bytes returns the encoded document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
