package wikifilter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alnah/go-wikifilter/internal/fileutil"
)

// Default rewrite constants.
const (
	DefaultBaseURL      = "https://raw.githubusercontent.com/illinois-cs241/coursebook/master/"
	DefaultLegacyExt    = ".eps"
	DefaultPublishedExt = ".png"
)

// Fixed passthrough literals.
const (
	mathOpen       = "$$ "
	mathClose      = " $$"
	anchorTemplate = `<a href="%s">%s</a>`
)

// Config holds the immutable rewrite settings.
type Config struct {
	BaseURL      string // prefix for every rewritten image URL
	LegacyExt    string // image suffix replaced before publishing
	PublishedExt string // replacement suffix
}

// DefaultConfig returns the coursebook configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		LegacyExt:    DefaultLegacyExt,
		PublishedExt: DefaultPublishedExt,
	}
}

// Validate checks that the base URL is an absolute http(s) URL and that both
// extensions start with a dot.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL cannot be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base URL: %v", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base URL must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.BaseURL)
	}
	if !strings.HasPrefix(c.LegacyExt, ".") {
		return fmt.Errorf("%w: legacy extension must start with '.', got %q", ErrInvalidConfig, c.LegacyExt)
	}
	if !strings.HasPrefix(c.PublishedExt, ".") {
		return fmt.Errorf("%w: published extension must start with '.', got %q", ErrInvalidConfig, c.PublishedExt)
	}
	return nil
}

// ExistsFunc reports whether a regular file exists at path.
type ExistsFunc func(path string) bool

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithExistsFunc replaces the filesystem check used for image assets.
// A nil fn is ignored.
func WithExistsFunc(fn ExistsFunc) Option {
	return func(r *Rewriter) {
		if fn != nil {
			r.exists = fn
		}
	}
}

// Rewriter classifies nodes and produces their publishable replacement.
// Create with NewRewriter.
type Rewriter struct {
	cfg    Config
	exists ExistsFunc
}

// NewRewriter creates a Rewriter that checks image assets on the local
// filesystem relative to the working directory.
func NewRewriter(cfg Config, opts ...Option) (*Rewriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Rewriter{
		cfg:    cfg,
		exists: fileutil.FileExists,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// MustNewRewriter is like NewRewriter but panics on invalid config.
func MustNewRewriter(cfg Config, opts ...Option) *Rewriter {
	r, err := NewRewriter(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Config returns the rewriter's configuration.
func (r *Rewriter) Config() Config {
	return r.cfg
}

// Visit returns the replacement for node. When changed is false the host must
// keep the original node. Hosts visit a node's children before the node, so
// an image nested in a link is checked even though the link is replaced.
//
// The only error is a *MissingAssetError for an image whose rewritten path
// does not exist; the host must abort the whole document on it.
func (r *Rewriter) Visit(node Node) (replacement Node, changed bool, err error) {
	switch n := node.(type) {
	case ImageNode:
		img, imgErr := r.rewriteImage(n)
		if imgErr != nil {
			return nil, false, imgErr
		}
		return img, true, nil
	case MathNode:
		return RawMarkupNode{Content: MathMarkup(n.Text)}, true, nil
	case LinkNode:
		return RawMarkupNode{Content: LinkMarkup(n.URL, n.Title)}, true, nil
	default:
		// TextNode, RawMarkupNode, OtherNode and nil pass through unchanged.
		return node, false, nil
	}
}

// rewriteImage swaps the legacy extension, checks the asset and makes the URL absolute.
func (r *Rewriter) rewriteImage(n ImageNode) (ImageNode, error) {
	path := ReplaceSuffix(n.URL, r.cfg.LegacyExt, r.cfg.PublishedExt)
	if !r.exists(path) {
		return ImageNode{}, &MissingAssetError{Path: path}
	}
	return ImageNode{URL: r.cfg.BaseURL + path}, nil
}

// ReplaceSuffix replaces a trailing oldSuffix of s with newSuffix.
// The match is exact and case-sensitive; s is returned unchanged otherwise.
func ReplaceSuffix(s, oldSuffix, newSuffix string) string {
	if oldSuffix == "" || !strings.HasSuffix(s, oldSuffix) {
		return s
	}
	return strings.TrimSuffix(s, oldSuffix) + newSuffix
}

// MathMarkup wraps math source in display delimiters for passthrough.
func MathMarkup(text string) string {
	return mathOpen + text + mathClose
}

// LinkMarkup renders a literal anchor tag. An empty title falls back to href.
// Neither value is escaped.
func LinkMarkup(href, title string) string {
	if title == "" {
		title = href
	}
	return fmt.Sprintf(anchorTemplate, href, title)
}
