// Package wikifilter rewrites image, math and link nodes of a document tree so
// that the same source renders on a Jekyll site and on a GitHub wiki.
//
// # Quick Start
//
// Create a rewriter and visit nodes supplied by a host document pipeline:
//
//	rw, err := wikifilter.NewRewriter(wikifilter.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	repl, changed, err := rw.Visit(wikifilter.LinkNode{URL: "https://example.com"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if changed {
//	    fmt.Println(repl.(wikifilter.RawMarkupNode).Content)
//	}
//
// # Rewrites
//
// The rewriter performs exactly three rewrites:
//
//  1. Images: a trailing ".eps" becomes ".png", the asset must exist on disk
//     relative to the working directory, and the URL is prefixed with the
//     absolute raw-content base URL.
//  2. Math: the source is wrapped as "$$ text $$" raw markup so Jekyll passes
//     it through untouched.
//  3. Links: every link becomes a literal <a href="URL">TITLE</a> anchor.
//     An empty title falls back to the URL.
//
// Every other node is left unchanged.
//
// # Errors
//
// A missing image asset is the only failure. It is reported as a
// *MissingAssetError, which matches ErrMissingAsset with errors.Is:
//
//	_, _, err := rw.Visit(wikifilter.ImageNode{URL: "diagrams/fig1.eps"})
//	if errors.Is(err, wikifilter.ErrMissingAsset) {
//	    // abort the whole document
//	}
//
// # Security
//
// Link URLs and titles are embedded into the anchor markup without escaping.
// Only trusted documents should be passed through the rewriter.
//
// # Concurrency
//
// A Rewriter holds no mutable state and is safe for concurrent use by
// multiple goroutines.
package wikifilter
