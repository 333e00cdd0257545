package wikifilter_test

import (
	"errors"
	"fmt"
	"testing"

	wikifilter "github.com/alnah/go-wikifilter"
)

func TestMissingAssetError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("chapter.json: %w", &wikifilter.MissingAssetError{Path: "diagrams/fig1.png"})

	if !errors.Is(err, wikifilter.ErrMissingAsset) {
		t.Error("wrapped MissingAssetError does not match ErrMissingAsset")
	}
	if errors.Is(err, wikifilter.ErrInvalidConfig) {
		t.Error("MissingAssetError should not match ErrInvalidConfig")
	}

	var missing *wikifilter.MissingAssetError
	if !errors.As(err, &missing) {
		t.Fatal("errors.As failed on wrapped MissingAssetError")
	}
	if missing.Path != "diagrams/fig1.png" {
		t.Errorf("Path = %q, want %q", missing.Path, "diagrams/fig1.png")
	}

	want := "chapter.json: missing image asset: diagrams/fig1.png"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
