package wikifilter

import "errors"

// Sentinel errors for rewriter operations.
var (
	ErrMissingAsset  = errors.New("missing image asset")
	ErrInvalidConfig = errors.New("invalid rewriter config")
)

// MissingAssetError reports an image whose rewritten path does not exist.
// It matches ErrMissingAsset with errors.Is.
type MissingAssetError struct {
	Path string // path after extension substitution, relative to the working directory
}

func (e *MissingAssetError) Error() string {
	return ErrMissingAsset.Error() + ": " + e.Path
}

// Is reports whether target is ErrMissingAsset.
func (e *MissingAssetError) Is(target error) bool {
	return target == ErrMissingAsset
}
