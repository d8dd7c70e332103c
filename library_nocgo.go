//go:build !cgo || notaglib

package taglib

import "github.com/simonhull/taglib/internal/native"

// Without cgo there is no native library; Open reports ErrNativeUnavailable.
func newDefaultLibrary() native.Library {
	return nil
}
