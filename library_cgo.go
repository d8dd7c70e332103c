//go:build cgo && !notaglib

package taglib

import (
	"github.com/simonhull/taglib/internal/native"
	"github.com/simonhull/taglib/internal/native/ctaglib"
)

func newDefaultLibrary() native.Library {
	return ctaglib.New()
}
