package taglib

import (
	"github.com/simonhull/taglib/internal/types"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrInvalidPath is matched by every *InvalidPathError.
	ErrInvalidPath = types.ErrInvalidPath
	// ErrInvalidFile is matched by every *InvalidFileError.
	ErrInvalidFile = types.ErrInvalidFile
	// ErrUseAfterClose is returned by any operation on a closed File or its views.
	ErrUseAfterClose = types.ErrUseAfterClose
	// ErrNativeUnavailable is returned by Open in builds without libtag_c.
	ErrNativeUnavailable = types.ErrNativeUnavailable
)

// InvalidPathError is an alias to types.InvalidPathError.
// Re-exporting from internal/types to maintain public API.
type InvalidPathError = types.InvalidPathError

// InvalidFileError is an alias to types.InvalidFileError.
// Re-exporting from internal/types to maintain public API.
type InvalidFileError = types.InvalidFileError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// SaveError is an alias to types.SaveError.
// Re-exporting from internal/types to maintain public API.
type SaveError = types.SaveError

// UnknownPropertyError is an alias to types.UnknownPropertyError.
// Re-exporting from internal/types to maintain public API.
type UnknownPropertyError = types.UnknownPropertyError

// UnknownEncodingError is an alias to types.UnknownEncodingError.
// Re-exporting from internal/types to maintain public API.
type UnknownEncodingError = types.UnknownEncodingError
