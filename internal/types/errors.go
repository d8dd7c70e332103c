package types

import (
	"errors"
	"fmt"
)

// Sentinel errors. The struct error types below match them with errors.Is.
var (
	// ErrInvalidPath reports a path that does not name an existing file.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidFile reports a file the native library could not open as valid audio.
	ErrInvalidFile = errors.New("invalid file")

	// ErrUseAfterClose reports an operation on a file (or one of its views) after Close.
	ErrUseAfterClose = errors.New("use after close")

	// ErrNativeUnavailable reports a build without the native TagLib library.
	ErrNativeUnavailable = errors.New("native taglib library not available")
)

// InvalidPathError is returned when the path to open does not exist.
// The native library is never called in that case.
type InvalidPathError struct {
	Err  error
	Path string
}

func (e *InvalidPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid path: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: invalid path", e.Path)
}

// Is matches ErrInvalidPath.
func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}

func (e *InvalidPathError) Unwrap() error {
	return e.Err
}

// InvalidFileError is returned when the native context reports itself invalid:
// unsupported or corrupt content, or content that does not match a forced type.
type InvalidFileError struct {
	Path   string
	Reason string
	Type   FileType // Forced type, meaningful only when Forced is set
	Forced bool
}

func (e *InvalidFileError) Error() string {
	if e.Forced {
		return fmt.Sprintf("%s: invalid file (forced type %s): %s", e.Path, e.Type, e.Reason)
	}
	return fmt.Sprintf("%s: invalid file: %s", e.Path, e.Reason)
}

// Is matches ErrInvalidFile.
func (e *InvalidFileError) Is(target error) bool {
	return target == ErrInvalidFile
}

// UnsupportedFormatError is returned when a file signature is not recognized.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// SaveError is returned when the native library fails to write tags back to disk.
type SaveError struct {
	Path string
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s: save failed", e.Path)
}

// UnknownPropertyError is returned for a Property value outside the known set.
type UnknownPropertyError struct {
	Property Property
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown audio property %s", e.Property)
}

// UnknownEncodingError is returned for a TextEncoding value outside the known set.
type UnknownEncodingError struct {
	Encoding TextEncoding
}

func (e *UnknownEncodingError) Error() string {
	return fmt.Sprintf("unknown text encoding %s", e.Encoding)
}
