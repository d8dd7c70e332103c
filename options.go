package taglib

import (
	"log/slog"

	"github.com/simonhull/taglib/internal/logger"
	"github.com/simonhull/taglib/internal/native"
)

// Option configures behavior when opening audio files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	file, err := taglib.OpenType("song.flac", taglib.FileTypeFLAC,
//	    taglib.WithStrictType(),
//	    taglib.WithLogger(slog.Default()),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	logger     *slog.Logger
	library    native.Library // nil means the process-wide library
	strictType bool           // Check forced types against magic bytes first
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger: logger.Discard(),
	}
}

// WithLogger sends debug records about the file's native lifetime (open,
// save, close, leaked buffers) to l.
//
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStrictType makes OpenType sniff the file's magic bytes before calling
// the native library, and fail with *InvalidFileError when they name a
// different container than the forced type.
//
// Without it, a mismatching forced type is still rejected, but only after
// the native library has tried and failed to parse the file. Files whose
// signature is not recognized are passed through to the native library.
//
// Has no effect on Open.
func WithStrictType() Option {
	return func(o *openOptions) {
		o.strictType = true
	}
}

// withLibrary opens against l instead of the process-wide library.
func withLibrary(l native.Library) Option {
	return func(o *openOptions) {
		o.library = l
	}
}
