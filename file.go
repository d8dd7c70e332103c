package taglib

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/taglib/internal/cstring"
	"github.com/simonhull/taglib/internal/native"
)

// File is an open native TagLib file context.
//
// A File exclusively owns its native context. Its Tag and AudioProperties
// views borrow from it and stop working once it is closed: every call then
// returns ErrUseAfterClose instead of touching freed memory.
//
// Always call Close() when done to release native resources:
//
//	file, err := taglib.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//
// A File serializes its own native calls, so Close racing a getter on
// another goroutine is safe. Distinct Files share nothing but the
// process-wide encoding configuration (see SetUnicode).
type File struct {
	mu     sync.Mutex
	closed bool

	path   string
	typ    FileType // Forced type, meaningful only when forced is set
	forced bool

	h       *handle
	tag     *Tag
	props   *AudioProperties
	log     *slog.Logger
	cleanup runtime.Cleanup
}

// handle is the native state of a File. It never points back at the File,
// so a leaked File can still be reclaimed and its context released.
type handle struct {
	lib   native.Library
	file  native.File
	arena *cstring.Arena
}

// release frees pending string buffers, then any strings the library still
// manages, then the context itself. It returns the number of buffers that
// were still pending.
func (h *handle) release() int {
	n := h.arena.FreeAll()
	h.lib.FreeStrings()
	h.file.Free()
	return n
}

// Open opens an audio file, letting the native library detect its format.
//
// Returns *InvalidPathError if path does not name an existing file (the
// native library is not called), and *InvalidFileError if the native library
// cannot parse it.
//
// Example:
//
//	file, err := taglib.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//	title, _ := file.Tag().Title()
func Open(path string, opts ...Option) (*File, error) {
	return open(path, 0, false, opts)
}

// OpenType opens an audio file as the given container type instead of
// letting the native library detect it.
//
// Returns *InvalidFileError if the content does not parse as typ.
func OpenType(path string, typ FileType, opts ...Option) (*File, error) {
	return open(path, typ, true, opts)
}

func open(path string, typ FileType, forced bool, opts []Option) (*File, error) { //nolint:gocyclo // Sequential validation steps
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &InvalidPathError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &InvalidPathError{Path: path, Err: errors.New("is a directory")}
	}

	if forced && !typ.Valid() {
		return nil, &InvalidFileError{Path: path, Type: typ, Forced: true, Reason: "unknown file type"}
	}

	if forced && options.strictType {
		if detected, err := DetectFileType(path); err == nil && detected != typ {
			return nil, &InvalidFileError{
				Path:   path,
				Type:   typ,
				Forced: true,
				Reason: fmt.Sprintf("content looks like %s", detected),
			}
		}
	}

	lib := options.library
	if lib == nil {
		lib = currentLibrary()
	}
	if lib == nil {
		return nil, fmt.Errorf("open %s: %w", path, ErrNativeUnavailable)
	}

	var nf native.File
	if forced {
		nf = lib.OpenType(path, int(typ))
	} else {
		nf = lib.Open(path)
	}
	if nf == nil {
		return nil, &InvalidFileError{Path: path, Type: typ, Forced: forced, Reason: "native library returned no context"}
	}

	// Never derive views from an invalid context.
	if !nf.Valid() {
		nf.Free()
		reason := "not a supported audio file"
		if forced {
			reason = "content does not match forced type"
		}
		return nil, &InvalidFileError{Path: path, Type: typ, Forced: forced, Reason: reason}
	}

	f := &File{
		path:   path,
		typ:    typ,
		forced: forced,
		log:    options.logger.With("path", path),
		h: &handle{
			lib:   lib,
			file:  nf,
			arena: cstring.NewArena(lib),
		},
	}
	f.tag = &Tag{f: f, t: nf.Tag()}
	f.props = &AudioProperties{f: f, p: nf.AudioProperties()}

	log := f.log
	f.cleanup = runtime.AddCleanup(f, func(h *handle) {
		n := h.release()
		log.Warn("file garbage collected without Close", "pending_buffers", n)
	}, f.h)

	if forced {
		f.log.Debug("opened file", "library", lib.Name(), "type", typ)
	} else {
		f.log.Debug("opened file", "library", lib.Name())
	}
	return f, nil
}

// OpenContext opens a file with context support for cancellation.
//
// Native opens cannot be interrupted, so the context is only checked
// before starting.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple audio files concurrently.
//
// Files are opened in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. Opening
// distinct files concurrently is safe since each owns its native context.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
// Example:
//
//	files, err := taglib.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, f := range files {
//			f.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	return openMany(ctx, paths, nil)
}

func openMany(ctx context.Context, paths []string, opts []Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}

	return results, nil
}

// Close releases the native context: pending string buffers first, then
// the context itself.
//
// Close is idempotent. After the first call every operation on the File or
// its views returns ErrUseAfterClose, and later Close calls return nil.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	f.cleanup.Stop()

	if n := f.h.release(); n > 0 {
		f.log.Debug("freed pending buffers on close", "count", n)
	}
	f.log.Debug("closed file")
	return nil
}

// Closed reports whether Close has been called.
func (f *File) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Path returns the path the file was opened with.
func (f *File) Path() string {
	return f.path
}

// ForcedType returns the type passed to OpenType. ok is false for files
// opened with Open.
func (f *File) ForcedType() (typ FileType, ok bool) {
	return f.typ, f.forced
}

// Tag returns the file's tag view. The view is valid only while f is open.
func (f *File) Tag() *Tag {
	return f.tag
}

// AudioProperties returns the file's audio properties view. The view is
// valid only while f is open.
func (f *File) AudioProperties() *AudioProperties {
	return f.props
}

// lock acquires f for one native call. It fails with ErrUseAfterClose,
// leaving f unlocked, once f is closed.
func (f *File) lock() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return fmt.Errorf("%s: %w", f.path, ErrUseAfterClose)
	}
	return nil
}
