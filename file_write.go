package taglib

import (
	"fmt"
	"io"
	"os"

	"github.com/simonhull/taglib/internal/native"
)

// Save writes the in-memory tag changes back to the file.
//
// The native library rewrites the file in place. Options can be provided to
// customize save behavior:
//
//	err := file.Save(
//	    taglib.WithBackup(".bak"),
//	    taglib.WithPreserveModTime(),
//	)
//
// Returns *SaveError if the native library reports failure, and
// ErrUseAfterClose if the file is closed.
func (f *File) Save(opts ...SaveOption) error {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := f.lock(); err != nil {
		return err
	}
	defer f.mu.Unlock()

	var orig os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(f.path); err == nil {
			orig = info
		}
	}

	if options.backupSuffix != "" {
		if err := copyFile(f.path, f.path+options.backupSuffix); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if !f.h.file.Save() {
		return &SaveError{Path: f.path}
	}

	if orig != nil {
		_ = os.Chtimes(f.path, orig.ModTime(), orig.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	if options.validate {
		if err := f.validateWrittenFile(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	f.log.Debug("saved file", "backup", options.backupSuffix != "", "validated", options.validate)
	return nil
}

// validateWrittenFile re-opens the file and compares the text fields.
// Must be called with f.mu held.
func (f *File) validateWrittenFile() error {
	opts := []Option{withLibrary(f.h.lib)}
	var (
		written *File
		err     error
	)
	if f.forced {
		written, err = OpenType(f.path, f.typ, opts...)
	} else {
		written, err = Open(f.path, opts...)
	}
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}
	defer written.Close() //nolint:errcheck // Best effort close

	for _, field := range []native.Field{native.FieldTitle, native.FieldArtist, native.FieldAlbum} {
		want := f.tag.readText(field)
		got, err := written.tag.text(field)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("%s mismatch: got %q, want %q", field, got, want)
		}
	}

	return nil
}

// copyFile copies src to dst, keeping src's permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close() //nolint:errcheck // Best effort cleanup
		return err
	}
	return out.Close()
}
