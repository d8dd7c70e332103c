package taglib

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
	"time"
)

func TestOpen_ReadsTag(t *testing.T) {
	lib := useFakeLibrary(t)
	file := openSample(t, lib)
	defer file.Close()

	title, err := file.Tag().Title()
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if title != "Test Title" {
		t.Errorf("Title() = %q, want %q", title, "Test Title")
	}

	artist, err := file.Tag().Artist()
	if err != nil {
		t.Fatalf("Artist() error = %v", err)
	}
	if artist != "Test Artist" {
		t.Errorf("Artist() = %q, want %q", artist, "Test Artist")
	}

	if _, ok := file.ForcedType(); ok {
		t.Error("ForcedType() ok = true for Open")
	}
}

func TestOpen_MissingPath(t *testing.T) {
	lib := useFakeLibrary(t)
	before := lib.TotalCalls()

	missing := filepath.Join(t.TempDir(), "missing.mp3")
	file, err := Open(missing)
	if file != nil {
		t.Error("Open() returned a file for a missing path")
	}
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("Open() error = %v, want ErrInvalidPath", err)
	}

	var pathErr *InvalidPathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("Open() error type = %T, want *InvalidPathError", err)
	}
	if pathErr.Path != missing {
		t.Errorf("Path = %q, want %q", pathErr.Path, missing)
	}

	if got := lib.TotalCalls(); got != before {
		t.Errorf("native library was called %d times for a missing path", got-before)
	}
}

func TestOpenType_MissingPath(t *testing.T) {
	lib := useFakeLibrary(t)

	_, err := OpenType(filepath.Join(t.TempDir(), "missing.flac"), FileTypeFLAC)
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("OpenType() error = %v, want ErrInvalidPath", err)
	}
	if lib.Calls("OpenType") != 0 {
		t.Error("native OpenType was called for a missing path")
	}
}

func TestOpen_Directory(t *testing.T) {
	useFakeLibrary(t)

	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("Open(dir) error = %v, want ErrInvalidPath", err)
	}
}

func TestOpen_InvalidContent(t *testing.T) {
	lib := useFakeLibrary(t)
	path := writeFixture(t, "notes.txt", []byte("not audio at all"))

	_, err := Open(path)
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("Open() error = %v, want ErrInvalidFile", err)
	}

	var fileErr *InvalidFileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("Open() error type = %T, want *InvalidFileError", err)
	}
	if fileErr.Forced {
		t.Error("Forced = true for Open")
	}

	// The invalid context is freed and no view is derived from it.
	if lib.Calls("File.Tag") != 0 || lib.Calls("File.AudioProperties") != 0 {
		t.Error("views were derived from an invalid context")
	}
	lib.CheckLeaks(t)
}

func TestOpen_NilContext(t *testing.T) {
	lib := useFakeLibrary(t)
	lib.NilContext = true
	path := writeFixture(t, "sample.mp3", mp3Head)
	lib.Add(path, sampleMP3)

	_, err := Open(path)
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("Open() error = %v, want ErrInvalidFile", err)
	}
}

func TestOpen_NativeUnavailable(t *testing.T) {
	restore := setLibrary(nil)
	defer restore()

	path := writeFixture(t, "sample.mp3", mp3Head)
	_, err := Open(path)
	if !errors.Is(err, ErrNativeUnavailable) {
		t.Fatalf("Open() error = %v, want ErrNativeUnavailable", err)
	}
}

func TestOpenType_Mismatch(t *testing.T) {
	lib := useFakeLibrary(t)
	path := writeFixture(t, "sample.flac", flacHead)
	lib.Add(path, nativetestFLAC())

	_, err := OpenType(path, FileTypeMPEG)
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("OpenType() error = %v, want ErrInvalidFile", err)
	}

	var fileErr *InvalidFileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("OpenType() error type = %T, want *InvalidFileError", err)
	}
	if !fileErr.Forced || fileErr.Type != FileTypeMPEG {
		t.Errorf("error = %+v, want forced MPEG", fileErr)
	}
	if lib.Calls("OpenType") != 1 {
		t.Errorf("native OpenType calls = %d, want 1", lib.Calls("OpenType"))
	}
	lib.CheckLeaks(t)
}

func TestOpenType_Match(t *testing.T) {
	lib := useFakeLibrary(t)
	path := writeFixture(t, "sample.flac", flacHead)
	lib.Add(path, nativetestFLAC())

	file, err := OpenType(path, FileTypeFLAC)
	if err != nil {
		t.Fatalf("OpenType() error = %v", err)
	}
	defer file.Close()

	if typ, ok := file.ForcedType(); !ok || typ != FileTypeFLAC {
		t.Errorf("ForcedType() = %v, %v; want FLAC, true", typ, ok)
	}
	title, _ := file.Tag().Title()
	if title != "Flac Title" {
		t.Errorf("Title() = %q, want %q", title, "Flac Title")
	}
}

func TestOpenType_UnknownType(t *testing.T) {
	lib := useFakeLibrary(t)
	path := writeFixture(t, "sample.mp3", mp3Head)

	_, err := OpenType(path, FileType(42))
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("OpenType() error = %v, want ErrInvalidFile", err)
	}
	if lib.Calls("OpenType") != 0 {
		t.Error("native OpenType was called with an unknown type")
	}
}

func TestOpenType_StrictType(t *testing.T) {
	lib := useFakeLibrary(t)
	path := writeFixture(t, "sample.flac", flacHead)
	lib.Add(path, nativetestFLAC())

	_, err := OpenType(path, FileTypeMPEG, WithStrictType())
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("OpenType() error = %v, want ErrInvalidFile", err)
	}
	if lib.Calls("OpenType") != 0 {
		t.Error("strict type check should reject before the native call")
	}

	file, err := OpenType(path, FileTypeFLAC, WithStrictType())
	if err != nil {
		t.Fatalf("OpenType(FLAC) error = %v", err)
	}
	file.Close()
}

func TestClose_ReleaseOrder(t *testing.T) {
	lib := useFakeLibrary(t)
	file := openSample(t, lib)

	// Strand one outbound buffer as if a setter had been interrupted.
	file.h.arena.Out("stranded", true)

	if err := file.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	events := lib.Events()
	want := []string{"Buffer.Free", "FreeStrings", "File.Free"}
	if !slices.Equal(events, want) {
		t.Errorf("release events = %v, want %v", events, want)
	}
	lib.CheckLeaks(t)
}

func TestClose_Idempotent(t *testing.T) {
	lib := useFakeLibrary(t)
	file := openSample(t, lib)

	for range 3 {
		if err := file.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	if got := lib.Calls("File.Free"); got != 1 {
		t.Errorf("File.Free calls = %d, want 1", got)
	}
	if !file.Closed() {
		t.Error("Closed() = false after Close")
	}
	lib.CheckLeaks(t)
}

func TestUseAfterClose(t *testing.T) {
	lib := useFakeLibrary(t)
	file := openSample(t, lib)
	tag := file.Tag()
	props := file.AudioProperties()
	file.Close()

	before := lib.TotalCalls()

	ops := map[string]func() error{
		"Title":    func() error { _, err := tag.Title(); return err },
		"Artist":   func() error { _, err := tag.Artist(); return err },
		"Album":    func() error { _, err := tag.Album(); return err },
		"Comment":  func() error { _, err := tag.Comment(); return err },
		"Genre":    func() error { _, err := tag.Genre(); return err },
		"Year":     func() error { _, err := tag.Year(); return err },
		"Track":    func() error { _, err := tag.Track(); return err },
		"SetTitle": func() error { return tag.SetTitle("x") },
		"SetAlbum": func() error { return tag.SetAlbum("x") },
		"SetYear":  func() error { return tag.SetYear(1) },
		"SetTrack": func() error { return tag.SetTrack(1) },
		"Property": func() error { _, err := props.Property(PropertyLength); return err },
		"Length":   func() error { _, err := props.Length(); return err },
		"Save":     func() error { return file.Save() },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, ErrUseAfterClose) {
				t.Errorf("%s after Close: error = %v, want ErrUseAfterClose", name, err)
			}
		})
	}

	if got := lib.TotalCalls(); got != before {
		t.Errorf("native library was called %d times after Close", got-before)
	}
	lib.CheckLeaks(t)
}

func TestFile_LeakedFileIsReleased(t *testing.T) {
	lib := useFakeLibrary(t)
	path := writeFixture(t, "sample.mp3", mp3Head)
	lib.Add(path, sampleMP3)

	func() {
		file, err := Open(path)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		_ = file.Path()
	}()

	deadline := time.Now().Add(5 * time.Second)
	for lib.LiveFiles() > 0 && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if n := lib.LiveFiles(); n != 0 {
		t.Fatalf("leaked file contexts = %d, want 0 after GC", n)
	}
	lib.CheckLeaks(t)
}

func TestOpenContext_Cancelled(t *testing.T) {
	lib := useFakeLibrary(t)
	path := writeFixture(t, "sample.mp3", mp3Head)
	lib.Add(path, sampleMP3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := OpenContext(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("OpenContext() error = %v, want context.Canceled", err)
	}
	if lib.Calls("Open") != 0 {
		t.Error("native Open was called with a cancelled context")
	}
}

func TestOpenMany(t *testing.T) {
	lib := useFakeLibrary(t)

	paths := make([]string, 8)
	for i := range paths {
		paths[i] = writeFixture(t, "sample.mp3", mp3Head)
		m := sampleMP3
		m.Track = uint32(i + 1)
		lib.Add(paths[i], m)
	}

	files, err := OpenMany(context.Background(), paths...)
	if err != nil {
		t.Fatalf("OpenMany() error = %v", err)
	}

	for i, f := range files {
		if f.Path() != paths[i] {
			t.Errorf("files[%d].Path() = %q, want %q", i, f.Path(), paths[i])
		}
		track, _ := f.Tag().Track()
		if track != uint32(i+1) {
			t.Errorf("files[%d] track = %d, want %d", i, track, i+1)
		}
		f.Close()
	}
	lib.CheckLeaks(t)
}

func TestOpenMany_FailureClosesOpened(t *testing.T) {
	lib := useFakeLibrary(t)

	good := writeFixture(t, "good.mp3", mp3Head)
	lib.Add(good, sampleMP3)
	bad := filepath.Join(t.TempDir(), "missing.mp3")

	files, err := OpenMany(context.Background(), good, bad)
	if err == nil {
		t.Fatal("OpenMany() error = nil, want error")
	}
	if files != nil {
		t.Error("OpenMany() returned files on error")
	}
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("OpenMany() error = %v, want ErrInvalidPath", err)
	}
	lib.CheckLeaks(t)
}

func TestOpenMany_Empty(t *testing.T) {
	files, err := OpenMany(context.Background())
	if err != nil || files != nil {
		t.Errorf("OpenMany() = %v, %v; want nil, nil", files, err)
	}
}
