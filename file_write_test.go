package taglib

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"
)

func TestSave_Persists(t *testing.T) {
	lib := useFakeLibrary(t)
	file := openSample(t, lib)
	path := file.Path()

	if err := file.Tag().SetAlbum("Saved Album"); err != nil {
		t.Fatal(err)
	}
	if err := file.Tag().SetYear(2024); err != nil {
		t.Fatal(err)
	}
	if err := file.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	file.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() after save error = %v", err)
	}
	defer reopened.Close()

	if album, _ := reopened.Tag().Album(); album != "Saved Album" {
		t.Errorf("Album() = %q, want %q", album, "Saved Album")
	}
	if year, _ := reopened.Tag().Year(); year != 2024 {
		t.Errorf("Year() = %d, want 2024", year)
	}
}

func TestSave_NativeFailure(t *testing.T) {
	lib := useFakeLibrary(t)
	lib.FailSave = true
	file := openSample(t, lib)
	defer file.Close()

	err := file.Save()
	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("Save() error = %v, want *SaveError", err)
	}
	if saveErr.Path != file.Path() {
		t.Errorf("Path = %q, want %q", saveErr.Path, file.Path())
	}
}

func TestSave_WithBackup(t *testing.T) {
	lib := useFakeLibrary(t)
	file := openSample(t, lib)
	defer file.Close()

	if err := file.Save(WithBackup(".bak")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	backup, err := os.ReadFile(file.Path() + ".bak")
	if err != nil {
		t.Fatalf("backup not created: %v", err)
	}
	if !bytes.Equal(backup, mp3Head) {
		t.Error("backup content differs from the original")
	}
}

func TestSave_WithPreserveModTime(t *testing.T) {
	lib := useFakeLibrary(t)
	file := openSample(t, lib)
	defer file.Close()

	old := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(file.Path(), old, old); err != nil {
		t.Fatal(err)
	}

	if err := file.Save(WithPreserveModTime()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(file.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(old) {
		t.Errorf("ModTime() = %v, want %v", info.ModTime(), old)
	}
}

func TestSave_WithValidation(t *testing.T) {
	lib := useFakeLibrary(t)
	file := openSample(t, lib)

	if err := file.Tag().SetTitle("Validated"); err != nil {
		t.Fatal(err)
	}
	if err := file.Save(WithValidation()); err != nil {
		t.Fatalf("Save(WithValidation) error = %v", err)
	}
	file.Close()

	// The validation context was closed too.
	lib.CheckLeaks(t)
}

func TestSave_AfterClose(t *testing.T) {
	lib := useFakeLibrary(t)
	file := openSample(t, lib)
	file.Close()

	if err := file.Save(WithBackup(".bak")); !errors.Is(err, ErrUseAfterClose) {
		t.Fatalf("Save() error = %v, want ErrUseAfterClose", err)
	}
	if _, err := os.Stat(file.Path() + ".bak"); !os.IsNotExist(err) {
		t.Error("backup was created for a closed file")
	}
	if lib.Calls("File.Save") != 0 {
		t.Error("native Save was called after Close")
	}
}

func TestSaveOptions(t *testing.T) {
	opts := defaultSaveOptions()
	if opts.backupSuffix != "" || opts.validate || opts.preserveModTime {
		t.Errorf("defaultSaveOptions() = %+v, want zero", *opts)
	}

	for _, opt := range []SaveOption{WithBackup(".orig"), WithValidation(), WithPreserveModTime()} {
		opt(opts)
	}
	if opts.backupSuffix != ".orig" {
		t.Errorf("backupSuffix = %q, want %q", opts.backupSuffix, ".orig")
	}
	if !opts.validate || !opts.preserveModTime {
		t.Errorf("options not applied: %+v", *opts)
	}
}
