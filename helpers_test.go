package taglib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/taglib/internal/native/nativetest"
)

// Minimal file heads. The fake library never parses them; they only need
// to exist on disk and to carry the right magic for DetectFileType.
var (
	mp3Head  = []byte("ID3\x04\x00\x00\x00\x00\x00\x00\xff\xfb\x90\x00")
	flacHead = []byte("fLaC\x00\x00\x00\x22\x10\x00\x10\x00")
)

// sampleMP3 is the reference fixture: 128 s, 192 kb/s, 44.1 kHz stereo.
var sampleMP3 = nativetest.Media{
	Type:       FileTypeMPEG,
	Title:      "Test Title",
	Artist:     "Test Artist",
	Album:      "Test Album",
	Comment:    "Test Comment",
	Genre:      "Rock",
	Year:       2009,
	Track:      3,
	Length:     128,
	Bitrate:    192,
	SampleRate: 44100,
	Channels:   2,
}

// nativetestFLAC is a FLAC fixture, used where the container type matters.
func nativetestFLAC() nativetest.Media {
	return nativetest.Media{
		Type:       FileTypeFLAC,
		Title:      "Flac Title",
		Artist:     "Flac Artist",
		Length:     200,
		Bitrate:    900,
		SampleRate: 48000,
		Channels:   2,
	}
}

// useFakeLibrary installs a fresh accounting library for the duration of t.
// Tests using it must not run in parallel.
func useFakeLibrary(t *testing.T) *nativetest.Library {
	t.Helper()

	lib := nativetest.New()
	restore := setLibrary(lib)
	t.Cleanup(func() {
		SetUnicode(true)
		_ = SetDefaultTextEncoding(EncodingLatin1)
		restore()
	})
	return lib
}

// writeFixture writes data to name inside a per-test directory.
func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// openSample registers and opens the reference MP3 fixture.
func openSample(t *testing.T, lib *nativetest.Library) *File {
	t.Helper()

	path := writeFixture(t, "sample.mp3", mp3Head)
	lib.Add(path, sampleMP3)

	file, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", path, err)
	}
	return file
}
