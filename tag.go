package taglib

import (
	"github.com/simonhull/taglib/internal/native"
)

// Tag reads and writes the basic metadata fields of a File.
//
// A Tag is borrowed from its File and holds no resources of its own. Once
// the File is closed, every method returns ErrUseAfterClose.
//
// Setters change the tag in memory only. Call File.Save to write the
// changes to disk.
type Tag struct {
	f *File
	t native.Tag // nil when the native file has no tag
}

// Title returns the track title, or "" if unset.
func (t *Tag) Title() (string, error) { return t.text(native.FieldTitle) }

// Artist returns the artist, or "" if unset.
func (t *Tag) Artist() (string, error) { return t.text(native.FieldArtist) }

// Album returns the album name, or "" if unset.
func (t *Tag) Album() (string, error) { return t.text(native.FieldAlbum) }

// Comment returns the comment, or "" if unset.
func (t *Tag) Comment() (string, error) { return t.text(native.FieldComment) }

// Genre returns the genre, or "" if unset.
func (t *Tag) Genre() (string, error) { return t.text(native.FieldGenre) }

// Year returns the release year, or 0 if unset.
func (t *Tag) Year() (uint32, error) {
	if err := t.f.lock(); err != nil {
		return 0, err
	}
	defer t.f.mu.Unlock()

	if t.t == nil {
		return 0, nil
	}
	return t.t.Year(), nil
}

// Track returns the track number, or 0 if unset.
func (t *Tag) Track() (uint32, error) {
	if err := t.f.lock(); err != nil {
		return 0, err
	}
	defer t.f.mu.Unlock()

	if t.t == nil {
		return 0, nil
	}
	return t.t.Track(), nil
}

// SetTitle sets the track title.
func (t *Tag) SetTitle(title string) error { return t.setText(native.FieldTitle, title) }

// SetArtist sets the artist.
func (t *Tag) SetArtist(artist string) error { return t.setText(native.FieldArtist, artist) }

// SetAlbum sets the album name.
func (t *Tag) SetAlbum(album string) error { return t.setText(native.FieldAlbum, album) }

// SetComment sets the comment.
func (t *Tag) SetComment(comment string) error { return t.setText(native.FieldComment, comment) }

// SetGenre sets the genre.
func (t *Tag) SetGenre(genre string) error { return t.setText(native.FieldGenre, genre) }

// SetYear sets the release year. 0 clears it.
func (t *Tag) SetYear(year uint32) error {
	if err := t.f.lock(); err != nil {
		return err
	}
	defer t.f.mu.Unlock()

	if t.t != nil {
		t.t.SetYear(year)
	}
	return nil
}

// SetTrack sets the track number. 0 clears it.
func (t *Tag) SetTrack(track uint32) error {
	if err := t.f.lock(); err != nil {
		return err
	}
	defer t.f.mu.Unlock()

	if t.t != nil {
		t.t.SetTrack(track)
	}
	return nil
}

func (t *Tag) text(field native.Field) (string, error) {
	if err := t.f.lock(); err != nil {
		return "", err
	}
	defer t.f.mu.Unlock()

	return t.readText(field), nil
}

// readText must be called with t.f.mu held.
func (t *Tag) readText(field native.Field) string {
	if t.t == nil {
		return ""
	}
	return t.f.h.arena.In(t.t.Text(field), CurrentEncoding().Unicode)
}

// setText encodes value into a transient native buffer that lives only for
// the duration of the native setter.
func (t *Tag) setText(field native.Field, value string) error {
	if err := t.f.lock(); err != nil {
		return err
	}
	defer t.f.mu.Unlock()

	if t.t == nil {
		return nil
	}

	buf := t.f.h.arena.Out(value, CurrentEncoding().Unicode)
	defer t.f.h.arena.Release(buf)

	t.t.SetText(field, buf)
	return nil
}
