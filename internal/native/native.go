// Package native describes the boundary to the TagLib C API.
//
// Every value handed out by a Library refers to memory owned by the native
// side. Files must be freed exactly once with File.Free. Tag and
// AudioProperties values are borrowed from their File and become dangling
// once it is freed. Buffers returned by Tag.Text and Library.Alloc must be
// freed exactly once with Buffer.Free.
//
// Implementations perform no locking and no validation of their own: the
// caller is responsible for ordering and lifetime.
package native

// Library is the set of process-wide entry points of the native library.
type Library interface {
	// Name identifies the implementation in logs.
	Name() string

	// Open creates a native file context, letting the library detect the
	// format. It returns nil when the library could not allocate a context.
	Open(path string) File

	// OpenType is Open with the container format forced to typ
	// (a TagLib_File_Type code).
	OpenType(path string, typ int) File

	// SetStringsUnicode selects UTF-8 (true) or Latin-1 (false) for all
	// strings crossing the boundary.
	SetStringsUnicode(enabled bool)

	// SetDefaultTextEncoding sets the TagLib_ID3v2_Encoding used for new
	// ID3v2 text frames.
	SetDefaultTextEncoding(enc int)

	// Alloc copies text into a new null-terminated native buffer.
	// text must not contain NUL bytes.
	Alloc(text []byte) Buffer

	// FreeStrings releases any strings the library still manages itself.
	FreeStrings()
}

// File is one native file context.
type File interface {
	// Valid reports whether the library could parse the file.
	Valid() bool

	// Tag returns the tag sub-structure. It is owned by the File.
	Tag() Tag

	// AudioProperties returns the properties sub-structure, or nil when the
	// file has none. It is owned by the File.
	AudioProperties() AudioProperties

	// Save writes pending tag changes to disk.
	Save() bool

	// Free releases the context. Derived Tag and AudioProperties values
	// must not be used afterward.
	Free()
}

// Field selects one textual tag field.
type Field int

const (
	FieldTitle Field = iota
	FieldArtist
	FieldAlbum
	FieldComment
	FieldGenre
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldArtist:
		return "artist"
	case FieldAlbum:
		return "album"
	case FieldComment:
		return "comment"
	case FieldGenre:
		return "genre"
	default:
		return "unknown"
	}
}

// Tag is the borrowed tag sub-structure of a File.
type Tag interface {
	// Text returns a newly allocated copy of field, or nil.
	Text(field Field) Buffer

	// SetText copies value into field. The caller keeps ownership of value.
	SetText(field Field, value Buffer)

	Year() uint32
	Track() uint32
	SetYear(year uint32)
	SetTrack(track uint32)
}

// AudioProperties is the borrowed properties sub-structure of a File.
type AudioProperties interface {
	Length() int32
	Bitrate() int32
	SampleRate() int32
	Channels() int32
}

// Buffer is a null-terminated byte buffer allocated on the native side.
type Buffer interface {
	// Bytes returns the contents without the terminator. The slice aliases
	// native memory and is invalid after Free.
	Bytes() []byte

	// Free releases the buffer.
	Free()
}
