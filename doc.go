// Package taglib provides safe Go bindings over the TagLib C API (libtag_c).
//
// TagLib does the actual work of reading and writing tags for MPEG, Ogg
// Vorbis, FLAC, Musepack, Ogg FLAC, WavPack, Speex, TrueAudio, MP4 and ASF
// files. This package owns the part TagLib leaves to the caller: who frees
// what, and when.
//
// # Quick Start
//
//	file, err := taglib.Open("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	title, _ := file.Tag().Title()
//	length, _ := file.AudioProperties().Length()
//	fmt.Printf("%s (%s)\n", title, length)
//
// # Ownership
//
// The layering mirrors the native structures:
//
//	[File]               - owns one native context (Open, OpenType, Close)
//	  ├─ [Tag]             - borrowed view: title, artist, album, ...
//	  └─ [AudioProperties] - borrowed view: length, bitrate, ...
//
// Views are derived once, when the file opens, and only after the native
// library reports the context valid. They hold no resources of their own.
// Strings returned by the native library are copied into Go memory and
// freed before the getter returns; strings passed to setters live in a
// native buffer only for the duration of the call. Close frees anything
// still pending, then the context, exactly once. After Close, every method
// on the File or its views returns ErrUseAfterClose.
//
// A File that becomes unreachable without Close is released by a runtime
// cleanup, but relying on that delays freeing native memory until a GC
// cycle. Always Close.
//
// # Writing
//
// Setters change the tag in memory. Save writes it to disk:
//
//	if err := file.Tag().SetTitle("New Title"); err != nil {
//		return err
//	}
//	if err := file.Save(taglib.WithBackup(".bak")); err != nil {
//		return err
//	}
//
// # Encoding
//
// Strings cross the boundary as UTF-8 by default. SetUnicode(false) switches
// the whole process to Latin-1, in which case runes outside ISO-8859-1 are
// written as '?'. SetDefaultTextEncoding picks the encoding of new ID3v2
// frames. Both settings are process-wide: set them before sharing files
// between goroutines.
//
// # Error Handling
//
// Failures are returned, never asserted:
//
//   - *InvalidPathError (errors.Is ErrInvalidPath): the path does not exist;
//     the native library is not called
//   - *InvalidFileError (errors.Is ErrInvalidFile): the native library could
//     not parse the file, or it does not match the type given to OpenType
//   - ErrUseAfterClose: the File was already closed
//   - ErrNativeUnavailable: built without cgo, or with the notaglib tag
//
// # Building
//
// The package links against libtag_c with cgo. Install TagLib's C bindings
// (libtag1-dev / taglib on most systems). Building with CGO_ENABLED=0 or
// -tags notaglib compiles a stub whose Open always fails.
package taglib
