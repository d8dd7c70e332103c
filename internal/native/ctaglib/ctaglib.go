//go:build cgo && !notaglib

// Package ctaglib implements native.Library over the TagLib C bindings (libtag_c).
package ctaglib

// #cgo LDFLAGS: -ltag_c
// #include <stdlib.h>
// #include <string.h>
// #include <taglib/tag_c.h>
import "C"

import (
	"sync"
	"unsafe"

	"github.com/simonhull/taglib/internal/native"
)

var initOnce sync.Once

// Library is the cgo-backed native.Library. The zero value is not ready;
// use New.
type Library struct{}

// New returns the library after switching off TagLib's own string
// management, so every string the library returns is freed individually
// with taglib_free instead of accumulating until taglib_tag_free_strings.
func New() *Library {
	initOnce.Do(func() {
		C.taglib_set_string_management_enabled(0)
	})
	return &Library{}
}

func (*Library) Name() string { return "libtag_c" }

func (*Library) Open(path string) native.File {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))

	fp := C.taglib_file_new(cs)
	if fp == nil {
		return nil
	}
	return &file{fp: fp}
}

func (*Library) OpenType(path string, typ int) native.File {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))

	fp := C.taglib_file_new_type(cs, C.TagLib_File_Type(typ))
	if fp == nil {
		return nil
	}
	return &file{fp: fp}
}

func (*Library) SetStringsUnicode(enabled bool) {
	C.taglib_set_strings_unicode(cBool(enabled))
}

func (*Library) SetDefaultTextEncoding(enc int) {
	C.taglib_id3v2_set_default_text_encoding(C.TagLib_ID3v2_Encoding(enc))
}

func (*Library) Alloc(text []byte) native.Buffer {
	p := (*C.char)(C.malloc(C.size_t(len(text) + 1)))
	dst := unsafe.Slice((*byte)(unsafe.Pointer(p)), len(text)+1)
	copy(dst, text)
	dst[len(text)] = 0
	return &buffer{p: p, free: freeMalloc}
}

func (*Library) FreeStrings() {
	C.taglib_tag_free_strings()
}

type file struct {
	fp *C.TagLib_File
}

func (f *file) Valid() bool {
	return C.taglib_file_is_valid(f.fp) != 0
}

func (f *file) Tag() native.Tag {
	t := C.taglib_file_tag(f.fp)
	if t == nil {
		return nil
	}
	return &tag{t: t}
}

func (f *file) AudioProperties() native.AudioProperties {
	p := C.taglib_file_audioproperties(f.fp)
	if p == nil {
		return nil
	}
	return &properties{p: p}
}

func (f *file) Save() bool {
	return C.taglib_file_save(f.fp) != 0
}

func (f *file) Free() {
	C.taglib_file_free(f.fp)
	f.fp = nil
}

type tag struct {
	t *C.TagLib_Tag
}

func (t *tag) Text(field native.Field) native.Buffer {
	var p *C.char
	switch field {
	case native.FieldTitle:
		p = C.taglib_tag_title(t.t)
	case native.FieldArtist:
		p = C.taglib_tag_artist(t.t)
	case native.FieldAlbum:
		p = C.taglib_tag_album(t.t)
	case native.FieldComment:
		p = C.taglib_tag_comment(t.t)
	case native.FieldGenre:
		p = C.taglib_tag_genre(t.t)
	}
	if p == nil {
		return nil
	}
	return &buffer{p: p, free: freeTaglib}
}

func (t *tag) SetText(field native.Field, value native.Buffer) {
	b, ok := value.(*buffer)
	if !ok {
		panic("ctaglib: foreign buffer passed to SetText")
	}
	switch field {
	case native.FieldTitle:
		C.taglib_tag_set_title(t.t, b.p)
	case native.FieldArtist:
		C.taglib_tag_set_artist(t.t, b.p)
	case native.FieldAlbum:
		C.taglib_tag_set_album(t.t, b.p)
	case native.FieldComment:
		C.taglib_tag_set_comment(t.t, b.p)
	case native.FieldGenre:
		C.taglib_tag_set_genre(t.t, b.p)
	}
}

func (t *tag) Year() uint32  { return uint32(C.taglib_tag_year(t.t)) }
func (t *tag) Track() uint32 { return uint32(C.taglib_tag_track(t.t)) }

func (t *tag) SetYear(year uint32)   { C.taglib_tag_set_year(t.t, C.uint(year)) }
func (t *tag) SetTrack(track uint32) { C.taglib_tag_set_track(t.t, C.uint(track)) }

type properties struct {
	p *C.TagLib_AudioProperties
}

func (p *properties) Length() int32     { return int32(C.taglib_audioproperties_length(p.p)) }
func (p *properties) Bitrate() int32    { return int32(C.taglib_audioproperties_bitrate(p.p)) }
func (p *properties) SampleRate() int32 { return int32(C.taglib_audioproperties_samplerate(p.p)) }
func (p *properties) Channels() int32   { return int32(C.taglib_audioproperties_channels(p.p)) }

// buffer is a C string together with the allocator that owns it.
type buffer struct {
	p    *C.char
	free func(*C.char)
}

func (b *buffer) Bytes() []byte {
	if b.p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(b.p)), C.strlen(b.p))
}

func (b *buffer) Free() {
	if b.p == nil {
		return
	}
	b.free(b.p)
	b.p = nil
}

// Strings returned by taglib_tag_* come from TagLib's allocator.
func freeTaglib(p *C.char) { C.taglib_free(unsafe.Pointer(p)) }

func freeMalloc(p *C.char) { C.free(unsafe.Pointer(p)) }

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
