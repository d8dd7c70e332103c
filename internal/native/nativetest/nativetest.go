// Package nativetest provides an in-memory native.Library that accounts for
// every native allocation, for use in tests.
//
// The fake keeps tag data per path, emulates TagLib's Latin-1/UTF-8 string
// mode and records faults (double free, use after free, foreign buffers)
// instead of corrupting memory, so tests can assert that the layer above
// released everything exactly once.
package nativetest

import (
	"fmt"
	"slices"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/simonhull/taglib/internal/native"
	"github.com/simonhull/taglib/internal/types"
)

// Media describes the content the fake reports for one path.
type Media struct {
	Title   string
	Artist  string
	Album   string
	Comment string
	Genre   string

	Type  types.FileType
	Year  uint32
	Track uint32

	Length     int32
	Bitrate    int32
	SampleRate int32
	Channels   int32

	// NoProperties makes AudioProperties return nil, like a file TagLib
	// opened without reading audio properties.
	NoProperties bool
}

func (m *Media) text(field native.Field) *string {
	switch field {
	case native.FieldTitle:
		return &m.Title
	case native.FieldArtist:
		return &m.Artist
	case native.FieldAlbum:
		return &m.Album
	case native.FieldComment:
		return &m.Comment
	case native.FieldGenre:
		return &m.Genre
	default:
		return nil
	}
}

// Library is the fake native library. The zero value is not usable; call New.
type Library struct {
	mu sync.Mutex

	media map[string]Media

	unicode         bool
	defaultEncoding int

	files   map[*file]struct{}
	buffers map[*buffer]struct{}
	calls   map[string]int
	events  []string
	faults  []string

	// FailSave makes File.Save report failure.
	FailSave bool
	// NilContext makes Open and OpenType return a nil context.
	NilContext bool
}

// New returns an empty fake in UTF-8 mode.
func New() *Library {
	return &Library{
		media:   make(map[string]Media),
		unicode: true,
		files:   make(map[*file]struct{}),
		buffers: make(map[*buffer]struct{}),
		calls:   make(map[string]int),
	}
}

var _ native.Library = (*Library)(nil)

// Add registers the content for path. Paths without content open as invalid.
func (l *Library) Add(path string, m Media) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.media[path] = m
}

// Media returns the content last saved for path.
func (l *Library) Media(path string) (Media, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.media[path]
	return m, ok
}

// LiveFiles returns the number of contexts not yet freed.
func (l *Library) LiveFiles() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.files)
}

// LiveBuffers returns the number of string buffers not yet freed.
func (l *Library) LiveBuffers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buffers)
}

// Calls returns how often the named entry point ran ("Open", "Tag.Text", ...).
func (l *Library) Calls(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

// TotalCalls returns the number of entry point calls of any kind.
func (l *Library) TotalCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		n += c
	}
	return n
}

// Events returns the release events ("FreeStrings", "File.Free", "Buffer.Free") in order.
func (l *Library) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

// Faults returns every misuse recorded so far.
func (l *Library) Faults() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.faults)
}

// Unicode reports the current string mode.
func (l *Library) Unicode() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unicode
}

// DefaultTextEncoding returns the last ID3v2 encoding code set.
func (l *Library) DefaultTextEncoding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.defaultEncoding
}

// CheckLeaks fails t if any context or buffer is still live or any fault was recorded.
func (l *Library) CheckLeaks(t testing.TB) {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	if n := len(l.files); n > 0 {
		t.Errorf("nativetest: %d file context(s) leaked", n)
	}
	if n := len(l.buffers); n > 0 {
		t.Errorf("nativetest: %d string buffer(s) leaked", n)
	}
	for _, f := range l.faults {
		t.Errorf("nativetest: %s", f)
	}
}

func (l *Library) Name() string { return "nativetest" }

func (l *Library) Open(path string) native.File {
	return l.open("Open", path, -1)
}

func (l *Library) OpenType(path string, typ int) native.File {
	return l.open("OpenType", path, typ)
}

func (l *Library) open(call, path string, typ int) native.File {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[call]++

	if l.NilContext {
		return nil
	}

	m, ok := l.media[path]
	f := &file{
		lib:   l,
		path:  path,
		media: m,
		valid: ok && (typ < 0 || int(m.Type) == typ),
	}
	l.files[f] = struct{}{}
	return f
}

func (l *Library) SetStringsUnicode(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls["SetStringsUnicode"]++
	l.unicode = enabled
}

func (l *Library) SetDefaultTextEncoding(enc int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls["SetDefaultTextEncoding"]++
	l.defaultEncoding = enc
}

func (l *Library) Alloc(text []byte) native.Buffer {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls["Alloc"]++
	if slices.Contains(text, 0) {
		l.faultf("Alloc: text contains NUL")
	}
	return l.newBuffer(slices.Clone(text))
}

func (l *Library) FreeStrings() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls["FreeStrings"]++
	l.events = append(l.events, "FreeStrings")
}

// newBuffer must be called with l.mu held.
func (l *Library) newBuffer(data []byte) *buffer {
	b := &buffer{lib: l, data: data}
	l.buffers[b] = struct{}{}
	return b
}

// faultf must be called with l.mu held.
func (l *Library) faultf(format string, args ...any) {
	l.faults = append(l.faults, fmt.Sprintf(format, args...))
}

// encode renders stored text the way TagLib hands it out in the current mode.
func (l *Library) encode(s string) []byte {
	if l.unicode {
		return []byte(s)
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x100 {
			out = append(out, byte(r))
		} else {
			out = append(out, '?')
		}
	}
	return out
}

// decode interprets incoming bytes the way TagLib does in the current mode.
func (l *Library) decode(b []byte) string {
	if l.unicode {
		if !utf8.Valid(b) {
			l.faultf("SetText: invalid UTF-8 in unicode mode")
		}
		return string(b)
	}
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

type file struct {
	lib   *Library
	path  string
	media Media
	valid bool
	freed bool
}

// alive must be called with lib.mu held.
func (f *file) alive(call string) bool {
	f.lib.calls[call]++
	if f.freed {
		f.lib.faultf("use after free: %s on %s", call, f.path)
		return false
	}
	return true
}

func (f *file) Valid() bool {
	f.lib.mu.Lock()
	defer f.lib.mu.Unlock()
	return f.alive("File.Valid") && f.valid
}

func (f *file) Tag() native.Tag {
	f.lib.mu.Lock()
	defer f.lib.mu.Unlock()
	if !f.alive("File.Tag") {
		return nil
	}
	if !f.valid {
		f.lib.faultf("File.Tag on invalid context %s", f.path)
	}
	return &tag{f: f}
}

func (f *file) AudioProperties() native.AudioProperties {
	f.lib.mu.Lock()
	defer f.lib.mu.Unlock()
	if !f.alive("File.AudioProperties") {
		return nil
	}
	if !f.valid {
		f.lib.faultf("File.AudioProperties on invalid context %s", f.path)
	}
	if f.media.NoProperties {
		return nil
	}
	return &properties{f: f}
}

func (f *file) Save() bool {
	f.lib.mu.Lock()
	defer f.lib.mu.Unlock()
	if !f.alive("File.Save") || f.lib.FailSave {
		return false
	}
	f.lib.media[f.path] = f.media
	return true
}

func (f *file) Free() {
	f.lib.mu.Lock()
	defer f.lib.mu.Unlock()
	f.lib.calls["File.Free"]++
	if f.freed {
		f.lib.faultf("double free of file context %s", f.path)
		return
	}
	f.freed = true
	delete(f.lib.files, f)
	f.lib.events = append(f.lib.events, "File.Free")
}

type tag struct {
	f *file
}

func (t *tag) Text(field native.Field) native.Buffer {
	l := t.f.lib
	l.mu.Lock()
	defer l.mu.Unlock()
	if !t.f.alive("Tag.Text") {
		return nil
	}
	s := t.f.media.text(field)
	if s == nil {
		return nil
	}
	return l.newBuffer(l.encode(*s))
}

func (t *tag) SetText(field native.Field, value native.Buffer) {
	l := t.f.lib
	l.mu.Lock()
	defer l.mu.Unlock()
	if !t.f.alive("Tag.SetText") {
		return
	}
	b, ok := value.(*buffer)
	if !ok || b.lib != l {
		l.faultf("Tag.SetText: foreign buffer")
		return
	}
	if b.freed {
		l.faultf("Tag.SetText: buffer used after free")
		return
	}
	if s := t.f.media.text(field); s != nil {
		*s = l.decode(b.data)
	}
}

func (t *tag) Year() uint32 {
	t.f.lib.mu.Lock()
	defer t.f.lib.mu.Unlock()
	if !t.f.alive("Tag.Year") {
		return 0
	}
	return t.f.media.Year
}

func (t *tag) Track() uint32 {
	t.f.lib.mu.Lock()
	defer t.f.lib.mu.Unlock()
	if !t.f.alive("Tag.Track") {
		return 0
	}
	return t.f.media.Track
}

func (t *tag) SetYear(year uint32) {
	t.f.lib.mu.Lock()
	defer t.f.lib.mu.Unlock()
	if t.f.alive("Tag.SetYear") {
		t.f.media.Year = year
	}
}

func (t *tag) SetTrack(track uint32) {
	t.f.lib.mu.Lock()
	defer t.f.lib.mu.Unlock()
	if t.f.alive("Tag.SetTrack") {
		t.f.media.Track = track
	}
}

type properties struct {
	f *file
}

func (p *properties) get(call string, v func(*Media) int32) int32 {
	p.f.lib.mu.Lock()
	defer p.f.lib.mu.Unlock()
	if !p.f.alive(call) {
		return 0
	}
	return v(&p.f.media)
}

func (p *properties) Length() int32 {
	return p.get("AudioProperties.Length", func(m *Media) int32 { return m.Length })
}

func (p *properties) Bitrate() int32 {
	return p.get("AudioProperties.Bitrate", func(m *Media) int32 { return m.Bitrate })
}

func (p *properties) SampleRate() int32 {
	return p.get("AudioProperties.SampleRate", func(m *Media) int32 { return m.SampleRate })
}

func (p *properties) Channels() int32 {
	return p.get("AudioProperties.Channels", func(m *Media) int32 { return m.Channels })
}

type buffer struct {
	lib   *Library
	data  []byte
	freed bool
}

func (b *buffer) Bytes() []byte {
	b.lib.mu.Lock()
	defer b.lib.mu.Unlock()
	if b.freed {
		b.lib.faultf("Buffer.Bytes after free")
		return nil
	}
	return b.data
}

func (b *buffer) Free() {
	b.lib.mu.Lock()
	defer b.lib.mu.Unlock()
	b.lib.calls["Buffer.Free"]++
	if b.freed {
		b.lib.faultf("double free of string buffer")
		return
	}
	b.freed = true
	delete(b.lib.buffers, b)
	b.lib.events = append(b.lib.events, "Buffer.Free")
}
