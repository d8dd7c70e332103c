// Package cstring marshals Go strings across the native boundary.
//
// Outbound text is encoded into transient null-terminated native buffers;
// inbound native buffers are decoded, copied into Go memory and freed. An
// Arena tracks every buffer it hands out so the owner can release stragglers
// before freeing the native context.
package cstring

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/simonhull/taglib/internal/native"
)

// Substitute replaces runes that Latin-1 cannot represent.
const Substitute = '?'

// Encode converts s to boundary bytes. In Unicode mode the result is UTF-8
// (invalid sequences become U+FFFD); otherwise it is ISO-8859-1 with
// unrepresentable runes replaced by Substitute. Text after the first NUL is
// dropped since the native side could never see it.
func Encode(s string, unicode bool) []byte {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if unicode {
		return []byte(strings.ToValidUTF8(s, "\uFFFD"))
	}

	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = Substitute
		}
		out = append(out, b)
	}
	return out
}

// Decode converts boundary bytes to a Go string. The result never aliases b.
func Decode(b []byte, unicode bool) string {
	if unicode {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	// ISO-8859-1 maps every byte, so decoding cannot fail.
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// Arena owns the transient buffers of one native file context.
// It is not safe for concurrent use.
type Arena struct {
	lib     native.Library
	pending map[native.Buffer]struct{}
}

// NewArena returns an empty arena allocating through lib.
func NewArena(lib native.Library) *Arena {
	return &Arena{
		lib:     lib,
		pending: make(map[native.Buffer]struct{}),
	}
}

// Out encodes s into a new native buffer. The buffer stays pending until
// passed to Release or FreeAll.
func (a *Arena) Out(s string, unicode bool) native.Buffer {
	b := a.lib.Alloc(Encode(s, unicode))
	a.pending[b] = struct{}{}
	return b
}

// In decodes and copies a buffer returned by the native side, then frees
// it. A nil buffer yields "".
func (a *Arena) In(b native.Buffer, unicode bool) string {
	if b == nil {
		return ""
	}
	a.pending[b] = struct{}{}
	defer a.Release(b)
	return Decode(b.Bytes(), unicode)
}

// Release frees b if it is still pending. Releasing twice is a no-op.
func (a *Arena) Release(b native.Buffer) {
	if _, ok := a.pending[b]; !ok {
		return
	}
	delete(a.pending, b)
	b.Free()
}

// Pending returns the number of buffers not yet released.
func (a *Arena) Pending() int {
	return len(a.pending)
}

// FreeAll releases every pending buffer and returns how many there were.
func (a *Arena) FreeAll() int {
	n := len(a.pending)
	for b := range a.pending {
		delete(a.pending, b)
		b.Free()
	}
	return n
}
