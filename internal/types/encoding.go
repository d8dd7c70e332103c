package types

import "strconv"

// TextEncoding selects the encoding of newly written ID3v2 text frames.
//
// The numeric values match TagLib_ID3v2_Encoding in tag_c.h.
type TextEncoding int

const (
	// EncodingLatin1 writes ISO-8859-1 frames.
	EncodingLatin1 TextEncoding = iota // Latin1
	// EncodingUTF16 writes UTF-16 frames with a byte order mark.
	EncodingUTF16 // UTF16
	// EncodingUTF16BE writes big-endian UTF-16 frames without a byte order mark.
	EncodingUTF16BE // UTF16BE
	// EncodingUTF8 writes UTF-8 frames (ID3v2.4 only).
	EncodingUTF8 // UTF8
)

// Valid reports whether e is one of the known encodings.
func (e TextEncoding) Valid() bool {
	return e >= EncodingLatin1 && e <= EncodingUTF8
}

func (e TextEncoding) String() string {
	switch e {
	case EncodingLatin1:
		return "Latin1"
	case EncodingUTF16:
		return "UTF16"
	case EncodingUTF16BE:
		return "UTF16BE"
	case EncodingUTF8:
		return "UTF8"
	default:
		return "TextEncoding(" + itoa(int(e)) + ")"
	}
}

// EncodingConfig is one snapshot of the process-wide marshaling policy.
type EncodingConfig struct {
	// Unicode selects UTF-8 for boundary strings; false selects Latin-1.
	Unicode bool
	// DefaultTextEncoding is used for ID3v2 frames the native library creates.
	DefaultTextEncoding TextEncoding
}

// DefaultEncodingConfig mirrors TagLib's own startup state.
func DefaultEncodingConfig() EncodingConfig {
	return EncodingConfig{
		Unicode:             true,
		DefaultTextEncoding: EncodingLatin1,
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
