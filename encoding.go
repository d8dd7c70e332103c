package taglib

import (
	"sync"
	"sync/atomic"

	"github.com/simonhull/taglib/internal/types"
)

// TextEncoding is an alias to types.TextEncoding.
// Re-exporting from internal/types to maintain public API.
type TextEncoding = types.TextEncoding

// Re-export all text encoding constants. Values match TagLib_ID3v2_Encoding.
const (
	EncodingLatin1  = types.EncodingLatin1
	EncodingUTF16   = types.EncodingUTF16
	EncodingUTF16BE = types.EncodingUTF16BE
	EncodingUTF8    = types.EncodingUTF8
)

// EncodingConfig is an alias to types.EncodingConfig.
// Re-exporting from internal/types to maintain public API.
type EncodingConfig = types.EncodingConfig

// The encoding configuration is process-wide, exactly like the native
// flags it mirrors. Each marshaling call reads one consistent snapshot, but
// nothing orders a setter against marshaling running on other goroutines:
// a Title call racing SetUnicode may decode with either setting. Configure
// encoding before sharing files across goroutines, or guard both sides
// with your own lock.
var (
	encodingMu sync.Mutex // serializes setters so the snapshot and native flags agree
	encoding   atomic.Pointer[EncodingConfig]
)

// CurrentEncoding returns the active encoding configuration.
func CurrentEncoding() EncodingConfig {
	if cfg := encoding.Load(); cfg != nil {
		return *cfg
	}
	return types.DefaultEncodingConfig()
}

// SetUnicode selects how strings cross the native boundary for every file in
// the process: UTF-8 when enabled (the default), Latin-1 otherwise.
//
// In Latin-1 mode, runes outside ISO-8859-1 are written as '?'.
func SetUnicode(enabled bool) {
	encodingMu.Lock()
	defer encodingMu.Unlock()

	cfg := CurrentEncoding()
	cfg.Unicode = enabled
	if l := currentLibrary(); l != nil {
		l.SetStringsUnicode(enabled)
	}
	encoding.Store(&cfg)
}

// SetDefaultTextEncoding sets the encoding the native library uses when it
// creates new ID3v2 text frames. Other tag formats ignore it.
//
// Returns *UnknownEncodingError for values outside the TextEncoding constants.
func SetDefaultTextEncoding(enc TextEncoding) error {
	if !enc.Valid() {
		return &UnknownEncodingError{Encoding: enc}
	}

	encodingMu.Lock()
	defer encodingMu.Unlock()

	cfg := CurrentEncoding()
	cfg.DefaultTextEncoding = enc
	if l := currentLibrary(); l != nil {
		l.SetDefaultTextEncoding(int(enc))
	}
	encoding.Store(&cfg)
	return nil
}
