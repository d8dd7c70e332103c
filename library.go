package taglib

import (
	"sync"

	"github.com/simonhull/taglib/internal/native"
)

var (
	libMu   sync.Mutex
	lib     native.Library
	libInit bool
)

// currentLibrary returns the process-wide native library, or nil in builds
// without one. The first call pushes the current encoding configuration.
func currentLibrary() native.Library {
	libMu.Lock()
	defer libMu.Unlock()
	if !libInit {
		libInit = true
		lib = newDefaultLibrary()
		syncEncoding(lib, CurrentEncoding())
	}
	return lib
}

// setLibrary replaces the process-wide native library and returns a func
// restoring the previous one. Files already open keep their own library.
func setLibrary(l native.Library) (restore func()) {
	libMu.Lock()
	defer libMu.Unlock()
	prev, prevInit := lib, libInit
	lib, libInit = l, true
	syncEncoding(l, CurrentEncoding())
	return func() {
		libMu.Lock()
		defer libMu.Unlock()
		lib, libInit = prev, prevInit
	}
}

func syncEncoding(l native.Library, cfg EncodingConfig) {
	if l == nil {
		return
	}
	l.SetStringsUnicode(cfg.Unicode)
	l.SetDefaultTextEncoding(int(cfg.DefaultTextEncoding))
}
