package taglib

import (
	"fmt"
	"os"

	"github.com/simonhull/taglib/internal/types"
)

// FileType is an alias to types.FileType.
// Re-exporting from internal/types to maintain public API.
type FileType = types.FileType

// Re-export all file type constants. Values match TagLib_File_Type.
const (
	FileTypeMPEG      = types.FileTypeMPEG
	FileTypeOggVorbis = types.FileTypeOggVorbis
	FileTypeFLAC      = types.FileTypeFLAC
	FileTypeMPC       = types.FileTypeMPC
	FileTypeOggFlac   = types.FileTypeOggFlac
	FileTypeWavPack   = types.FileTypeWavPack
	FileTypeSpeex     = types.FileTypeSpeex
	FileTypeTrueAudio = types.FileTypeTrueAudio
	FileTypeMP4       = types.FileTypeMP4
	FileTypeASF       = types.FileTypeASF
)

// ParseFileType resolves a case-insensitive type name such as "mpeg" or "FLAC".
func ParseFileType(name string) (FileType, bool) {
	return types.ParseFileType(name)
}

// DetectFileType guesses the container format of the file at path from its
// magic bytes.
//
// The guess is advisory: Open lets the native library do its own detection.
// It is useful for choosing a type hint for OpenType, or with WithStrictType
// to reject a forced type that obviously does not match.
func DetectFileType(path string) (FileType, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat file: %w", err)
	}

	return types.DetectFileType(f, stat.Size(), path)
}
