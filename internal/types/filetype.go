package types

import (
	"io"
	"strings"

	"github.com/simonhull/taglib/internal/binary"
)

// FileType selects the container format TagLib should assume when opening a file.
//
// The numeric values match TagLib_File_Type in tag_c.h and are passed to the
// native library unchanged.
type FileType int

const (
	// FileTypeMPEG represents MPEG audio (MP3) files.
	FileTypeMPEG FileType = iota // MPEG
	// FileTypeOggVorbis represents Ogg Vorbis files.
	FileTypeOggVorbis // OggVorbis
	// FileTypeFLAC represents native FLAC files.
	FileTypeFLAC // FLAC
	// FileTypeMPC represents Musepack files.
	FileTypeMPC // MPC
	// FileTypeOggFlac represents FLAC streams in an Ogg container.
	FileTypeOggFlac // OggFlac
	// FileTypeWavPack represents WavPack files.
	FileTypeWavPack // WavPack
	// FileTypeSpeex represents Ogg Speex files.
	FileTypeSpeex // Speex
	// FileTypeTrueAudio represents TrueAudio files.
	FileTypeTrueAudio // TrueAudio
	// FileTypeMP4 represents MP4 audio (M4A, M4B) files.
	FileTypeMP4 // MP4
	// FileTypeASF represents ASF (WMA) files.
	FileTypeASF // ASF
)

var fileTypeNames = [...]string{
	FileTypeMPEG:      "MPEG",
	FileTypeOggVorbis: "OggVorbis",
	FileTypeFLAC:      "FLAC",
	FileTypeMPC:       "MPC",
	FileTypeOggFlac:   "OggFlac",
	FileTypeWavPack:   "WavPack",
	FileTypeSpeex:     "Speex",
	FileTypeTrueAudio: "TrueAudio",
	FileTypeMP4:       "MP4",
	FileTypeASF:       "ASF",
}

// Valid reports whether t is one of the known file types.
func (t FileType) Valid() bool {
	return t >= FileTypeMPEG && t <= FileTypeASF
}

// String returns the TagLib name of the file type.
func (t FileType) String() string {
	if !t.Valid() {
		return "FileType(" + itoa(int(t)) + ")"
	}
	return fileTypeNames[t]
}

// Extensions returns common file extensions for this file type.
func (t FileType) Extensions() []string {
	switch t {
	case FileTypeMPEG:
		return []string{".mp3", ".mp2"}
	case FileTypeOggVorbis:
		return []string{".ogg", ".oga"}
	case FileTypeFLAC:
		return []string{".flac"}
	case FileTypeMPC:
		return []string{".mpc", ".mp+"}
	case FileTypeOggFlac:
		return []string{".oga"}
	case FileTypeWavPack:
		return []string{".wv"}
	case FileTypeSpeex:
		return []string{".spx"}
	case FileTypeTrueAudio:
		return []string{".tta"}
	case FileTypeMP4:
		return []string{".m4a", ".m4b", ".m4p", ".mp4", ".3g2"}
	case FileTypeASF:
		return []string{".wma", ".asf"}
	default:
		return nil
	}
}

// ParseFileType resolves a case-insensitive type name ("mpeg", "FLAC", "mp4").
func ParseFileType(name string) (FileType, bool) {
	for t, n := range fileTypeNames {
		if strings.EqualFold(n, name) {
			return FileType(t), true
		}
	}
	return 0, false
}

// asfHeaderGUID is the ASF Header Object GUID in its on-disk byte order.
const asfHeaderGUID = "\x30\x26\xB2\x75\x8E\x66\xCF\x11\xA6\xD9\x00\xAA\x00\x62\xCE\x6C"

// DetectFileType determines the container format by examining magic bytes.
//
// Detection only looks at file signatures. It does not validate the file and
// it is never used in place of the native library's own detection.
func DetectFileType(r io.ReaderAt, size int64, path string) (FileType, error) { //nolint:gocyclo // Signature checks are a flat list
	if size < 4 {
		return 0, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	switch {
	case sr.HasPrefixAt(0, "fLaC"):
		return FileTypeFLAC, nil
	case sr.HasPrefixAt(0, "ID3"):
		return FileTypeMPEG, nil
	case sr.HasPrefixAt(0, "MPCK"), sr.HasPrefixAt(0, "MP+"):
		return FileTypeMPC, nil
	case sr.HasPrefixAt(0, "wvpk"):
		return FileTypeWavPack, nil
	case sr.HasPrefixAt(0, "TTA1"):
		return FileTypeTrueAudio, nil
	case sr.HasPrefixAt(0, asfHeaderGUID):
		return FileTypeASF, nil
	case sr.HasPrefixAt(4, "ftyp"):
		return FileTypeMP4, nil
	case sr.HasPrefixAt(0, "OggS"):
		return detectOggCodec(sr, path)
	}

	// MPEG frame sync (11 set bits) catches MP3 files without an ID3v2 tag.
	head, err := sr.Bytes(0, 2, "frame sync")
	if err == nil && head[0] == 0xFF && head[1]&0xE0 == 0xE0 {
		return FileTypeMPEG, nil
	}

	return 0, &UnsupportedFormatError{
		Path:   path,
		Reason: "unrecognized file signature",
	}
}

// detectOggCodec looks at the first packet of the first Ogg page.
func detectOggCodec(sr *binary.SafeReader, path string) (FileType, error) {
	// Ogg page header: 27 bytes fixed, then segment_count bytes of lacing values.
	segCount, err := binary.Read[uint8](sr, 26, "segment count")
	if err != nil {
		return 0, &UnsupportedFormatError{Path: path, Reason: "truncated Ogg page header"}
	}
	packet := int64(27 + int(segCount))

	switch {
	case sr.HasPrefixAt(packet, "\x01vorbis"):
		return FileTypeOggVorbis, nil
	case sr.HasPrefixAt(packet, "\x7fFLAC"):
		return FileTypeOggFlac, nil
	case sr.HasPrefixAt(packet, "Speex   "):
		return FileTypeSpeex, nil
	}

	return 0, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported Ogg codec",
	}
}
