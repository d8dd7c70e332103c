package taglib

import (
	"time"

	"github.com/simonhull/taglib/internal/native"
	"github.com/simonhull/taglib/internal/types"
)

// Property is an alias to types.Property.
// Re-exporting from internal/types to maintain public API.
type Property = types.Property

// Re-export all property selectors.
const (
	PropertyLength     = types.PropertyLength
	PropertyBitrate    = types.PropertyBitrate
	PropertySampleRate = types.PropertySampleRate
	PropertyChannels   = types.PropertyChannels
)

// AudioProperties reads the playback properties the native library derives
// from the audio stream.
//
// Like Tag, it is borrowed from its File and returns ErrUseAfterClose once
// the File is closed. Files the native library opened without properties
// report 0 for everything.
type AudioProperties struct {
	f *File
	p native.AudioProperties // nil when the native file has no properties
}

// Property returns the selected property.
//
// Units: PropertyLength in seconds, PropertyBitrate in kb/s,
// PropertySampleRate in Hz, PropertyChannels as a count.
func (a *AudioProperties) Property(kind Property) (int32, error) {
	if kind < PropertyLength || kind > PropertyChannels {
		return 0, &UnknownPropertyError{Property: kind}
	}

	if err := a.f.lock(); err != nil {
		return 0, err
	}
	defer a.f.mu.Unlock()

	if a.p == nil {
		return 0, nil
	}

	switch kind {
	case PropertyLength:
		return a.p.Length(), nil
	case PropertyBitrate:
		return a.p.Bitrate(), nil
	case PropertySampleRate:
		return a.p.SampleRate(), nil
	case PropertyChannels:
		return a.p.Channels(), nil
	default:
		return 0, &UnknownPropertyError{Property: kind}
	}
}

// Length returns the stream length.
func (a *AudioProperties) Length() (time.Duration, error) {
	secs, err := a.Property(PropertyLength)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// Bitrate returns the average bitrate in kb/s.
func (a *AudioProperties) Bitrate() (int, error) {
	v, err := a.Property(PropertyBitrate)
	return int(v), err
}

// SampleRate returns the sample rate in Hz.
func (a *AudioProperties) SampleRate() (int, error) {
	v, err := a.Property(PropertySampleRate)
	return int(v), err
}

// Channels returns the number of audio channels.
func (a *AudioProperties) Channels() (int, error) {
	v, err := a.Property(PropertyChannels)
	return int(v), err
}
