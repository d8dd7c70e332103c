package types

// Property selects one derived audio property.
type Property int

const (
	// PropertyLength is the stream length in seconds.
	PropertyLength Property = iota
	// PropertyBitrate is the average bitrate in kb/s.
	PropertyBitrate
	// PropertySampleRate is the sample rate in Hz.
	PropertySampleRate
	// PropertyChannels is the number of audio channels.
	PropertyChannels
)

func (p Property) String() string {
	switch p {
	case PropertyLength:
		return "length"
	case PropertyBitrate:
		return "bitrate"
	case PropertySampleRate:
		return "samplerate"
	case PropertyChannels:
		return "channels"
	default:
		return "Property(" + itoa(int(p)) + ")"
	}
}
