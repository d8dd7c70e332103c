package main

import (
	"errors"
	"time"

	"github.com/simonhull/taglib"
)

// fileInfo is everything taginfo prints about one file.
type fileInfo struct {
	Title, Artist, Album, Comment, Genre string

	Year, Track uint32

	Length     time.Duration
	Bitrate    int
	SampleRate int
	Channels   int
}

// readInfo copies every field out of file. The first error wins.
func readInfo(file *taglib.File) (fileInfo, error) {
	var (
		info fileInfo
		errs []error
	)
	text := func(dst *string, get func() (string, error)) {
		v, err := get()
		*dst = v
		errs = append(errs, err)
	}
	num := func(dst *uint32, get func() (uint32, error)) {
		v, err := get()
		*dst = v
		errs = append(errs, err)
	}
	prop := func(dst *int, get func() (int, error)) {
		v, err := get()
		*dst = v
		errs = append(errs, err)
	}

	tag := file.Tag()
	text(&info.Title, tag.Title)
	text(&info.Artist, tag.Artist)
	text(&info.Album, tag.Album)
	text(&info.Comment, tag.Comment)
	text(&info.Genre, tag.Genre)
	num(&info.Year, tag.Year)
	num(&info.Track, tag.Track)

	props := file.AudioProperties()
	length, err := props.Length()
	info.Length = length
	errs = append(errs, err)
	prop(&info.Bitrate, props.Bitrate)
	prop(&info.SampleRate, props.SampleRate)
	prop(&info.Channels, props.Channels)

	for _, err := range errs {
		if err != nil {
			return info, err
		}
	}
	return info, nil
}

// errNothingToSet is returned by "taginfo set" without any field flag.
var errNothingToSet = errors.New("nothing to set: pass at least one of --title, --artist, --album, --comment, --genre, --year, --track")
