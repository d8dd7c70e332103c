package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/taglib"
)

type setOptions struct {
	title, artist, album, comment, genre string
	year, track                          uint32

	backup   string
	validate bool
	keepTime bool
}

func newSetCmd(global *globalOptions) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set <file>",
		Short: "Change tag fields and save the file",
		Example: `  taginfo set song.mp3 --title "New Title" --year 2024
  taginfo set song.flac --artist "Someone" --backup .bak`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits := opts.edits(cmd)
			if len(edits) == 0 {
				return errNothingToSet
			}
			return runSet(cmd, global, opts, args[0], edits)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.title, "title", "", "track title")
	flags.StringVar(&opts.artist, "artist", "", "artist")
	flags.StringVar(&opts.album, "album", "", "album")
	flags.StringVar(&opts.comment, "comment", "", "comment")
	flags.StringVar(&opts.genre, "genre", "", "genre")
	flags.Uint32Var(&opts.year, "year", 0, "release year (0 clears it)")
	flags.Uint32Var(&opts.track, "track", 0, "track number (0 clears it)")
	flags.StringVar(&opts.backup, "backup", "", "copy the original to <file><suffix> before saving")
	flags.BoolVar(&opts.validate, "validate", false, "re-open the file after saving and compare")
	flags.BoolVar(&opts.keepTime, "preserve-mtime", false, "keep the original modification time")

	return cmd
}

// edit applies one flag to a tag.
type edit struct {
	name  string
	apply func(*taglib.Tag) error
}

// edits returns one edit per field flag given on the command line, so an
// explicit empty string clears a field while an absent flag leaves it alone.
func (o *setOptions) edits(cmd *cobra.Command) []edit {
	changed := cmd.Flags().Changed
	var edits []edit

	text := func(name, value string, set func(*taglib.Tag, string) error) {
		if changed(name) {
			edits = append(edits, edit{name, func(t *taglib.Tag) error { return set(t, value) }})
		}
	}
	number := func(name string, value uint32, set func(*taglib.Tag, uint32) error) {
		if changed(name) {
			edits = append(edits, edit{name, func(t *taglib.Tag) error { return set(t, value) }})
		}
	}

	text("title", o.title, (*taglib.Tag).SetTitle)
	text("artist", o.artist, (*taglib.Tag).SetArtist)
	text("album", o.album, (*taglib.Tag).SetAlbum)
	text("comment", o.comment, (*taglib.Tag).SetComment)
	text("genre", o.genre, (*taglib.Tag).SetGenre)
	number("year", o.year, (*taglib.Tag).SetYear)
	number("track", o.track, (*taglib.Tag).SetTrack)
	return edits
}

func (o *setOptions) saveOptions() []taglib.SaveOption {
	var opts []taglib.SaveOption
	if o.backup != "" {
		opts = append(opts, taglib.WithBackup(o.backup))
	}
	if o.validate {
		opts = append(opts, taglib.WithValidation())
	}
	if o.keepTime {
		opts = append(opts, taglib.WithPreserveModTime())
	}
	return opts
}

func runSet(cmd *cobra.Command, global *globalOptions, opts *setOptions, path string, edits []edit) error {
	file, err := global.open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	tag := file.Tag()
	for _, e := range edits {
		if err := e.apply(tag); err != nil {
			return fmt.Errorf("set %s: %w", e.name, err)
		}
	}

	if err := file.Save(opts.saveOptions()...); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "updated %d field(s) in %s\n", len(edits), path)
	return nil
}
