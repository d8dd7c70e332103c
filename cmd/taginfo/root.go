package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/simonhull/taglib"
	"github.com/simonhull/taglib/internal/logger"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	typeName  string
	latin1    bool
	verbose   bool
	logLevel  string
	logFormat string

	typ    taglib.FileType
	forced bool
	log    *slog.Logger
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "taginfo:", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var all bool

	root := &cobra.Command{
		Use:   "taginfo <file>",
		Short: "Print the tag and audio properties of an audio file",
		Long: `taginfo reads audio metadata through TagLib's C bindings.

Without a subcommand it prints the title, artist, year and length of one file.
Use "taginfo set" to change tags and "taginfo scan" to list a directory.`,
		Args:          cobra.ExactArgs(1),
		Version:       taglib.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), opts, args[0], all)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.typeName, "type", "t", "", "open as this file type (mpeg, flac, mp4, ...) instead of detecting it")
	flags.BoolVar(&opts.latin1, "latin1", false, "exchange strings with TagLib as Latin-1 instead of UTF-8")
	flags.BoolVar(&opts.verbose, "verbose", false, "log native open, save and close events")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")

	root.Flags().BoolVarP(&all, "all", "a", false, "print every tag field and audio property")

	root.SetVersionTemplate("taginfo version {{.Version}}\n")
	root.AddCommand(newSetCmd(opts), newScanCmd(opts), newVersionCmd())
	return root
}

// setup validates the shared flags and applies the process-wide settings.
func (o *globalOptions) setup(stderr io.Writer) error {
	level := logger.ParseLevel(o.logLevel)
	if o.verbose {
		level = slog.LevelDebug
	}
	o.log = logger.New(logger.Config{
		Writer: stderr,
		Format: o.logFormat,
		Level:  level,
	})

	if o.typeName != "" {
		typ, ok := taglib.ParseFileType(o.typeName)
		if !ok {
			return fmt.Errorf("unknown file type %q", o.typeName)
		}
		o.typ, o.forced = typ, true
	}

	if o.latin1 {
		taglib.SetUnicode(false)
	}
	return nil
}

// open opens path honoring --type.
func (o *globalOptions) open(path string) (*taglib.File, error) {
	opts := []taglib.Option{taglib.WithLogger(o.log)}
	if o.forced {
		return taglib.OpenType(path, o.typ, opts...)
	}
	return taglib.Open(path, opts...)
}

func runInfo(w io.Writer, opts *globalOptions, path string, all bool) error {
	file, err := opts.open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := readInfo(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Title:  %s\n", info.Title)
	fmt.Fprintf(w, "Artist: %s\n", info.Artist)
	fmt.Fprintf(w, "Year:   %d\n", info.Year)
	fmt.Fprintf(w, "Length: %ds\n", int64(info.Length.Seconds()))

	if !all {
		return nil
	}

	fmt.Fprintf(w, "Album:      %s\n", info.Album)
	fmt.Fprintf(w, "Comment:    %s\n", info.Comment)
	fmt.Fprintf(w, "Genre:      %s\n", info.Genre)
	fmt.Fprintf(w, "Track:      %d\n", info.Track)
	fmt.Fprintf(w, "Bitrate:    %d kb/s\n", info.Bitrate)
	fmt.Fprintf(w, "SampleRate: %d Hz\n", info.SampleRate)
	fmt.Fprintf(w, "Channels:   %d\n", info.Channels)
	if detected, err := taglib.DetectFileType(path); err == nil {
		fmt.Fprintf(w, "Detected:   %s\n", detected)
	} else {
		fmt.Fprintf(w, "Detected:   unknown\n")
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and native library information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := taglib.GetVersionInfo()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "taginfo %s\n", v.Version)
			fmt.Fprintf(w, "  commit: %s\n", v.GitCommit)
			fmt.Fprintf(w, "  go:     %s\n", v.GoVersion)
			fmt.Fprintf(w, "  native: %s\n", v.Native)
			return nil
		},
	}
}
