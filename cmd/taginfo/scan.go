package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/taglib"
)

type scanOptions struct {
	concurrency int
	quiet       bool
}

type scanResult struct {
	path string
	info fileInfo
	err  error
}

func newScanCmd(global *globalOptions) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "List the tags of every audio file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), global, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", runtime.NumCPU(), "files opened in parallel")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

// collectAudioFiles returns every file under root whose extension a known
// FileType claims, in lexical order.
func collectAudioFiles(root string) ([]string, error) {
	known := make(map[string]bool)
	for t := taglib.FileTypeMPEG; t <= taglib.FileTypeASF; t++ {
		for _, ext := range t.Extensions() {
			known[ext] = true
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if known[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func runScan(ctx context.Context, stdout, stderr io.Writer, global *globalOptions, opts *scanOptions, root string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := collectAudioFiles(root)
	if err != nil {
		return fmt.Errorf("collect audio files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(stdout, "no audio files found")
		return nil
	}

	var bar *progressbar.ProgressBar
	if !opts.quiet {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
		)
	}

	results := make([]scanResult, len(files))
	var barMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = scanFile(global, path)
			if bar != nil {
				barMu.Lock()
				_ = bar.Add(1) //nolint:errcheck // Progress output is best effort
				barMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish() //nolint:errcheck // Progress output is best effort
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(stderr, "%s: %v\n", r.path, r.err)
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\t%ds\n", r.path, r.info.Artist, r.info.Title, int64(r.info.Length.Seconds()))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(files))
	}
	return nil
}

func scanFile(global *globalOptions, path string) scanResult {
	file, err := global.open(path)
	if err != nil {
		return scanResult{path: path, err: err}
	}
	defer file.Close()

	info, err := readInfo(file)
	return scanResult{path: path, info: info, err: err}
}
