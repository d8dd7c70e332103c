// Command taginfo prints and edits the tags of audio files through TagLib.
//
// Usage:
//
//	taginfo [--type T] [--latin1] [--all] <file>
//	taginfo set <file> --title "New Title" --year 2024
//	taginfo scan [-j N] <dir>
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
