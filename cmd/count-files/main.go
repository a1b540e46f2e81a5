// Package main is a standalone file counter for scripting: it prints the
// root-level and recursive counts for a folder as a table, without the TUI.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/alexflint/go-arg"

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/engine"
	"github.com/joe/folder-manager/internal/tui/shared"
)

type args struct {
	Path     string   `arg:"positional" default:"." help:"Folder to count files in"`
	Detailed bool     `arg:"-d,--detailed" help:"Include per-extension counts"`
	Size     bool     `arg:"-s,--size" help:"Include total size"`
	Exclude  []string `arg:"--exclude,separate" help:"Glob patterns to exclude (may repeat)"`
}

// Description returns the program description for go-arg
func (args) Description() string {
	return "Count files in a folder, root level versus recursive"
}

// Version returns the version string for go-arg
func (args) Version() string {
	return "count-files 1.0.0"
}

func main() {
	var parsed args

	arg.MustParse(&parsed)

	err := run(parsed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(parsed args) error {
	err := config.ValidateDir(parsed.Path, "root")
	if err != nil {
		return err
	}

	eng := engine.New(engine.Options{Excludes: parsed.Exclude})

	result, err := eng.CountFiles(parsed.Path)
	if err != nil {
		return err
	}

	rows := [][]string{
		{"Files at root level", fmt.Sprintf("%d", result.RootOnly)},
		{"Files in all subfolders", fmt.Sprintf("%d", result.Recursive)},
		{"Folders", fmt.Sprintf("%d", result.Folders)},
	}

	if parsed.Size {
		rows = append(rows, []string{"Total size", shared.FormatBytes(result.TotalBytes)})
	}

	fmt.Println(renderTable([]string{"Metric", "Value"}, rows,
		[]columnAlignment{alignLeft, alignRight}))

	if parsed.Detailed {
		fmt.Println(renderTable([]string{"Extension", "Files"},
			extensionRows(result.ByExtension),
			[]columnAlignment{alignLeft, alignRight}))
	}

	for _, countErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", countErr)
	}

	return nil
}

// extensionRows sorts extensions by count, most frequent first.
func extensionRows(byExt map[string]int) [][]string {
	exts := make([]string, 0, len(byExt))
	for ext := range byExt {
		exts = append(exts, ext)
	}

	sort.Slice(exts, func(i, j int) bool {
		if byExt[exts[i]] != byExt[exts[j]] {
			return byExt[exts[i]] > byExt[exts[j]]
		}

		return exts[i] < exts[j]
	})

	rows := make([][]string, 0, len(exts))
	for _, ext := range exts {
		rows = append(rows, []string{ext, fmt.Sprintf("%d", byExt[ext])})
	}

	return rows
}
