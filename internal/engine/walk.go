package engine

import (
	"fmt"
	"os"
	"path/filepath"

	krfs "github.com/kr/fs"
)

// treeEntry is one item visited during a tree walk.
type treeEntry struct {
	absPath string
	relPath string // relative to the walk root, platform separators
	info    os.FileInfo
}

// walkTree visits every non-excluded entry under root, depth-first, skipping
// the root itself. Unreadable entries are reported through onError and the
// walk continues. The walk stops early only on cancellation or when visit
// returns an error.
func (e *Engine) walkTree(root string, visit func(entry treeEntry) error, onError func(path string, err error)) error {
	walker := krfs.Walk(root)

	for walker.Step() {
		err := e.checkCancellation()
		if err != nil {
			return err
		}

		if walkErr := walker.Err(); walkErr != nil {
			if onError != nil {
				onError(walker.Path(), walkErr)
			}

			continue
		}

		path := walker.Path()
		if path == root {
			continue
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}

		if e.filter.Excluded(rel) {
			if walker.Stat().IsDir() {
				walker.SkipDir()
			}

			continue
		}

		err = visit(treeEntry{absPath: path, relPath: rel, info: walker.Stat()})
		if err != nil {
			return err
		}
	}

	return nil
}
