package engine

import (
	"path/filepath"
	"strings"

	"github.com/joe/folder-manager/pkg/errdecor"
)

// NoExtensionKey is the ByExtension bucket for files without an extension.
const NoExtensionKey = "(none)"

// CountResult is the outcome of counting files under a root.
type CountResult struct {
	Root string
	// RootOnly counts files sitting directly in the root.
	RootOnly int
	// Recursive counts every file anywhere under the root, root level
	// included.
	Recursive int
	// Folders counts every folder under the root, the root excluded.
	Folders int
	// TotalBytes sums the sizes of all counted files.
	TotalBytes int64
	// ByExtension counts recursive files per lowercased extension.
	ByExtension map[string]int
	Errors      []error
}

// CountFiles counts files at root level and recursively, with per-extension
// detail and total size. This is a read-only operation.
func (e *Engine) CountFiles(root string) (*CountResult, error) {
	err := validateRoot(root)
	if err != nil {
		return nil, err
	}

	op := e.beginOp("count")
	defer opEnd(op)

	opInfof(op, "counting files under %s", root)
	e.emit(ScanStarted{Kind: "count", Root: root})

	result := &CountResult{Root: root, ByExtension: map[string]int{}}

	err = e.walkTree(root, func(entry treeEntry) error {
		if entry.info.IsDir() {
			result.Folders++
			e.bumpScanned(1, 0)
			e.emitScanProgress(result.Folders, result.Recursive, entry.absPath)

			return nil
		}

		result.Recursive++
		result.TotalBytes += entry.info.Size()

		if filepath.Dir(entry.relPath) == "." {
			result.RootOnly++
		}

		ext := strings.ToLower(filepath.Ext(entry.info.Name()))
		if ext == "" {
			ext = NoExtensionKey
		}

		result.ByExtension[ext]++

		e.bumpScanned(0, 1)
		e.emitScanProgress(result.Folders, result.Recursive, entry.absPath)

		return nil
	}, func(path string, walkErr error) {
		opWarnf(op, "unreadable entry during count: %s: %v", path, walkErr)
		result.Errors = append(result.Errors, errdecor.Decorate(walkErr, path))
	})
	if err != nil {
		opErrorf(op, "count aborted: %v", err)

		return nil, err
	}

	e.markDone()

	opInfof(op, "count complete: %d at root, %d total files, %d folders, %d bytes",
		result.RootOnly, result.Recursive, result.Folders, result.TotalBytes)
	e.emit(ScanComplete{Folders: result.Folders, Files: result.Recursive})

	return result, nil
}
