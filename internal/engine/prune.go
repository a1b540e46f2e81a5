package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joe/folder-manager/pkg/errdecor"
	"github.com/joe/folder-manager/pkg/treeops"
)

// EmptyScanResult is the outcome of scanning for empty folder structures.
type EmptyScanResult struct {
	Root string
	// Empty holds folders that contain no files anywhere beneath them,
	// relative to Root, shallow-first. Folders nested inside an empty
	// parent are listed individually.
	Empty          []string
	FoldersScanned int
	FilesScanned   int
	Errors         []error
}

// SkippedFolder is a folder that was planned for deletion but skipped.
type SkippedFolder struct {
	Path   string
	Reason string
}

// DeleteResult is the outcome of deleting empty folders.
type DeleteResult struct {
	Deleted []string
	Skipped []SkippedFolder
	Errors  []error
}

// ScanEmpty finds every folder under root whose entire subtree contains no
// files. A folder counted as empty either has no entries at all, or contains
// only folders that are themselves empty. The root itself is never a
// candidate. This is a read-only operation.
func (e *Engine) ScanEmpty(root string) (*EmptyScanResult, error) {
	err := validateRoot(root)
	if err != nil {
		return nil, err
	}

	op := e.beginOp("prune scan")
	defer opEnd(op)

	opInfof(op, "scanning %s for empty folder structures", root)
	e.emit(ScanStarted{Kind: "prune", Root: root})

	result := &EmptyScanResult{Root: root}
	hasFile := map[string]bool{}
	children := map[string][]string{}

	var dirs []string

	err = e.walkTree(root, func(entry treeEntry) error {
		parent := filepath.Dir(entry.relPath)

		if entry.info.IsDir() {
			dirs = append(dirs, entry.relPath)
			children[parent] = append(children[parent], entry.relPath)
			result.FoldersScanned++
		} else {
			hasFile[parent] = true
			result.FilesScanned++
		}

		e.bumpScanned(boolToInt(entry.info.IsDir()), boolToInt(!entry.info.IsDir()))
		e.emitScanProgress(result.FoldersScanned, result.FilesScanned, entry.absPath)

		return nil
	}, func(path string, walkErr error) {
		opWarnf(op, "unreadable entry during scan: %s: %v", path, walkErr)
		result.Errors = append(result.Errors, errdecor.Decorate(walkErr, path))
	})
	if err != nil {
		opErrorf(op, "scan aborted: %v", err)

		return nil, err
	}

	// A folder is empty iff it has no direct files and every direct
	// subfolder is empty. Memoized so shared subtrees are computed once.
	emptyMemo := map[string]bool{}

	var isEmpty func(dir string) bool

	isEmpty = func(dir string) bool {
		if cached, ok := emptyMemo[dir]; ok {
			return cached
		}

		empty := !hasFile[dir]
		for _, child := range children[dir] {
			if !empty {
				break
			}

			empty = isEmpty(child)
		}

		emptyMemo[dir] = empty

		return empty
	}

	for _, dir := range dirs {
		if isEmpty(dir) {
			result.Empty = append(result.Empty, dir)
		}
	}

	treeops.SortShallowFirst(result.Empty)
	e.markDone()

	opInfof(op, "scan complete: %d folders, %d files, %d empty structures",
		result.FoldersScanned, result.FilesScanned, len(result.Empty))
	e.emit(ScanComplete{Folders: result.FoldersScanned, Files: result.FilesScanned})

	return result, nil
}

// DeleteEmpty removes the given folders, deepest-first so children go before
// their parents. Each folder is re-verified to still be empty immediately
// before removal; folders that gained contents or vanished since the scan are
// skipped, not failed. Returns a partial result alongside ErrCancelled when
// cancelled mid-way.
func (e *Engine) DeleteEmpty(root string, folders []string) (*DeleteResult, error) {
	op := e.beginOp("prune apply")
	defer opEnd(op)

	opInfof(op, "deleting %d empty folders under %s", len(folders), root)
	e.emit(ApplyStarted{Kind: "prune", Total: len(folders)})

	ordered := append([]string{}, folders...)
	treeops.SortDeepestFirst(ordered)

	result := &DeleteResult{}

	for i, rel := range ordered {
		err := e.checkCancellation()
		if err != nil {
			opWarnf(op, "cancelled after %d of %d deletions", i, len(ordered))

			return result, err
		}

		if !filepath.IsLocal(rel) {
			result.Errors = append(result.Errors, fmt.Errorf("%w: %s", ErrRootEscape, rel))

			continue
		}

		abs := filepath.Join(root, rel)
		e.setCurrentPath(abs)
		e.setApplyProgress(i, len(ordered))
		e.emit(ApplyProgress{Processed: i, Total: len(ordered), Path: abs})

		_, statErr := os.Stat(abs)
		if os.IsNotExist(statErr) {
			opWarnf(op, "skipped (already gone): %s", abs)
			result.Skipped = append(result.Skipped, SkippedFolder{Path: rel, Reason: "already gone"})

			continue
		}

		if !treeops.IsDirEmpty(abs) {
			opWarnf(op, "skipped (no longer empty): %s", abs)
			result.Skipped = append(result.Skipped, SkippedFolder{Path: rel, Reason: "no longer empty"})

			continue
		}

		err = os.Remove(abs)
		if err != nil {
			decorated := errdecor.Decorate(fmt.Errorf("failed to delete %s: %w", abs, err), abs)
			opErrorf(op, "delete failed: %s: %v", abs, err)
			result.Errors = append(result.Errors, decorated)
			e.emit(ErrorOccurred{Phase: "prune", Err: decorated})

			continue
		}

		opInfof(op, "deleted: %s", abs)
		result.Deleted = append(result.Deleted, rel)
	}

	e.setApplyProgress(len(ordered), len(ordered))
	e.markDone()

	opInfof(op, "apply complete: %d deleted, %d skipped, %d errors",
		len(result.Deleted), len(result.Skipped), len(result.Errors))
	e.emit(ApplyComplete{Kind: "prune", Succeeded: len(result.Deleted), Failed: len(result.Errors)})

	return result, nil
}

// emitScanProgress emits a throttled progress event.
func (e *Engine) emitScanProgress(folders, files int, path string) {
	if (folders+files)%ProgressEmitInterval == 0 {
		e.emit(ScanProgress{Folders: folders, Files: files, Path: path})
	}
}

func validateRoot(root string) error {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	if err != nil {
		return fmt.Errorf("failed to access root %s: %w", root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a folder", ErrRootNotFound, root)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
