package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joe/folder-manager/pkg/errdecor"
	"github.com/joe/folder-manager/pkg/treeops"
)

// StructureScanResult is the outcome of scanning a source hierarchy.
type StructureScanResult struct {
	Source string
	// Folders holds every folder under Source, relative to it,
	// shallow-first so parents always precede children.
	Folders      []string
	FilesSkipped int
	Errors       []error
}

// CloneResult is the outcome of recreating a hierarchy at a destination.
type CloneResult struct {
	Created []string
	Existed []string
	Errors  []error
}

// ScanStructure collects the folder hierarchy under source, ignoring all
// files. This is a read-only operation.
func (e *Engine) ScanStructure(source string) (*StructureScanResult, error) {
	err := validateRoot(source)
	if err != nil {
		return nil, err
	}

	op := e.beginOp("clone scan")
	defer opEnd(op)

	opInfof(op, "scanning folder structure of %s", source)
	e.emit(ScanStarted{Kind: "clone", Root: source})

	result := &StructureScanResult{Source: source}

	err = e.walkTree(source, func(entry treeEntry) error {
		if entry.info.IsDir() {
			result.Folders = append(result.Folders, entry.relPath)
			e.bumpScanned(1, 0)
		} else {
			result.FilesSkipped++
			e.bumpScanned(0, 1)
		}

		e.emitScanProgress(len(result.Folders), result.FilesSkipped, entry.absPath)

		return nil
	}, func(path string, walkErr error) {
		opWarnf(op, "unreadable entry during scan: %s: %v", path, walkErr)
		result.Errors = append(result.Errors, errdecor.Decorate(walkErr, path))
	})
	if err != nil {
		opErrorf(op, "scan aborted: %v", err)

		return nil, err
	}

	treeops.SortShallowFirst(result.Folders)
	e.markDone()

	opInfof(op, "scan complete: %d folders, %d files ignored", len(result.Folders), result.FilesSkipped)
	e.emit(ScanComplete{Folders: len(result.Folders), Files: result.FilesSkipped})

	return result, nil
}

// CloneStructure recreates the scanned hierarchy under dest, folders only.
// The destination root is created if missing. Folders that already exist are
// recorded rather than treated as errors, so a clone can be resumed. Returns
// a partial result alongside ErrCancelled when cancelled mid-way.
func (e *Engine) CloneStructure(dest string, folders []string) (*CloneResult, error) {
	op := e.beginOp("clone apply")
	defer opEnd(op)

	opInfof(op, "creating %d folders under %s", len(folders), dest)
	e.emit(ApplyStarted{Kind: "clone", Total: len(folders)})

	result := &CloneResult{}

	err := os.MkdirAll(dest, treeops.DefaultDirPermissions)
	if err != nil {
		decorated := errdecor.Decorate(fmt.Errorf("failed to create destination %s: %w", dest, err), dest)
		opErrorf(op, "destination unavailable: %v", err)
		e.emit(ErrorOccurred{Phase: "clone", Err: decorated})

		return nil, decorated
	}

	ordered := append([]string{}, folders...)
	treeops.SortShallowFirst(ordered)

	for i, rel := range ordered {
		err = e.checkCancellation()
		if err != nil {
			opWarnf(op, "cancelled after %d of %d folders", i, len(ordered))

			return result, err
		}

		if !filepath.IsLocal(rel) {
			result.Errors = append(result.Errors, fmt.Errorf("%w: %s", ErrRootEscape, rel))

			continue
		}

		abs := filepath.Join(dest, rel)
		e.setCurrentPath(abs)
		e.setApplyProgress(i, len(ordered))
		e.emit(ApplyProgress{Processed: i, Total: len(ordered), Path: abs})

		info, statErr := os.Stat(abs)
		if statErr == nil && info.IsDir() {
			result.Existed = append(result.Existed, rel)

			continue
		}

		err = os.MkdirAll(abs, treeops.DefaultDirPermissions)
		if err != nil {
			decorated := errdecor.Decorate(fmt.Errorf("failed to create folder %s: %w", abs, err), abs)
			opErrorf(op, "create failed: %s: %v", abs, err)
			result.Errors = append(result.Errors, decorated)
			e.emit(ErrorOccurred{Phase: "clone", Err: decorated})

			continue
		}

		opInfof(op, "created: %s", abs)
		result.Created = append(result.Created, rel)
	}

	e.setApplyProgress(len(ordered), len(ordered))
	e.markDone()

	opInfof(op, "apply complete: %d created, %d existed, %d errors",
		len(result.Created), len(result.Existed), len(result.Errors))
	e.emit(ApplyComplete{Kind: "clone", Succeeded: len(result.Created), Failed: len(result.Errors)})

	return result, nil
}
