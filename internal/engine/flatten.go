package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/session"
	"github.com/joe/folder-manager/pkg/errdecor"
	"github.com/joe/folder-manager/pkg/treeops"
)

// FlattenMove is one planned file move.
type FlattenMove struct {
	// RelPath is the file's current location, relative to the root.
	RelPath string
	// Name is the file's base name, its landing name at the root barring
	// conflicts.
	Name string
	// Conflict is true when the name is already taken at the root, either
	// by an existing file or by an earlier planned move.
	Conflict bool
}

// FlattenPlan is the read-only preview of a flatten operation.
type FlattenPlan struct {
	Root  string
	Moves []FlattenMove
	// Folders lists every folder under the root, shallow-first. After the
	// moves, folders left empty are removed deepest-first.
	Folders []string
	Errors  []error
}

// Conflicts counts the planned moves that would collide at the root.
func (p *FlattenPlan) Conflicts() int {
	count := 0

	for _, move := range p.Moves {
		if move.Conflict {
			count++
		}
	}

	return count
}

// MoveRecord is one completed file move.
type MoveRecord struct {
	From string // relative to the root
	To   string // final name at the root
}

// SkippedFile is a planned move that was not performed.
type SkippedFile struct {
	Path   string
	Reason string
}

// FlattenResult is the outcome of applying a flatten plan.
type FlattenResult struct {
	Moved          []MoveRecord
	Skipped        []SkippedFile
	RemovedFolders []string
	Errors         []error
}

// PlanFlatten determines which files would move to the root and which would
// collide with an existing name. Files already at the root stay put. This is
// a read-only operation.
func (e *Engine) PlanFlatten(root string) (*FlattenPlan, error) {
	err := validateRoot(root)
	if err != nil {
		return nil, err
	}

	op := e.beginOp("flatten scan")
	defer opEnd(op)

	opInfof(op, "planning flatten of %s", root)
	e.emit(ScanStarted{Kind: "flatten", Root: root})

	plan := &FlattenPlan{Root: root}
	files := 0

	// Names already present at the root claim their name up front; the walk
	// visits entries lexically, so nested files can be seen before root ones.
	taken, err := e.rootLevelNames(root)
	if err != nil {
		opErrorf(op, "plan aborted: %v", err)

		return nil, err
	}

	err = e.walkTree(root, func(entry treeEntry) error {
		if entry.info.IsDir() {
			plan.Folders = append(plan.Folders, entry.relPath)
			e.bumpScanned(1, 0)
			e.emitScanProgress(len(plan.Folders), files, entry.absPath)

			return nil
		}

		files++
		e.bumpScanned(0, 1)
		e.emitScanProgress(len(plan.Folders), files, entry.absPath)

		if filepath.Dir(entry.relPath) == "." {
			// Already at the root; claimed during the pre-scan.
			return nil
		}

		name := entry.info.Name()
		plan.Moves = append(plan.Moves, FlattenMove{
			RelPath:  entry.relPath,
			Name:     name,
			Conflict: taken[name],
		})
		taken[name] = true

		return nil
	}, func(path string, walkErr error) {
		opWarnf(op, "unreadable entry during plan: %s: %v", path, walkErr)
		plan.Errors = append(plan.Errors, errdecor.Decorate(walkErr, path))
	})
	if err != nil {
		opErrorf(op, "plan aborted: %v", err)

		return nil, err
	}

	treeops.SortShallowFirst(plan.Folders)
	e.markDone()

	opInfof(op, "plan complete: %d files to move, %d conflicts, %d folders",
		len(plan.Moves), plan.Conflicts(), len(plan.Folders))
	e.emit(ScanComplete{Folders: len(plan.Folders), Files: files})

	return plan, nil
}

// ApplyFlatten moves the planned files to the root, then removes folders the
// moves left empty, deepest-first. Name collisions are resolved per mode:
// renamed with a numbered suffix, or skipped in place. Files that vanished
// since planning are skipped, not failed. Returns a partial result alongside
// ErrCancelled when cancelled mid-way.
//
//nolint:funlen,cyclop // The move loop handles several per-file outcomes inline
func (e *Engine) ApplyFlatten(plan *FlattenPlan, mode config.ConflictMode) (*FlattenResult, error) {
	op := e.beginOp("flatten apply")
	defer opEnd(op)

	opInfof(op, "flattening %d files into %s (conflicts: %s)", len(plan.Moves), plan.Root, mode)
	e.emit(ApplyStarted{Kind: "flatten", Total: len(plan.Moves)})

	result := &FlattenResult{}

	for i, move := range plan.Moves {
		err := e.checkCancellation()
		if err != nil {
			opWarnf(op, "cancelled after %d of %d moves", i, len(plan.Moves))

			return result, err
		}

		if !filepath.IsLocal(move.RelPath) {
			result.Errors = append(result.Errors, fmt.Errorf("%w: %s", ErrRootEscape, move.RelPath))

			continue
		}

		src := filepath.Join(plan.Root, move.RelPath)
		e.setCurrentPath(src)
		e.setApplyProgress(i, len(plan.Moves))
		e.emit(ApplyProgress{Processed: i, Total: len(plan.Moves), Path: src})

		_, statErr := os.Stat(src)
		if os.IsNotExist(statErr) {
			opWarnf(op, "skipped (vanished): %s", src)
			result.Skipped = append(result.Skipped, SkippedFile{Path: move.RelPath, Reason: "vanished"})

			continue
		}

		target := filepath.Join(plan.Root, move.Name)

		_, targetErr := os.Stat(target)
		if targetErr == nil {
			if mode == config.ConflictSkip {
				opInfof(op, "skipped (name taken): %s", src)
				result.Skipped = append(result.Skipped, SkippedFile{Path: move.RelPath, Reason: "name taken"})

				continue
			}

			target, err = treeops.UniqueName(plan.Root, move.Name)
			if err != nil {
				decorated := errdecor.Decorate(fmt.Errorf("failed to pick a free name for %s: %w", src, err), src)
				opErrorf(op, "rename failed: %s: %v", src, err)
				result.Errors = append(result.Errors, decorated)
				e.emit(ErrorOccurred{Phase: "flatten", Err: decorated})

				continue
			}
		}

		err = treeops.MoveFile(src, target)
		if err != nil {
			decorated := errdecor.Decorate(err, src)
			opErrorf(op, "move failed: %s: %v", src, err)
			result.Errors = append(result.Errors, decorated)
			e.emit(ErrorOccurred{Phase: "flatten", Err: decorated})

			continue
		}

		opInfof(op, "moved: %s -> %s", src, target)
		result.Moved = append(result.Moved, MoveRecord{From: move.RelPath, To: filepath.Base(target)})
	}

	e.removeEmptiedFolders(plan, result, op)

	e.setApplyProgress(len(plan.Moves), len(plan.Moves))
	e.markDone()

	opInfof(op, "apply complete: %d moved, %d skipped, %d folders removed, %d errors",
		len(result.Moved), len(result.Skipped), len(result.RemovedFolders), len(result.Errors))
	e.emit(ApplyComplete{Kind: "flatten", Succeeded: len(result.Moved), Failed: len(result.Errors)})

	return result, nil
}

// rootLevelNames returns the names of non-excluded files sitting directly in
// the root.
func (e *Engine) rootLevelNames(root string) (map[string]bool, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read root %s: %w", root, err)
	}

	taken := map[string]bool{}

	for _, entry := range entries {
		if entry.IsDir() || e.filter.Excluded(entry.Name()) {
			continue
		}

		taken[entry.Name()] = true
	}

	return taken, nil
}

// removeEmptiedFolders deletes folders the moves left empty, deepest-first so
// parents empty out as their children are removed. Folders still holding
// files (skipped conflicts included) are left alone.
func (e *Engine) removeEmptiedFolders(plan *FlattenPlan, result *FlattenResult, op *session.Operation) {
	ordered := append([]string{}, plan.Folders...)
	treeops.SortDeepestFirst(ordered)

	for _, rel := range ordered {
		if !filepath.IsLocal(rel) {
			continue
		}

		abs := filepath.Join(plan.Root, rel)

		_, statErr := os.Stat(abs)
		if os.IsNotExist(statErr) {
			continue
		}

		if !treeops.IsDirEmpty(abs) {
			continue
		}

		err := os.Remove(abs)
		if err != nil {
			decorated := errdecor.Decorate(fmt.Errorf("failed to remove emptied folder %s: %w", abs, err), abs)
			opErrorf(op, "cleanup failed: %s: %v", abs, err)
			result.Errors = append(result.Errors, decorated)

			continue
		}

		opInfof(op, "removed emptied folder: %s", abs)
		result.RemovedFolders = append(result.RemovedFolders, rel)
	}
}
