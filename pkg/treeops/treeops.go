// Package treeops provides low-level directory and file primitives used by
// the folder engine: emptiness checks, collision-safe naming, file moves,
// and depth-based ordering.
package treeops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exported constants.
const (
	// BufferSize is the size of the buffer used for cross-device move fallback (32KB)
	BufferSize = 32 * 1024
	// DefaultDirPermissions is the default permission mode for created directories
	DefaultDirPermissions = 0o750
	// MaxRenameAttempts bounds the "(n)" suffix search for collision renaming
	MaxRenameAttempts = 10000
)

// IsDirEmpty reports whether the directory at path contains no entries at all.
// A stat or read failure is reported as not-empty so callers never delete a
// directory they could not inspect.
func IsDirEmpty(path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}

	return len(entries) == 0
}

// UniqueName returns a destination path inside dir for name that does not
// collide with an existing entry, appending " (n)" before the extension as
// needed: "report.txt" becomes "report (1).txt", then "report (2).txt", etc.
func UniqueName(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	if !pathExists(candidate) {
		return candidate, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 1; n <= MaxRenameAttempts; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if !pathExists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free name for %s in %s after %d attempts", name, dir, MaxRenameAttempts)
}

// MoveFile moves a file from src to dst. It tries os.Rename first and falls
// back to copy-then-remove when the rename fails (e.g. across devices).
// The destination's parent directory is created if missing.
func MoveFile(src, dst string) error {
	dstDir := filepath.Dir(dst)

	err := os.MkdirAll(dstDir, DefaultDirPermissions)
	if err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", dstDir, err)
	}

	err = os.Rename(src, dst)
	if err == nil {
		return nil
	}

	// Rename can fail across filesystems; fall back to copy + remove.
	err = copyFileContents(src, dst)
	if err != nil {
		return err
	}

	err = os.Remove(src)
	if err != nil {
		return fmt.Errorf("failed to remove source after copy %s: %w", src, err)
	}

	return nil
}

// SortShallowFirst orders paths by increasing depth (path separator count),
// ties broken lexically. Used for display and for creating parents before
// children.
func SortShallowFirst(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		di, dj := pathDepth(paths[i]), pathDepth(paths[j])
		if di != dj {
			return di < dj
		}

		return paths[i] < paths[j]
	})
}

// SortDeepestFirst orders paths by decreasing depth, ties broken lexically.
// Used for deleting children before their parents.
func SortDeepestFirst(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		di, dj := pathDepth(paths[i]), pathDepth(paths[j])
		if di != dj {
			return di > dj
		}

		return paths[i] < paths[j]
	})
}

func copyFileContents(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 - file path is controlled by caller
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", src, err)
	}

	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source file %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm()) // #nosec G304 - file path is controlled by caller
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}

	_, copyErr := io.CopyBuffer(out, in, make([]byte, BufferSize))

	closeErr := out.Close()
	if copyErr != nil {
		// Best effort cleanup of the partial destination.
		_ = os.Remove(dst)

		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, copyErr)
	}

	if closeErr != nil {
		_ = os.Remove(dst)

		return fmt.Errorf("failed to finalize %s: %w", dst, closeErr)
	}

	return nil
}

func pathDepth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)

	return err == nil
}
