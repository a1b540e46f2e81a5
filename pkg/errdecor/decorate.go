package errdecor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Decorate takes a standard error and attaches a category and suggestions.
// If the error is already a DecoratedError it is returned unchanged.
// If affectedPath is empty, a path is extracted from the error message when
// the message follows the standard Go "op /path: reason" shape.
func Decorate(err error, affectedPath string) error {
	var decorated DecoratedError
	if errors.As(err, &decorated) {
		return decorated
	}

	msg := err.Error()

	if affectedPath == "" {
		affectedPath = extractPath(msg)
	}

	category := classify(msg)

	return NewDecoratedError(msg, category, suggestionsFor(category, affectedPath), affectedPath)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled once, shared across all Decorate calls
	pathExtractionPatterns = []*regexp.Regexp{
		// Unix paths (absolute and relative)
		regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`),
		// Windows paths with backslashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:\\[^\s:]+):`),
		// Windows paths with forward slashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:/[^\s:]+):`),
	}

	//nolint:gochecknoglobals // Static category patterns, read-only after init
	categoryPatterns = map[Category][]string{
		CategoryPermission: {
			"permission denied",
			"access denied",
			"operation not permitted",
		},
		CategoryDiskSpace: {
			"no space left on device",
			"disk full",
			"quota exceeded",
		},
		CategoryPath: {
			"no such file or directory",
			"file not found",
			"path does not exist",
			"not a directory",
		},
		CategoryDelete: {
			"directory not empty",
			"cannot remove",
		},
		CategoryMove: {
			"cross-device link",
			"invalid cross-device",
			"file exists",
		},
	}
)

func classify(msg string) Category {
	lower := strings.ToLower(msg)

	for category, patterns := range categoryPatterns {
		for _, pattern := range patterns {
			if strings.Contains(lower, pattern) {
				return category
			}
		}
	}

	return CategoryUnknown
}

// extractPath pulls a file path out of common Go error message formats like
// "open /path/to/file: permission denied" or
// "remove C:\Temp\data: directory not empty".
// Returns empty string if no path is found.
func extractPath(msg string) string {
	for _, pattern := range pathExtractionPatterns {
		if matches := pattern.FindStringSubmatch(msg); len(matches) > 1 {
			path := strings.TrimSpace(matches[1])
			if path != "" {
				return path
			}
		}
	}

	return ""
}

func suggestionsFor(category Category, path string) []string {
	switch category {
	case CategoryPermission:
		suggestions := []string{
			"Check that you own the folder or have write access to it",
		}
		if path != "" {
			suggestions = append(suggestions, fmt.Sprintf("Inspect permissions with 'ls -ld %s'", path))
		}

		return append(suggestions, "Re-run from an account with access, or adjust permissions with chmod/chown")

	case CategoryPath:
		suggestions := []string{
			"Verify the path is spelled correctly",
			"The folder may have been moved or deleted since the scan - rescan and try again",
		}
		if path != "" {
			suggestions = append(suggestions, fmt.Sprintf("Check whether %s still exists", path))
		}

		return suggestions

	case CategoryDelete:
		suggestions := []string{
			"The folder gained contents after the scan - only empty folders are removed",
			"Rescan to refresh the list of deletable folders",
		}
		if path != "" {
			suggestions = append(suggestions, fmt.Sprintf("List contents with 'ls -la %s'", path))
		}

		return suggestions

	case CategoryMove:
		return []string{
			"A file with the same name appeared at the destination during the move",
			"Re-run the flatten - remaining files will get fresh collision-safe names",
		}

	case CategoryDiskSpace:
		suggestions := []string{
			"Free up disk space on the target volume",
		}
		if path != "" {
			suggestions = append(suggestions, fmt.Sprintf("Check usage with 'df -h %s'", path))
		}

		return suggestions

	default:
		return []string{
			"Check the session log for details",
			"Try the operation again - this may be a transient filesystem error",
		}
	}
}
