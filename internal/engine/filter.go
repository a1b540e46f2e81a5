package engine

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExcludeFilter hides files and folders matching any of its glob patterns.
// Patterns are matched case-insensitively against slash-separated paths
// relative to the operation root, so ".git/**" or "*.tmp" work the same on
// every platform.
type ExcludeFilter struct {
	patterns []string
}

// NewExcludeFilter creates a filter from glob patterns. Empty and blank
// patterns are dropped; a filter with no patterns excludes nothing.
func NewExcludeFilter(patterns []string) *ExcludeFilter {
	normalized := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}

		normalized = append(normalized, strings.ToLower(trimmed))
	}

	return &ExcludeFilter{patterns: normalized}
}

// Excluded returns true if the relative path matches any pattern.
func (f *ExcludeFilter) Excluded(relativePath string) bool {
	if len(f.patterns) == 0 || relativePath == "" || relativePath == "." {
		return false
	}

	normalizedPath := strings.ToLower(filepath.ToSlash(relativePath))

	for _, pattern := range f.patterns {
		// An invalid pattern matches nothing.
		matched, err := doublestar.Match(pattern, normalizedPath)
		if err == nil && matched {
			return true
		}
	}

	return false
}
