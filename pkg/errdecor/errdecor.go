// Package errdecor decorates filesystem errors with a category and concrete
// suggestions so the summary screens can tell the user what to try next
// instead of dumping a raw errno string.
package errdecor

import "strings"

// Exported constants.
const (
	CategoryDelete     Category = "delete"
	CategoryDiskSpace  Category = "disk_space"
	CategoryMove       Category = "move"
	CategoryPath       Category = "path"
	CategoryPermission Category = "permission"
	CategoryUnknown    Category = "unknown"
)

// Category represents the type of error that occurred.
type Category string

// DecoratedError is an error carrying a category and actionable suggestions.
type DecoratedError interface {
	error
	Category() Category
	Suggestions() []string
	AffectedPath() string
}

// NewDecoratedError creates a DecoratedError with the given details.
func NewDecoratedError(message string, category Category, suggestions []string, affectedPath string) DecoratedError {
	return &decoratedError{
		message:      message,
		category:     category,
		suggestions:  suggestions,
		affectedPath: affectedPath,
	}
}

// FormatSuggestions formats the suggestions from a DecoratedError as a
// bulleted list for display. Returns empty string if the error is nil,
// undecorated, or has no suggestions.
func FormatSuggestions(err error) string {
	if err == nil {
		return ""
	}

	decorated, ok := err.(DecoratedError)
	if !ok {
		return ""
	}

	suggestions := decorated.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// decoratedError is the concrete implementation of DecoratedError.
type decoratedError struct {
	message      string
	category     Category
	suggestions  []string
	affectedPath string
}

// AffectedPath returns the file path affected by this error.
func (e *decoratedError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *decoratedError) Category() Category {
	return e.category
}

// Error implements the error interface.
func (e *decoratedError) Error() string {
	return e.message
}

// Suggestions returns the list of actionable suggestions.
func (e *decoratedError) Suggestions() []string {
	return e.suggestions
}
