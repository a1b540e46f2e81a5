package screens

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/folder-manager/internal/tui/shared"
)

// completionDisplayMax is the most completion candidates shown at once.
const completionDisplayMax = 8

// pathField is a single folder-path input with tab completion. Tab cycles
// candidates forward, shift+tab backward, right arrow accepts the current
// candidate and descends into it.
type pathField struct {
	input           textinput.Model
	completions     []string
	completionIndex int
	showCompletions bool
}

func newPathField(placeholder, initial string, focused bool) pathField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.SetValue(initial)
	input.Prompt = "  "

	if focused {
		input.Focus()
		input.Prompt = shared.PromptArrow
	}

	return pathField{input: input}
}

// Value returns the current text.
func (f pathField) Value() string {
	return f.input.Value()
}

// Focused reports whether the field has focus.
func (f pathField) Focused() bool {
	return f.input.Focused()
}

func (f pathField) focus() pathField {
	f.input.Focus()
	f.input.Prompt = shared.PromptArrow

	return f
}

func (f pathField) blur() pathField {
	f.input.Blur()
	f.input.Prompt = "  "
	f.showCompletions = false

	return f
}

func (f pathField) setWidth(width int) pathField {
	f.input.Width = width

	return f
}

// handleKey processes one key. Returns the updated field, a command, and
// whether the key was consumed (tab/shift+tab/right/esc are; everything else
// is fed to the underlying textinput).
func (f pathField) handleKey(msg tea.KeyMsg) (pathField, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyTab:
		return f.cycleCompletion(1), nil, true

	case tea.KeyShiftTab:
		return f.cycleCompletion(-1), nil, true

	case tea.KeyRight:
		if f.showCompletions && len(f.completions) > 0 {
			return f.acceptAndDescend(), nil, true
		}

		f.showCompletions = false

		return f, nil, false

	case tea.KeyEsc:
		if f.showCompletions {
			f.showCompletions = false

			return f, nil, true
		}

		f.input.SetValue("")

		return f, nil, true

	default:
		f.showCompletions = false

		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)

		return f, cmd, false
	}
}

// cycleCompletion starts completion on first tab, then cycles by delta.
func (f pathField) cycleCompletion(delta int) pathField {
	if !f.showCompletions {
		f.completions = getPathCompletions(f.input.Value())
		f.completionIndex = 0
		f.showCompletions = true

		if len(f.completions) == 1 {
			f = f.applyCompletion(f.completions[0])
			f.showCompletions = false
		} else if len(f.completions) > 0 {
			f = f.applyCompletion(f.completions[0])
		}

		return f
	}

	if len(f.completions) == 0 {
		return f
	}

	f.completionIndex = (f.completionIndex + delta + len(f.completions)) % len(f.completions)

	return f.applyCompletion(f.completions[f.completionIndex])
}

// acceptAndDescend locks in the current candidate and opens completion for
// the next path segment.
func (f pathField) acceptAndDescend() pathField {
	current := f.completions[f.completionIndex]
	f = f.applyCompletion(current)
	f.showCompletions = false

	f.completions = getPathCompletions(current)
	if len(f.completions) > 0 {
		f.completionIndex = 0
		f.showCompletions = true
		f = f.applyCompletion(f.completions[0])
	}

	return f
}

func (f pathField) applyCompletion(completion string) pathField {
	f.input.SetValue(completion)
	f.input.CursorEnd()

	return f
}

// View renders the input plus its completion list when open.
func (f pathField) View() string {
	content := f.input.View()

	if f.Focused() && f.showCompletions && len(f.completions) > 0 {
		content += "\n" + f.renderCompletionList()
	}

	return content
}

func (f pathField) renderCompletionList() string {
	start := 0
	end := len(f.completions)

	if end > completionDisplayMax {
		start = max(f.completionIndex-completionDisplayMax/2, 0)

		end = start + completionDisplayMax
		if end > len(f.completions) {
			end = len(f.completions)
			start = max(end-completionDisplayMax, 0)
		}
	}

	var lines []string

	if start > 0 {
		lines = append(lines, shared.RenderDim("    ..."))
	}

	for i := start; i < end; i++ {
		base := completionBaseName(f.completions[i])
		if i == f.completionIndex {
			lines = append(lines, shared.LabelStyle().Render("  ▶ "+base))
		} else {
			lines = append(lines, shared.RenderDim("    "+base))
		}
	}

	if end < len(f.completions) {
		lines = append(lines, shared.RenderDim("    ..."))
	}

	return strings.Join(lines, "\n")
}

// ============================================================================
// Path Completion Helpers
// ============================================================================

func expandHomePath(input string) string {
	if input == "" {
		return "."
	}

	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, input[1:])
		}
	}

	return input
}

func completionBaseName(path string) string {
	trimmed := strings.TrimSuffix(path, string(filepath.Separator))
	base := filepath.Base(trimmed)

	if strings.HasSuffix(path, string(filepath.Separator)) {
		return base + string(filepath.Separator)
	}

	return base
}

// getPathCompletions lists folders matching the partial path. Only folders
// are offered since every operation takes a folder.
func getPathCompletions(input string) []string {
	input = expandHomePath(input)
	dir, prefix := parseCompletionPath(input)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	completions := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !shouldIncludeEntry(name, prefix) {
			continue
		}

		completions = append(completions, filepath.Join(dir, name)+string(filepath.Separator))
	}

	sort.Strings(completions)

	return completions
}

func parseCompletionPath(input string) (dir, prefix string) {
	dir = filepath.Dir(input)
	prefix = filepath.Base(input)

	if strings.HasSuffix(input, string(filepath.Separator)) {
		dir = input
		prefix = ""
	}

	return dir, prefix
}

func shouldIncludeEntry(name, prefix string) bool {
	// Hidden folders only complete when explicitly asked for
	if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
		return false
	}

	return prefix == "" || strings.HasPrefix(name, prefix)
}
