package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ActiveSymbol returns a circled dot symbol for the current phase
func ActiveSymbol() string { return "◉" }

// CancelledSymbol returns a prohibited symbol for skipped phases
func CancelledSymbol() string { return "⊘" }

// ErrorSymbol returns a cross symbol for failed phases
func ErrorSymbol() string { return "✗" }

// PendingSymbol returns a hollow circle symbol for future phases
func PendingSymbol() string { return "○" }

// SuccessSymbol returns a check mark symbol for completed phases
func SuccessSymbol() string { return "✓" }

// RenderTimeline renders the phase progression timeline for the header.
// Shows 5 phases: Input, Scan, Confirm, Apply, Done
// Phases before current show ✓ (completed)
// Current phase shows ◉ (active)
// Phases after current show ○ (pending)
// Error phases (e.g., "scan_error") show ✗ at error point, ⊘ for skipped phases
func RenderTimeline(currentPhase string) string {
	phase := strings.ToLower(strings.TrimSpace(currentPhase))

	isError := strings.HasSuffix(phase, "_error")
	if isError {
		phase = strings.TrimSuffix(phase, "_error")
	}

	type phaseDefinition struct {
		name string
		key  string
	}

	phases := []phaseDefinition{
		{"Input", "input"},
		{"Scan", "scan"},
		{"Confirm", "confirm"},
		{"Apply", "apply"},
		{"Done", "done"},
	}

	currentIdx := -1

	for i, phaseInfo := range phases {
		if phaseInfo.key == phase {
			currentIdx = i

			break
		}
	}

	// Unknown phases render as the first phase
	if currentIdx == -1 {
		currentIdx = 0
	}

	parts := make([]string, 0, len(phases))

	for phaseIdx, phaseInfo := range phases {
		var symbol string

		var style lipgloss.Style

		switch {
		case isError && phaseIdx == currentIdx:
			symbol = ErrorSymbol()
			style = lipgloss.NewStyle().Foreground(ErrorColor())
		case isError && phaseIdx > currentIdx:
			symbol = CancelledSymbol()
			style = DimStyle()
		case phaseIdx < currentIdx:
			symbol = SuccessSymbol()
			style = lipgloss.NewStyle().Foreground(SuccessColor())
		case phaseIdx == currentIdx && currentIdx == len(phases)-1:
			// "done" shows as complete, not active
			symbol = SuccessSymbol()
			style = lipgloss.NewStyle().Foreground(SuccessColor())
		case phaseIdx == currentIdx:
			symbol = ActiveSymbol()
			style = lipgloss.NewStyle().Foreground(PrimaryColor())
		default:
			symbol = PendingSymbol()
			style = DimStyle()
		}

		parts = append(parts, style.Render(symbol+" "+phaseInfo.name))
	}

	separator := DimStyle().Render(" ── ")

	return strings.Join(parts, separator)
}
