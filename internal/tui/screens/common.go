// Package screens contains the tab screens of the folder manager TUI. Each
// screen runs the same phase cycle: input, scan, confirm, apply, done, with
// the scan acting as a dry-run preview that the user confirms before any
// change is made.
package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/engine"
	"github.com/joe/folder-manager/internal/session"
	"github.com/joe/folder-manager/internal/tui/shared"
	"github.com/joe/folder-manager/pkg/errdecor"
)

// Phase names shared by all screens.
const (
	PhaseInput   = "input"
	PhaseScan    = "scan"
	PhaseConfirm = "confirm"
	PhaseApply   = "apply"
	PhaseDone    = "done"
)

// unexported constants.
const (
	// errorDisplayLimit is the most errors shown in a done view.
	errorDisplayLimit = 3
	// inputWidthMargin leaves room for prompt and borders around inputs.
	inputWidthMargin = 10
	// inputWidthMin keeps inputs usable on narrow terminals.
	inputWidthMin = 20
)

// autoStartMsg kicks off a scan when a tool was selected on the command line.
type autoStartMsg struct{}

// Deps carries what every screen needs to run engine operations.
type Deps struct {
	Config *config.Config
	Logger *session.Logger
}

// opState is the state common to all tab screens.
type opState struct {
	deps      Deps
	phase     string
	spin      spinner.Model
	activity  []string
	failure   error
	eng       *engine.Engine
	bridge    *shared.EventBridge
	cancelled bool
	width     int
}

func newOpState(deps Deps) opState {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(shared.PrimaryColor())

	return opState{
		deps:  deps,
		phase: PhaseInput,
		spin:  spin,
	}
}

// startEngine creates a fresh engine wired to a new event bridge.
func (s *opState) startEngine() {
	s.bridge = shared.NewEventBridge()
	s.eng = engine.New(engine.Options{
		Excludes: s.deps.Config.Exclude,
		Logger:   s.deps.Logger,
	})
	s.eng.SetEventEmitter(s.bridge)
	s.activity = nil
	s.failure = nil
	s.cancelled = false
}

// busy reports whether an engine operation is in flight.
func (s *opState) busy() bool {
	return s.phase == PhaseScan || s.phase == PhaseApply
}

// cancel asks the running engine to stop.
func (s *opState) cancel() {
	if s.eng != nil {
		s.eng.Cancel()
		s.cancelled = true
	}
}

// listenCmds returns the commands that keep events and the spinner flowing.
func (s *opState) listenCmds(work tea.Cmd) tea.Cmd {
	return tea.Batch(work, s.bridge.ListenCmd(), s.spin.Tick)
}

// recordEvent turns an engine event into an activity log line. Returns the
// command to keep listening.
func (s *opState) recordEvent(event engine.Event) {
	switch ev := event.(type) {
	case engine.ScanStarted:
		s.activity = append(s.activity, "scanning "+ev.Root)
	case engine.ScanProgress:
		s.activity = append(s.activity,
			fmt.Sprintf("scanned %s, %s",
				shared.FormatCount(ev.Folders, "folder", "folders"),
				shared.FormatCount(ev.Files, "file", "files")))
	case engine.ScanComplete:
		s.activity = append(s.activity,
			fmt.Sprintf("scan finished: %s, %s",
				shared.FormatCount(ev.Folders, "folder", "folders"),
				shared.FormatCount(ev.Files, "file", "files")))
	case engine.ApplyStarted:
		s.activity = append(s.activity, fmt.Sprintf("applying %d changes", ev.Total))
	case engine.ApplyProgress:
		s.activity = append(s.activity, ev.Path)
	case engine.ApplyComplete:
		s.activity = append(s.activity,
			fmt.Sprintf("done: %d succeeded, %d failed", ev.Succeeded, ev.Failed))
	case engine.ErrorOccurred:
		s.activity = append(s.activity, shared.RenderError(ev.Err.Error()))
	}
}

// updateSpinner advances the spinner on its tick messages.
func (s *opState) updateSpinner(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.spin, cmd = s.spin.Update(msg)

	return cmd
}

// renderHeader renders the screen title and phase timeline.
func (s *opState) renderHeader(title string) string {
	return shared.RenderTitle(title) + "\n" + shared.RenderTimeline(s.phase) + "\n\n"
}

// renderActivity renders the recent activity during scan and apply.
func (s *opState) renderActivity() string {
	if len(s.activity) == 0 {
		return ""
	}

	return "\n" + shared.RenderActivityLog("Activity", s.activity, shared.ActivityLogLimit) + "\n"
}

// renderFailure renders the failure banner with suggestions when present.
func (s *opState) renderFailure() string {
	if s.failure == nil {
		return ""
	}

	content := "\n" + shared.RenderError("Error: "+s.failure.Error()) + "\n"

	return content
}

// doneBanner renders the outcome line for the done phase.
func (s *opState) doneBanner() string {
	if s.cancelled {
		return shared.RenderWarning("Cancelled - partial results below") + "\n\n"
	}

	return ""
}

// renderPathPreview renders a capped listing of paths for confirmation views.
func renderPathPreview(paths []string) string {
	var builder strings.Builder

	limit := len(paths)
	if limit > shared.ListDisplayLimit {
		limit = shared.ListDisplayLimit
	}

	for _, path := range paths[:limit] {
		builder.WriteString("  " + path + "\n")
	}

	if len(paths) > limit {
		builder.WriteString(shared.RenderDim(fmt.Sprintf("  ... and %d more\n", len(paths)-limit)))
	}

	return builder.String()
}

// renderErrorList renders up to errorDisplayLimit errors, with suggestions
// for the first one.
func renderErrorList(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var builder strings.Builder

	limit := len(errs)
	if limit > errorDisplayLimit {
		limit = errorDisplayLimit
	}

	for _, err := range errs[:limit] {
		builder.WriteString(shared.RenderError("  " + err.Error()))
		builder.WriteString("\n")
	}

	if len(errs) > limit {
		builder.WriteString(shared.RenderDim(fmt.Sprintf("  ... and %d more errors\n", len(errs)-limit)))
	}

	if suggestions := errdecor.FormatSuggestions(errs[0]); suggestions != "" {
		builder.WriteString("\n")
		builder.WriteString(shared.RenderLabel("Suggestions:"))
		builder.WriteString("\n")
		builder.WriteString(suggestions)
		builder.WriteString("\n")
	}

	return builder.String()
}
