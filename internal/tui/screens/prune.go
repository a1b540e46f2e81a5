package screens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/engine"
	"github.com/joe/folder-manager/internal/tui/shared"
)

// PruneScreen finds and deletes folder structures that contain no files.
type PruneScreen struct {
	opState
	root      pathField
	rootPath  string
	scan      *engine.EmptyScanResult
	result    *engine.DeleteResult
	autoStart bool
}

type pruneScanDoneMsg struct {
	result *engine.EmptyScanResult
	err    error
}

type pruneApplyDoneMsg struct {
	result *engine.DeleteResult
	err    error
}

// NewPruneScreen creates the prune tab.
func NewPruneScreen(deps Deps) PruneScreen {
	return PruneScreen{
		opState:   newOpState(deps),
		root:      newPathField("/path/to/clean", deps.Config.Path, true),
		autoStart: deps.Config.Tool == config.ToolPrune && deps.Config.Path != "",
	}
}

// Init implements tea.Model
func (s PruneScreen) Init() tea.Cmd {
	if s.autoStart {
		return tea.Batch(textinput.Blink, func() tea.Msg { return autoStartMsg{} })
	}

	return textinput.Blink
}

// Update implements tea.Model
func (s PruneScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case autoStartMsg:
		if s.autoStart && s.phase == PhaseInput {
			s.autoStart = false

			return s.beginScan()
		}

		return s, nil

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.root = s.root.setWidth(max(msg.Width-inputWidthMargin, inputWidthMin))

		return s, nil

	case shared.EngineEventMsg:
		if s.bridge == nil || msg.Source != s.bridge {
			return s, nil
		}

		s.recordEvent(msg.Event)

		return s, s.bridge.ListenCmd()

	case spinner.TickMsg:
		if !s.busy() {
			return s, nil
		}

		return s, s.updateSpinner(msg)

	case pruneScanDoneMsg:
		return s.handleScanDone(msg)

	case pruneApplyDoneMsg:
		return s.handleApplyDone(msg)

	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	}

	return s, nil
}

// View implements tea.Model
func (s PruneScreen) View() string {
	header := s.renderHeader("Prune Empty Folders")

	switch s.phase {
	case PhaseInput:
		return header + s.viewInput()
	case PhaseScan:
		return header + s.viewScan()
	case PhaseConfirm:
		return header + s.viewConfirm()
	case PhaseApply:
		return header + s.viewApply()
	case PhaseDone:
		return header + s.viewDone()
	default:
		return header + s.viewError()
	}
}

func (s PruneScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == shared.KeyCtrlC {
		s.cancel()

		return s, tea.Quit
	}

	switch s.phase {
	case PhaseInput:
		if msg.Type == tea.KeyEnter {
			return s.beginScan()
		}

		var cmd tea.Cmd
		s.root, cmd, _ = s.root.handleKey(msg)

		return s, cmd

	case PhaseScan, PhaseApply:
		if msg.Type == tea.KeyEsc {
			s.cancel()
		}

		return s, nil

	case PhaseConfirm:
		switch msg.Type {
		case tea.KeyEnter:
			return s.beginApply()
		case tea.KeyEsc:
			s.phase = PhaseInput

			return s, nil
		default:
			return s, nil
		}

	default: // done or error
		if msg.String() == "r" || msg.Type == tea.KeyEnter {
			s.phase = PhaseInput
			s.failure = nil

			return s, nil
		}

		return s, nil
	}
}

func (s PruneScreen) beginScan() (tea.Model, tea.Cmd) {
	root := strings.TrimSpace(s.root.Value())

	err := config.ValidateDir(root, "root")
	if err != nil {
		s.failure = err

		return s, nil
	}

	s.rootPath = root
	s.startEngine()
	s.phase = PhaseScan
	s.scan = nil
	s.result = nil

	eng := s.eng
	work := func() tea.Msg {
		result, scanErr := eng.ScanEmpty(root)

		return pruneScanDoneMsg{result: result, err: scanErr}
	}

	return s, s.listenCmds(work)
}

func (s PruneScreen) handleScanDone(msg pruneScanDoneMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, engine.ErrCancelled) {
		s.phase = PhaseDone

		return s, nil
	}

	if msg.err != nil {
		s.failure = msg.err
		s.phase = PhaseScan + "_error"

		return s, nil
	}

	s.scan = msg.result

	if len(s.scan.Empty) == 0 {
		s.phase = PhaseDone

		return s, nil
	}

	if s.deps.Config.SkipConfirmation {
		return s.beginApply()
	}

	s.phase = PhaseConfirm

	return s, nil
}

func (s PruneScreen) beginApply() (tea.Model, tea.Cmd) {
	s.phase = PhaseApply

	eng := s.eng
	root := s.rootPath
	folders := s.scan.Empty
	work := func() tea.Msg {
		result, applyErr := eng.DeleteEmpty(root, folders)

		return pruneApplyDoneMsg{result: result, err: applyErr}
	}

	return s, s.listenCmds(work)
}

func (s PruneScreen) handleApplyDone(msg pruneApplyDoneMsg) (tea.Model, tea.Cmd) {
	s.result = msg.result

	if msg.err != nil && !errors.Is(msg.err, engine.ErrCancelled) {
		s.failure = msg.err
		s.phase = PhaseApply + "_error"

		return s, nil
	}

	s.phase = PhaseDone

	return s, nil
}

// ============================================================================
// Rendering
// ============================================================================

func (s PruneScreen) viewInput() string {
	return shared.RenderLabel("Folder to scan:") + "\n" +
		s.root.View() + "\n" +
		s.renderFailure() + "\n" +
		shared.RenderDim("Tab to complete • Enter to scan • Ctrl+C to exit")
}

func (s PruneScreen) viewScan() string {
	return s.spin.View() + " Scanning for empty folder structures..." + "\n" +
		s.renderActivity() + "\n" +
		shared.RenderDim("Esc to cancel")
}

func (s PruneScreen) viewConfirm() string {
	var builder strings.Builder

	builder.WriteString(shared.RenderLabel("Empty folder structures found: "))
	builder.WriteString(fmt.Sprintf("%d\n\n", len(s.scan.Empty)))
	builder.WriteString(renderPathPreview(s.scan.Empty))
	builder.WriteString("\n")
	builder.WriteString(shared.RenderWarning("These folders will be deleted."))
	builder.WriteString("\n\n")
	builder.WriteString(shared.RenderDim("Enter to delete • Esc to go back"))

	return builder.String()
}

func (s PruneScreen) viewApply() string {
	status := s.eng.GetStatus()

	return s.spin.View() + fmt.Sprintf(" Deleting %d of %d folders...",
		status.ItemsProcessed, status.ItemsTotal) + "\n" +
		s.renderActivity() + "\n" +
		shared.RenderDim("Esc to cancel")
}

func (s PruneScreen) viewDone() string {
	var builder strings.Builder

	builder.WriteString(s.doneBanner())

	switch {
	case s.result != nil:
		builder.WriteString(shared.RenderSuccess(fmt.Sprintf("Deleted %s",
			shared.FormatCount(len(s.result.Deleted), "empty folder", "empty folders"))))
		builder.WriteString("\n")

		for _, skipped := range s.result.Skipped {
			builder.WriteString(shared.RenderWarning("  skipped: " + skipped.Path + " (" + skipped.Reason + ")"))
			builder.WriteString("\n")
		}

		builder.WriteString(renderErrorList(s.result.Errors))

	case s.scan != nil && len(s.scan.Empty) == 0:
		builder.WriteString(shared.RenderSuccess("No empty folder structures found."))
		builder.WriteString("\n")

	default:
		builder.WriteString(shared.RenderWarning("Nothing was changed."))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(shared.RenderDim("r to run again • Ctrl+C to exit"))

	return builder.String()
}

func (s PruneScreen) viewError() string {
	return s.renderFailure() + "\n" +
		shared.RenderDim("r to start over • Ctrl+C to exit")
}
