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

// CloneScreen duplicates a folder hierarchy to a new location, folders only.
type CloneScreen struct {
	opState
	source     pathField
	dest       pathField
	focusIndex int
	destPath   string
	scan       *engine.StructureScanResult
	result     *engine.CloneResult
	autoStart  bool
}

type cloneScanDoneMsg struct {
	result *engine.StructureScanResult
	err    error
}

type cloneApplyDoneMsg struct {
	result *engine.CloneResult
	err    error
}

// NewCloneScreen creates the clone tab.
func NewCloneScreen(deps Deps) CloneScreen {
	return CloneScreen{
		opState:   newOpState(deps),
		source:    newPathField("/path/to/original", deps.Config.SourcePath, true),
		dest:      newPathField("/path/to/skeleton", deps.Config.DestPath, false),
		autoStart: deps.Config.Tool == config.ToolClone && deps.Config.SourcePath != "",
	}
}

// Init implements tea.Model
func (s CloneScreen) Init() tea.Cmd {
	if s.autoStart {
		return tea.Batch(textinput.Blink, func() tea.Msg { return autoStartMsg{} })
	}

	return textinput.Blink
}

// Update implements tea.Model
func (s CloneScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case autoStartMsg:
		if s.autoStart && s.phase == PhaseInput {
			s.autoStart = false

			return s.beginScan()
		}

		return s, nil

	case tea.WindowSizeMsg:
		s.width = msg.Width
		inputWidth := max(msg.Width-inputWidthMargin, inputWidthMin)
		s.source = s.source.setWidth(inputWidth)
		s.dest = s.dest.setWidth(inputWidth)

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

	case cloneScanDoneMsg:
		return s.handleScanDone(msg)

	case cloneApplyDoneMsg:
		return s.handleApplyDone(msg)

	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	}

	return s, nil
}

// View implements tea.Model
func (s CloneScreen) View() string {
	header := s.renderHeader("Clone Folder Structure")

	switch s.phase {
	case PhaseInput:
		return header + s.viewInput()
	case PhaseScan:
		return header + s.spin.View() + " Scanning source structure..." + "\n" +
			s.renderActivity() + "\n" + shared.RenderDim("Esc to cancel")
	case PhaseConfirm:
		return header + s.viewConfirm()
	case PhaseApply:
		return header + s.viewApply()
	case PhaseDone:
		return header + s.viewDone()
	default:
		return header + s.renderFailure() + "\n" +
			shared.RenderDim("r to start over • Ctrl+C to exit")
	}
}

//nolint:cyclop // Key handling branches per phase
func (s CloneScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == shared.KeyCtrlC {
		s.cancel()

		return s, tea.Quit
	}

	switch s.phase {
	case PhaseInput:
		switch msg.Type {
		case tea.KeyEnter:
			if s.focusIndex == 0 {
				return s.moveFocus(1), nil
			}

			return s.beginScan()

		case tea.KeyDown:
			return s.moveFocus(1), nil

		case tea.KeyUp:
			return s.moveFocus(0), nil

		default:
		}

		var cmd tea.Cmd
		if s.focusIndex == 0 {
			s.source, cmd, _ = s.source.handleKey(msg)
		} else {
			s.dest, cmd, _ = s.dest.handleKey(msg)
		}

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

func (s CloneScreen) moveFocus(index int) CloneScreen {
	s.focusIndex = index

	if index == 0 {
		s.source = s.source.focus()
		s.dest = s.dest.blur()
	} else {
		s.source = s.source.blur()
		s.dest = s.dest.focus()
	}

	return s
}

func (s CloneScreen) beginScan() (tea.Model, tea.Cmd) {
	source := strings.TrimSpace(s.source.Value())
	dest := strings.TrimSpace(s.dest.Value())

	err := config.ValidateDir(source, "source")
	if err != nil {
		s.failure = err

		return s, nil
	}

	if dest == "" {
		s.failure = errors.New("destination path is required")

		return s, nil
	}

	s.destPath = dest
	s.startEngine()
	s.phase = PhaseScan
	s.scan = nil
	s.result = nil

	eng := s.eng
	work := func() tea.Msg {
		result, scanErr := eng.ScanStructure(source)

		return cloneScanDoneMsg{result: result, err: scanErr}
	}

	return s, s.listenCmds(work)
}

func (s CloneScreen) handleScanDone(msg cloneScanDoneMsg) (tea.Model, tea.Cmd) {
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

	if s.deps.Config.SkipConfirmation {
		return s.beginApply()
	}

	s.phase = PhaseConfirm

	return s, nil
}

func (s CloneScreen) beginApply() (tea.Model, tea.Cmd) {
	s.phase = PhaseApply

	eng := s.eng
	dest := s.destPath
	folders := s.scan.Folders
	work := func() tea.Msg {
		result, applyErr := eng.CloneStructure(dest, folders)

		return cloneApplyDoneMsg{result: result, err: applyErr}
	}

	return s, s.listenCmds(work)
}

func (s CloneScreen) handleApplyDone(msg cloneApplyDoneMsg) (tea.Model, tea.Cmd) {
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

func (s CloneScreen) viewInput() string {
	return shared.RenderLabel("Source folder:") + "\n" +
		s.source.View() + "\n\n" +
		shared.RenderLabel("Destination folder:") + "\n" +
		s.dest.View() + "\n" +
		s.renderFailure() + "\n" +
		shared.RenderDim("Tab to complete • ↑↓ to switch fields • Enter to scan • Ctrl+C to exit")
}

func (s CloneScreen) viewConfirm() string {
	var builder strings.Builder

	builder.WriteString(shared.RenderLabel("Folders to create: "))
	builder.WriteString(fmt.Sprintf("%d", len(s.scan.Folders)))
	builder.WriteString("\n")
	builder.WriteString(shared.RenderLabel("Files ignored: "))
	builder.WriteString(fmt.Sprintf("%d", s.scan.FilesSkipped))
	builder.WriteString("\n\n")
	builder.WriteString(renderPathPreview(s.scan.Folders))
	builder.WriteString("\n")
	builder.WriteString(shared.RenderLabel("Destination: "))
	builder.WriteString(s.destPath)
	builder.WriteString("\n\n")
	builder.WriteString(shared.RenderDim("Enter to create • Esc to go back"))

	return builder.String()
}

func (s CloneScreen) viewApply() string {
	status := s.eng.GetStatus()

	return s.spin.View() + fmt.Sprintf(" Creating %d of %d folders...",
		status.ItemsProcessed, status.ItemsTotal) + "\n" +
		s.renderActivity() + "\n" +
		shared.RenderDim("Esc to cancel")
}

func (s CloneScreen) viewDone() string {
	var builder strings.Builder

	builder.WriteString(s.doneBanner())

	if s.result != nil {
		builder.WriteString(shared.RenderSuccess(fmt.Sprintf("Created %s in %s",
			shared.FormatCount(len(s.result.Created), "folder", "folders"), s.destPath)))
		builder.WriteString("\n")

		if len(s.result.Existed) > 0 {
			builder.WriteString(shared.RenderDim(
				fmt.Sprintf("  %d already existed", len(s.result.Existed))))
			builder.WriteString("\n")
		}

		builder.WriteString(renderErrorList(s.result.Errors))
	} else {
		builder.WriteString(shared.RenderWarning("Nothing was changed."))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(shared.RenderDim("r to run again • Ctrl+C to exit"))

	return builder.String()
}
