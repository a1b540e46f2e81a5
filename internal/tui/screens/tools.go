package screens

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/engine"
	"github.com/joe/folder-manager/internal/tui/shared"
)

// phaseChoose is the tool-selection step between path entry and scanning.
// It renders under the Input timeline phase.
const phaseChoose = "choose"

// extensionDisplayLimit caps the per-extension rows in the count view.
const extensionDisplayLimit = 8

// ToolsScreen bundles the root-level tools: counting files and flattening
// nested files into the root.
type ToolsScreen struct {
	opState
	root     pathField
	rootPath string
	mode     string // "count" or "flatten"
	count    *engine.CountResult
	plan     *engine.FlattenPlan
	result   *engine.FlattenResult
	auto     config.Tool
}

type countDoneMsg struct {
	result *engine.CountResult
	err    error
}

type flattenPlanDoneMsg struct {
	plan *engine.FlattenPlan
	err  error
}

type flattenApplyDoneMsg struct {
	result *engine.FlattenResult
	err    error
}

// NewToolsScreen creates the root tools tab.
func NewToolsScreen(deps Deps) ToolsScreen {
	auto := config.ToolNone
	if deps.Config.Tool == config.ToolCount || deps.Config.Tool == config.ToolFlatten {
		if deps.Config.Path != "" {
			auto = deps.Config.Tool
		}
	}

	return ToolsScreen{
		opState: newOpState(deps),
		root:    newPathField("/path/to/root", deps.Config.Path, true),
		auto:    auto,
	}
}

// Init implements tea.Model
func (s ToolsScreen) Init() tea.Cmd {
	if s.auto != config.ToolNone {
		return tea.Batch(textinput.Blink, func() tea.Msg { return autoStartMsg{} })
	}

	return textinput.Blink
}

// Update implements tea.Model
func (s ToolsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case autoStartMsg:
		if s.auto == config.ToolNone || s.phase != PhaseInput {
			return s, nil
		}

		tool := s.auto
		s.auto = config.ToolNone

		if tool == config.ToolCount {
			return s.beginCount()
		}

		return s.beginFlattenPlan()

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

	case countDoneMsg:
		return s.handleCountDone(msg)

	case flattenPlanDoneMsg:
		return s.handlePlanDone(msg)

	case flattenApplyDoneMsg:
		return s.handleApplyDone(msg)

	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	}

	return s, nil
}

// View implements tea.Model
func (s ToolsScreen) View() string {
	header := s.renderHeader("Root Tools")

	switch s.phase {
	case PhaseInput:
		return header + s.viewInput()
	case phaseChoose:
		return header + s.viewChoose()
	case PhaseScan:
		return header + s.viewScan()
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
func (s ToolsScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == shared.KeyCtrlC {
		s.cancel()

		return s, tea.Quit
	}

	switch s.phase {
	case PhaseInput:
		if msg.Type == tea.KeyEnter {
			root := strings.TrimSpace(s.root.Value())

			err := config.ValidateDir(root, "root")
			if err != nil {
				s.failure = err

				return s, nil
			}

			s.rootPath = root
			s.failure = nil
			s.phase = phaseChoose

			return s, nil
		}

		var cmd tea.Cmd
		s.root, cmd, _ = s.root.handleKey(msg)

		return s, cmd

	case phaseChoose:
		switch msg.String() {
		case "c":
			return s.beginCount()
		case "f":
			return s.beginFlattenPlan()
		}

		if msg.Type == tea.KeyEsc {
			s.phase = PhaseInput
		}

		return s, nil

	case PhaseScan, PhaseApply:
		if msg.Type == tea.KeyEsc {
			s.cancel()
		}

		return s, nil

	case PhaseConfirm:
		switch msg.Type {
		case tea.KeyEnter:
			return s.beginFlattenApply()
		case tea.KeyEsc:
			s.phase = phaseChoose

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

func (s ToolsScreen) beginCount() (tea.Model, tea.Cmd) {
	if s.rootPath == "" {
		s.rootPath = strings.TrimSpace(s.root.Value())
	}

	err := config.ValidateDir(s.rootPath, "root")
	if err != nil {
		s.failure = err
		s.phase = PhaseInput

		return s, nil
	}

	s.mode = "count"
	s.startEngine()
	s.phase = PhaseScan
	s.count = nil

	eng := s.eng
	root := s.rootPath
	work := func() tea.Msg {
		result, countErr := eng.CountFiles(root)

		return countDoneMsg{result: result, err: countErr}
	}

	return s, s.listenCmds(work)
}

func (s ToolsScreen) beginFlattenPlan() (tea.Model, tea.Cmd) {
	if s.rootPath == "" {
		s.rootPath = strings.TrimSpace(s.root.Value())
	}

	err := config.ValidateDir(s.rootPath, "root")
	if err != nil {
		s.failure = err
		s.phase = PhaseInput

		return s, nil
	}

	s.mode = "flatten"
	s.startEngine()
	s.phase = PhaseScan
	s.plan = nil
	s.result = nil

	eng := s.eng
	root := s.rootPath
	work := func() tea.Msg {
		plan, planErr := eng.PlanFlatten(root)

		return flattenPlanDoneMsg{plan: plan, err: planErr}
	}

	return s, s.listenCmds(work)
}

func (s ToolsScreen) handleCountDone(msg countDoneMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, engine.ErrCancelled) {
		s.phase = PhaseDone

		return s, nil
	}

	if msg.err != nil {
		s.failure = msg.err
		s.phase = PhaseScan + "_error"

		return s, nil
	}

	s.count = msg.result
	s.phase = PhaseDone

	return s, nil
}

func (s ToolsScreen) handlePlanDone(msg flattenPlanDoneMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, engine.ErrCancelled) {
		s.phase = PhaseDone

		return s, nil
	}

	if msg.err != nil {
		s.failure = msg.err
		s.phase = PhaseScan + "_error"

		return s, nil
	}

	s.plan = msg.plan

	if len(s.plan.Moves) == 0 {
		s.phase = PhaseDone

		return s, nil
	}

	if s.deps.Config.SkipConfirmation {
		return s.beginFlattenApply()
	}

	s.phase = PhaseConfirm

	return s, nil
}

func (s ToolsScreen) beginFlattenApply() (tea.Model, tea.Cmd) {
	s.phase = PhaseApply

	eng := s.eng
	plan := s.plan
	mode := s.deps.Config.Conflict
	work := func() tea.Msg {
		result, applyErr := eng.ApplyFlatten(plan, mode)

		return flattenApplyDoneMsg{result: result, err: applyErr}
	}

	return s, s.listenCmds(work)
}

func (s ToolsScreen) handleApplyDone(msg flattenApplyDoneMsg) (tea.Model, tea.Cmd) {
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

func (s ToolsScreen) viewInput() string {
	return shared.RenderLabel("Root folder:") + "\n" +
		s.root.View() + "\n" +
		s.renderFailure() + "\n" +
		shared.RenderDim("Tab to complete • Enter to choose a tool • Ctrl+C to exit")
}

func (s ToolsScreen) viewChoose() string {
	return shared.RenderLabel("Root: ") + s.rootPath + "\n\n" +
		"  c  count files (root level and recursive)\n" +
		"  f  flatten all nested files into the root\n\n" +
		shared.RenderDim("c or f to choose • Esc to go back")
}

func (s ToolsScreen) viewScan() string {
	label := " Counting files..."
	if s.mode == "flatten" {
		label = " Planning the flatten..."
	}

	return s.spin.View() + label + "\n" +
		s.renderActivity() + "\n" +
		shared.RenderDim("Esc to cancel")
}

func (s ToolsScreen) viewConfirm() string {
	var builder strings.Builder

	builder.WriteString(shared.RenderLabel("Files to move to root: "))
	builder.WriteString(fmt.Sprintf("%d\n", len(s.plan.Moves)))

	conflicts := s.plan.Conflicts()
	if conflicts > 0 {
		builder.WriteString(shared.RenderWarning(fmt.Sprintf("Name conflicts: %d (%s)",
			conflicts, conflictModeHint(s.deps.Config.Conflict))))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")

	preview := make([]string, 0, len(s.plan.Moves))
	for _, move := range s.plan.Moves {
		preview = append(preview, move.RelPath)
	}

	builder.WriteString(renderPathPreview(preview))
	builder.WriteString("\n")
	builder.WriteString(shared.RenderDim("Enter to flatten • Esc to go back"))

	return builder.String()
}

func (s ToolsScreen) viewApply() string {
	status := s.eng.GetStatus()

	return s.spin.View() + fmt.Sprintf(" Moving %d of %d files...",
		status.ItemsProcessed, status.ItemsTotal) + "\n" +
		s.renderActivity() + "\n" +
		shared.RenderDim("Esc to cancel")
}

func (s ToolsScreen) viewDone() string {
	var builder strings.Builder

	builder.WriteString(s.doneBanner())

	switch {
	case s.mode == "count" && s.count != nil:
		builder.WriteString(s.renderCount())
	case s.mode == "flatten" && s.result != nil:
		builder.WriteString(s.renderFlattenResult())
	case s.mode == "flatten" && s.plan != nil && len(s.plan.Moves) == 0:
		builder.WriteString(shared.RenderSuccess("All files are already at the root."))
		builder.WriteString("\n")
	default:
		builder.WriteString(shared.RenderWarning("Nothing was changed."))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(shared.RenderDim("r to run again • Ctrl+C to exit"))

	return builder.String()
}

func (s ToolsScreen) renderCount() string {
	var builder strings.Builder

	builder.WriteString(shared.RenderLabel("Files at root level: "))
	builder.WriteString(fmt.Sprintf("%d\n", s.count.RootOnly))
	builder.WriteString(shared.RenderLabel("Files in all subfolders: "))
	builder.WriteString(fmt.Sprintf("%d\n", s.count.Recursive))
	builder.WriteString(shared.RenderLabel("Folders: "))
	builder.WriteString(fmt.Sprintf("%d\n", s.count.Folders))
	builder.WriteString(shared.RenderLabel("Total size: "))
	builder.WriteString(shared.FormatBytes(s.count.TotalBytes))
	builder.WriteString("\n")

	if len(s.count.ByExtension) > 0 {
		builder.WriteString("\n")
		builder.WriteString(shared.RenderLabel("By extension:"))
		builder.WriteString("\n")

		for _, line := range topExtensions(s.count.ByExtension, extensionDisplayLimit) {
			builder.WriteString("  " + line + "\n")
		}
	}

	builder.WriteString(renderErrorList(s.count.Errors))

	return builder.String()
}

func (s ToolsScreen) renderFlattenResult() string {
	var builder strings.Builder

	builder.WriteString(shared.RenderSuccess(fmt.Sprintf("Moved %s to the root",
		shared.FormatCount(len(s.result.Moved), "file", "files"))))
	builder.WriteString("\n")

	if len(s.result.Skipped) > 0 {
		builder.WriteString(shared.RenderWarning(
			fmt.Sprintf("  %d skipped", len(s.result.Skipped))))
		builder.WriteString("\n")
	}

	if len(s.result.RemovedFolders) > 0 {
		builder.WriteString(shared.RenderDim(
			fmt.Sprintf("  %d emptied folders removed", len(s.result.RemovedFolders))))
		builder.WriteString("\n")
	}

	builder.WriteString(renderErrorList(s.result.Errors))

	return builder.String()
}

// topExtensions formats the extension counts, most frequent first.
func topExtensions(byExt map[string]int, limit int) []string {
	type extCount struct {
		ext   string
		count int
	}

	counts := make([]extCount, 0, len(byExt))
	for ext, count := range byExt {
		counts = append(counts, extCount{ext: ext, count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}

		return counts[i].ext < counts[j].ext
	})

	if len(counts) > limit {
		counts = counts[:limit]
	}

	lines := make([]string, 0, len(counts))
	for _, entry := range counts {
		lines = append(lines, fmt.Sprintf("%-12s %d", entry.ext, entry.count))
	}

	return lines
}

func conflictModeHint(mode config.ConflictMode) string {
	if mode == config.ConflictSkip {
		return "will be left in place"
	}

	return "will be renamed"
}
