// Package tui implements the interactive terminal interface: three tabs for
// pruning empty folders, cloning a folder structure, and the root-level
// tools, each driving the engine through a scan/confirm/apply cycle.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/session"
	"github.com/joe/folder-manager/internal/tui/screens"
	"github.com/joe/folder-manager/internal/tui/shared"
)

// Tab indices.
const (
	TabPrune = iota
	TabClone
	TabTools
	tabCount
)

// KeyNextTab cycles to the next tab.
const KeyNextTab = "ctrl+t"

// AppModel is the top-level model holding the three tool tabs.
type AppModel struct {
	config    *config.Config
	tabs      [tabCount]tea.Model
	activeTab int
	logPath   string
	width     int
	height    int
}

// NewAppModel creates the app with all tabs, selecting the one matching the
// tool chosen on the command line.
func NewAppModel(cfg *config.Config, logger *session.Logger) AppModel {
	deps := screens.Deps{Config: cfg, Logger: logger}

	app := AppModel{
		config: cfg,
		tabs: [tabCount]tea.Model{
			screens.NewPruneScreen(deps),
			screens.NewCloneScreen(deps),
			screens.NewToolsScreen(deps),
		},
	}

	if logger != nil {
		app.logPath = logger.Path()
	}

	switch cfg.Tool {
	case config.ToolClone:
		app.activeTab = TabClone
	case config.ToolCount, config.ToolFlatten:
		app.activeTab = TabTools
	case config.ToolNone, config.ToolPrune:
		app.activeTab = TabPrune
	}

	return app
}

// ActiveTab returns the selected tab index (for testing)
func (a AppModel) ActiveTab() int {
	return a.activeTab
}

// LogPath returns the session log path (for testing)
func (a AppModel) LogPath() string {
	return a.logPath
}

// Init implements tea.Model
func (a AppModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, tabCount)
	for _, tab := range a.tabs {
		cmds = append(cmds, tab.Init())
	}

	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (a AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Every tab needs to know the size.
		return a, a.broadcast(msg)

	case tea.KeyMsg:
		if msg.String() == KeyNextTab {
			a.activeTab = (a.activeTab + 1) % tabCount

			return a, nil
		}

		// Keys go to the active tab only.
		var cmd tea.Cmd
		a.tabs[a.activeTab], cmd = a.tabs[a.activeTab].Update(msg)

		return a, cmd

	default:
		// Engine events and completion messages belong to whichever tab
		// started the operation; it may not be the visible one.
		return a, a.broadcast(msg)
	}
}

// View implements tea.Model
func (a AppModel) View() string {
	return a.renderTabBar() + "\n\n" +
		a.tabs[a.activeTab].View() + "\n\n" +
		a.renderFooter()
}

// broadcast delivers a message to every tab and batches their commands.
func (a *AppModel) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, tabCount)

	for i := range a.tabs {
		var cmd tea.Cmd
		a.tabs[i], cmd = a.tabs[i].Update(msg)
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

func (a AppModel) renderTabBar() string {
	names := [tabCount]string{"Prune Empty", "Clone Structure", "Root Tools"}
	parts := make([]string, 0, tabCount)

	for i, name := range names {
		if i == a.activeTab {
			parts = append(parts, shared.TabActiveStyle().Render("["+name+"]"))
		} else {
			parts = append(parts, shared.TabInactiveStyle().Render(" "+name+" "))
		}
	}

	return strings.Join(parts, " ")
}

func (a AppModel) renderFooter() string {
	footer := shared.RenderDim("Ctrl+T to switch tools")
	if a.logPath != "" {
		footer += shared.RenderDim("  •  log: " + a.logPath)
	}

	return footer
}
