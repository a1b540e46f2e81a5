//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package screens_test

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/tui/screens"
)

func testDeps() screens.Deps {
	return screens.Deps{Config: &config.Config{Conflict: config.ConflictRename}}
}

func pressEnter(model tea.Model) tea.Model {
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	return updated
}

func pressRune(model tea.Model, r rune) tea.Model {
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})

	return updated
}

func typeText(model tea.Model, text string) tea.Model {
	for _, r := range text {
		model = pressRune(model, r)
	}

	return model
}

func TestPruneScreen_InputView(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	screen := screens.NewPruneScreen(testDeps())

	view := screen.View()
	g.Expect(view).To(ContainSubstring("Prune Empty Folders"))
	g.Expect(view).To(ContainSubstring("Folder to scan:"))
	g.Expect(view).To(ContainSubstring("Input"))
}

func TestPruneScreen_EnterWithMissingPathShowsError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var model tea.Model = screens.NewPruneScreen(testDeps())
	model = typeText(model, filepath.Join(t.TempDir(), "missing"))
	model = pressEnter(model)

	g.Expect(model.View()).To(ContainSubstring("does not exist"))
}

func TestPruneScreen_EnterWithValidPathStartsScan(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var model tea.Model = screens.NewPruneScreen(testDeps())
	model = typeText(model, t.TempDir())

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	g.Expect(cmd).ToNot(BeNil())
	g.Expect(updated.View()).To(ContainSubstring("Scanning"))
}

func TestCloneScreen_EnterOnSourceMovesToDestination(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var model tea.Model = screens.NewCloneScreen(testDeps())
	model = typeText(model, t.TempDir())
	model = pressEnter(model)

	// Still on input; destination is required before scanning.
	model = pressEnter(model)
	g.Expect(model.View()).To(ContainSubstring("destination path is required"))
}

func TestCloneScreen_InputView(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	screen := screens.NewCloneScreen(testDeps())

	view := screen.View()
	g.Expect(view).To(ContainSubstring("Clone Folder Structure"))
	g.Expect(view).To(ContainSubstring("Source folder:"))
	g.Expect(view).To(ContainSubstring("Destination folder:"))
}

func TestToolsScreen_ChooseFlow(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var model tea.Model = screens.NewToolsScreen(testDeps())
	model = typeText(model, t.TempDir())
	model = pressEnter(model)

	view := model.View()
	g.Expect(view).To(ContainSubstring("count files"))
	g.Expect(view).To(ContainSubstring("flatten all nested files"))

	// 'c' starts the count scan.
	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	g.Expect(cmd).ToNot(BeNil())
	g.Expect(updated.View()).To(ContainSubstring("Counting files"))
}

func TestToolsScreen_EscFromChooseReturnsToInput(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var model tea.Model = screens.NewToolsScreen(testDeps())
	model = typeText(model, t.TempDir())
	model = pressEnter(model)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	g.Expect(model.View()).To(ContainSubstring("Root folder:"))
}

func TestScreens_CtrlCQuits(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var model tea.Model = screens.NewPruneScreen(testDeps())

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	g.Expect(cmd).ToNot(BeNil())
	g.Expect(cmd()).To(Equal(tea.Quit()))
}
