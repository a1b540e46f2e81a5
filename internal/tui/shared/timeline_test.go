//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package shared_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/internal/tui/shared"
)

func TestRenderTimeline_ShowsAllPhases(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	timeline := shared.RenderTimeline("input")

	g.Expect(timeline).To(ContainSubstring("Input"))
	g.Expect(timeline).To(ContainSubstring("Scan"))
	g.Expect(timeline).To(ContainSubstring("Confirm"))
	g.Expect(timeline).To(ContainSubstring("Apply"))
	g.Expect(timeline).To(ContainSubstring("Done"))
}

func TestRenderTimeline_ActiveAndCompletedSymbols(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	timeline := shared.RenderTimeline("confirm")

	g.Expect(timeline).To(ContainSubstring(shared.ActiveSymbol() + " Confirm"))
	g.Expect(timeline).To(ContainSubstring(shared.SuccessSymbol() + " Input"))
	g.Expect(timeline).To(ContainSubstring(shared.SuccessSymbol() + " Scan"))
	g.Expect(timeline).To(ContainSubstring(shared.PendingSymbol() + " Apply"))
}

func TestRenderTimeline_DoneShowsAllComplete(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	timeline := shared.RenderTimeline("done")

	g.Expect(timeline).ToNot(ContainSubstring(shared.ActiveSymbol()))
	g.Expect(timeline).To(ContainSubstring(shared.SuccessSymbol() + " Done"))
}

func TestRenderTimeline_ErrorPhase(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	timeline := shared.RenderTimeline("scan_error")

	g.Expect(timeline).To(ContainSubstring(shared.ErrorSymbol() + " Scan"))
	g.Expect(timeline).To(ContainSubstring(shared.CancelledSymbol() + " Confirm"))
	g.Expect(timeline).To(ContainSubstring(shared.CancelledSymbol() + " Apply"))
}

func TestRenderTimeline_UnknownPhaseDefaultsToInput(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.RenderTimeline("bogus")).To(ContainSubstring(shared.ActiveSymbol() + " Input"))
	g.Expect(shared.RenderTimeline("choose")).To(ContainSubstring(shared.ActiveSymbol() + " Input"))
}
