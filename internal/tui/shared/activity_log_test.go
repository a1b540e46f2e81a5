//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package shared_test

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/internal/tui/shared"
)

func TestRenderActivityLog_EmptyEntries(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.RenderActivityLog("", nil, 0)).To(Equal(""))
	g.Expect(shared.RenderActivityLog("Activity", nil, 0)).To(ContainSubstring("Activity"))
}

func TestRenderActivityLog_ChronologicalOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rendered := shared.RenderActivityLog("", []string{"first", "second", "third"}, 0)

	g.Expect(strings.Index(rendered, "first")).To(BeNumerically("<", strings.Index(rendered, "second")))
	g.Expect(strings.Index(rendered, "second")).To(BeNumerically("<", strings.Index(rendered, "third")))
}

func TestRenderActivityLog_LimitsToMostRecent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	entries := []string{"one", "two", "three", "four", "five"}
	rendered := shared.RenderActivityLog("", entries, 2)

	g.Expect(rendered).ToNot(ContainSubstring("one"))
	g.Expect(rendered).ToNot(ContainSubstring("three"))
	g.Expect(rendered).To(ContainSubstring("four"))
	g.Expect(rendered).To(ContainSubstring("five"))
}
