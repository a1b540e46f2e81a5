//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package errdecor_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/pkg/errdecor"
)

func TestDecorate_Classification(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tests := []struct {
		msg      string
		expected errdecor.Category
	}{
		{"open /etc/shadow: permission denied", errdecor.CategoryPermission},
		{"stat /gone/dir: no such file or directory", errdecor.CategoryPath},
		{"remove /tmp/x: directory not empty", errdecor.CategoryDelete},
		{"rename /a /b: invalid cross-device link", errdecor.CategoryMove},
		{"write /big: no space left on device", errdecor.CategoryDiskSpace},
		{"something inexplicable happened", errdecor.CategoryUnknown},
	}

	for _, tt := range tests {
		decorated := errdecor.Decorate(errors.New(tt.msg), "")

		var de errdecor.DecoratedError
		g.Expect(errors.As(decorated, &de)).To(BeTrue())
		g.Expect(de.Category()).To(Equal(tt.expected), tt.msg)
		g.Expect(de.Suggestions()).ToNot(BeEmpty())
	}
}

func TestDecorate_ExtractsPathFromMessage(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	decorated := errdecor.Decorate(errors.New("remove /home/user/old: directory not empty"), "")

	var de errdecor.DecoratedError
	g.Expect(errors.As(decorated, &de)).To(BeTrue())
	g.Expect(de.AffectedPath()).To(Equal("/home/user/old"))
}

func TestDecorate_ExplicitPathWins(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	decorated := errdecor.Decorate(errors.New("remove /a: directory not empty"), "/explicit")

	var de errdecor.DecoratedError
	g.Expect(errors.As(decorated, &de)).To(BeTrue())
	g.Expect(de.AffectedPath()).To(Equal("/explicit"))
}

func TestDecorate_AlreadyDecoratedPassesThrough(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	original := errdecor.NewDecoratedError("boom", errdecor.CategoryDelete, []string{"rescan"}, "/p")
	decorated := errdecor.Decorate(original, "/other")

	g.Expect(decorated).To(BeIdenticalTo(original))
}

func TestFormatSuggestions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	err := errdecor.NewDecoratedError("boom", errdecor.CategoryUnknown, []string{"first", "second"}, "")

	formatted := errdecor.FormatSuggestions(err)
	g.Expect(formatted).To(Equal("  • first\n  • second"))
}

func TestFormatSuggestions_UndecoratedError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(errdecor.FormatSuggestions(errors.New("plain"))).To(Equal(""))
	g.Expect(errdecor.FormatSuggestions(nil)).To(Equal(""))
}
