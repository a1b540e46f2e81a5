//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package shared_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/internal/tui/shared"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.FormatBytes(0)).To(Equal("0 B"))
	g.Expect(shared.FormatBytes(512)).To(Equal("512 B"))
	g.Expect(shared.FormatBytes(1536)).To(Equal("1.5 KB"))
	g.Expect(shared.FormatBytes(5 * 1024 * 1024)).To(Equal("5.0 MB"))
	g.Expect(shared.FormatBytes(3 * 1024 * 1024 * 1024)).To(Equal("3.0 GB"))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.FormatDuration(5 * time.Second)).To(Equal("5s"))
	g.Expect(shared.FormatDuration(150 * time.Second)).To(Equal("2m 30s"))
	g.Expect(shared.FormatDuration(3725 * time.Second)).To(Equal("1h 2m 5s"))
}

func TestFormatCount(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.FormatCount(1, "folder", "folders")).To(Equal("1 folder"))
	g.Expect(shared.FormatCount(0, "folder", "folders")).To(Equal("0 folders"))
	g.Expect(shared.FormatCount(7, "file", "files")).To(Equal("7 files"))
}
