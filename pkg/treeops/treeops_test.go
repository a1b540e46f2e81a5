//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package treeops_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/pkg/treeops"
)

func TestIsDirEmpty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	g.Expect(treeops.IsDirEmpty(dir)).To(BeTrue())

	err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o600)
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(treeops.IsDirEmpty(dir)).To(BeFalse())
}

func TestIsDirEmpty_MissingPathIsNotEmpty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(treeops.IsDirEmpty(filepath.Join(t.TempDir(), "nope"))).To(BeFalse())
}

func TestUniqueName_NoCollision(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()

	got, err := treeops.UniqueName(dir, "notes.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(got).To(Equal(filepath.Join(dir, "notes.txt")))
}

func TestUniqueName_AppendsCounterBeforeExtension(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	g.Expect(os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "notes (1).txt"), nil, 0o600)).To(Succeed())

	got, err := treeops.UniqueName(dir, "notes.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(got).To(Equal(filepath.Join(dir, "notes (2).txt")))
}

func TestUniqueName_NoExtension(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	g.Expect(os.WriteFile(filepath.Join(dir, "README"), nil, 0o600)).To(Succeed())

	got, err := treeops.UniqueName(dir, "README")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(got).To(Equal(filepath.Join(dir, "README (1)")))
}

func TestMoveFile_SameDevice(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "sub", "a.txt")
	g.Expect(os.MkdirAll(filepath.Dir(src), 0o750)).To(Succeed())
	g.Expect(os.WriteFile(src, []byte("payload"), 0o600)).To(Succeed())

	dst := filepath.Join(dir, "a.txt")
	g.Expect(treeops.MoveFile(src, dst)).To(Succeed())

	data, err := os.ReadFile(dst)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("payload"))

	_, err = os.Stat(src)
	g.Expect(os.IsNotExist(err)).To(BeTrue(), "source should be gone after move")
}

func TestMoveFile_CreatesDestinationDir(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	g.Expect(os.WriteFile(src, []byte("x"), 0o600)).To(Succeed())

	dst := filepath.Join(dir, "nested", "deeper", "a.txt")
	g.Expect(treeops.MoveFile(src, dst)).To(Succeed())

	_, err := os.Stat(dst)
	g.Expect(err).ShouldNot(HaveOccurred())
}

func TestSortShallowFirst(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	paths := []string{
		filepath.Join("a", "b", "c"),
		"z",
		filepath.Join("a", "b"),
		"a",
	}

	treeops.SortShallowFirst(paths)

	g.Expect(paths).To(Equal([]string{
		"a",
		"z",
		filepath.Join("a", "b"),
		filepath.Join("a", "b", "c"),
	}))
}

func TestSortDeepestFirst(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	paths := []string{
		"a",
		filepath.Join("a", "b", "c"),
		filepath.Join("a", "b"),
	}

	treeops.SortDeepestFirst(paths)

	g.Expect(paths).To(Equal([]string{
		filepath.Join("a", "b", "c"),
		filepath.Join("a", "b"),
		"a",
	}))
}
