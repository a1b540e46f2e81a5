//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/engine"
)

func TestPlanFlatten_MarksConflicts(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root,
		[]string{"a", "b"},
		map[string]string{
			"notes.txt":   "at root already",
			"a/notes.txt": "collides with root",
			"a/only.txt":  "clean",
			"b/only.txt":  "collides with a/only.txt",
		})

	eng := engine.New(engine.Options{})

	plan, err := eng.PlanFlatten(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(plan.Moves).To(HaveLen(3))
	g.Expect(plan.Conflicts()).To(Equal(2))

	byPath := map[string]bool{}
	for _, move := range plan.Moves {
		byPath[move.RelPath] = move.Conflict
	}

	g.Expect(byPath[filepath.Join("a", "notes.txt")]).To(BeTrue())
	g.Expect(byPath[filepath.Join("a", "only.txt")]).To(BeFalse())
	g.Expect(byPath[filepath.Join("b", "only.txt")]).To(BeTrue())
}

func TestApplyFlatten_RenameMode(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root,
		[]string{"a/deep"},
		map[string]string{
			"notes.txt":        "root",
			"a/notes.txt":      "nested",
			"a/deep/clean.txt": "clean",
		})

	eng := engine.New(engine.Options{})

	plan, err := eng.PlanFlatten(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	result, err := eng.ApplyFlatten(plan, config.ConflictRename)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(result.Errors).To(BeEmpty())
	g.Expect(result.Skipped).To(BeEmpty())
	g.Expect(result.Moved).To(HaveLen(2))

	// The original root file is untouched; the nested one got a suffix.
	data, err := os.ReadFile(filepath.Join(root, "notes.txt"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("root"))

	data, err = os.ReadFile(filepath.Join(root, "notes (1).txt"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("nested"))

	_, err = os.Stat(filepath.Join(root, "clean.txt"))
	g.Expect(err).ShouldNot(HaveOccurred())

	// Emptied folders were removed, deepest-first.
	g.Expect(result.RemovedFolders).To(Equal([]string{
		filepath.Join("a", "deep"),
		"a",
	}))

	_, statErr := os.Stat(filepath.Join(root, "a"))
	g.Expect(os.IsNotExist(statErr)).To(BeTrue())
}

func TestApplyFlatten_SkipModeLeavesConflictsInPlace(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root,
		[]string{"a"},
		map[string]string{
			"notes.txt":   "root",
			"a/notes.txt": "nested",
		})

	eng := engine.New(engine.Options{})

	plan, err := eng.PlanFlatten(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	result, err := eng.ApplyFlatten(plan, config.ConflictSkip)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(result.Moved).To(BeEmpty())
	g.Expect(result.Skipped).To(HaveLen(1))
	g.Expect(result.Skipped[0].Reason).To(Equal("name taken"))

	// The skipped file stays put, so its folder is not removed.
	data, err := os.ReadFile(filepath.Join(root, "a", "notes.txt"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("nested"))
	g.Expect(result.RemovedFolders).To(BeEmpty())
}

func TestApplyFlatten_SkipsVanishedFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root, []string{"a"}, map[string]string{"a/gone.txt": "x"})

	eng := engine.New(engine.Options{})

	plan, err := eng.PlanFlatten(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(os.Remove(filepath.Join(root, "a", "gone.txt"))).To(Succeed())

	result, err := eng.ApplyFlatten(plan, config.ConflictRename)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(result.Moved).To(BeEmpty())
	g.Expect(result.Skipped).To(HaveLen(1))
	g.Expect(result.Skipped[0].Reason).To(Equal("vanished"))
}

func TestApplyFlatten_FilesAtRootStayPut(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root, nil, map[string]string{"only.txt": "x"})

	eng := engine.New(engine.Options{})

	plan, err := eng.PlanFlatten(root)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(plan.Moves).To(BeEmpty())

	result, err := eng.ApplyFlatten(plan, config.ConflictRename)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(result.Moved).To(BeEmpty())
	g.Expect(result.RemovedFolders).To(BeEmpty())
}
