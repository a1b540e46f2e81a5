//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package engine_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/internal/engine"
)

func TestCountFiles_RootOnlyVersusRecursive(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root,
		[]string{"sub/deeper", "empty"},
		map[string]string{
			"a.txt":            "12345",
			"b.JPG":            "123",
			"sub/c.txt":        "12",
			"sub/deeper/d.txt": "1",
			"sub/deeper/e":     "1",
		})

	eng := engine.New(engine.Options{})

	result, err := eng.CountFiles(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(result.RootOnly).To(Equal(2))
	g.Expect(result.Recursive).To(Equal(5))
	g.Expect(result.Folders).To(Equal(3))
	g.Expect(result.TotalBytes).To(Equal(int64(12)))
	g.Expect(result.ByExtension).To(Equal(map[string]int{
		".txt":                3,
		".jpg":                1,
		engine.NoExtensionKey: 1,
	}))
}

func TestCountFiles_EmptyRoot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	eng := engine.New(engine.Options{})

	result, err := eng.CountFiles(t.TempDir())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(result.RootOnly).To(Equal(0))
	g.Expect(result.Recursive).To(Equal(0))
	g.Expect(result.Folders).To(Equal(0))
	g.Expect(result.ByExtension).To(BeEmpty())
}

func TestCountFiles_HonorsExcludes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root, nil, map[string]string{
		"keep.txt":  "x",
		"skip.tmp":  "x",
		"also.tmp":  "x",
	})

	eng := engine.New(engine.Options{Excludes: []string{"*.tmp"}})

	result, err := eng.CountFiles(root)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(result.Recursive).To(Equal(1))
	g.Expect(result.RootOnly).To(Equal(1))
}
