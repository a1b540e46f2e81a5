//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package engine_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/internal/engine"
)

// buildTree creates dirs and files (with content) under root.
func buildTree(t *testing.T, root string, dirs []string, files map[string]string) {
	t.Helper()

	g := NewWithT(t)

	for _, dir := range dirs {
		g.Expect(os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o750)).To(Succeed())
	}

	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		g.Expect(os.MkdirAll(filepath.Dir(full), 0o750)).To(Succeed())
		g.Expect(os.WriteFile(full, []byte(content), 0o600)).To(Succeed())
	}
}

// recordingEmitter captures emitted events for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []engine.Event
}

func (r *recordingEmitter) Emit(event engine.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *recordingEmitter) all() []engine.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]engine.Event{}, r.events...)
}

func TestScanEmpty_MissingRoot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	eng := engine.New(engine.Options{})

	_, err := eng.ScanEmpty(filepath.Join(t.TempDir(), "nope"))
	g.Expect(err).To(MatchError(engine.ErrRootNotFound))
}

func TestCancelledEngineReturnsPartialResults(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root, []string{"a", "b"}, nil)

	eng := engine.New(engine.Options{})
	eng.Cancel()

	result, err := eng.DeleteEmpty(root, []string{"a", "b"})
	g.Expect(err).To(MatchError(engine.ErrCancelled))
	g.Expect(result).ToNot(BeNil())
	g.Expect(result.Deleted).To(BeEmpty())

	// Nothing was touched.
	_, statErr := os.Stat(filepath.Join(root, "a"))
	g.Expect(statErr).ShouldNot(HaveOccurred())
}

func TestScanEmitsLifecycleEvents(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root, []string{"empty"}, map[string]string{"keep.txt": "x"})

	emitter := &recordingEmitter{}
	eng := engine.New(engine.Options{})
	eng.SetEventEmitter(emitter)

	_, err := eng.ScanEmpty(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	events := emitter.all()
	g.Expect(events).ToNot(BeEmpty())
	g.Expect(events[0]).To(Equal(engine.ScanStarted{Kind: "prune", Root: root}))
	g.Expect(events[len(events)-1]).To(Equal(engine.ScanComplete{Folders: 1, Files: 1}))
}

func TestGetStatusReflectsScanCounts(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	buildTree(t, root, []string{"a", "b"}, map[string]string{"a/f.txt": "x"})

	eng := engine.New(engine.Options{})

	_, err := eng.ScanEmpty(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	status := eng.GetStatus()
	g.Expect(status.FoldersScanned).To(Equal(2))
	g.Expect(status.FilesScanned).To(Equal(1))
	g.Expect(status.EndTime.IsZero()).To(BeFalse())
}
