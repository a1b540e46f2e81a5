//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package session_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/internal/session"
)

func TestNew_CreatesTimestampedFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	logDir := filepath.Join(t.TempDir(), "logs")

	logger, err := session.New(logDir)
	g.Expect(err).ShouldNot(HaveOccurred())

	defer func() { g.Expect(logger.Close()).To(Succeed()) }()

	g.Expect(logger.Path()).To(HavePrefix(filepath.Join(logDir, "folder-manager_")))
	g.Expect(logger.Path()).To(HaveSuffix(".log"))

	_, err = os.Stat(logger.Path())
	g.Expect(err).ShouldNot(HaveOccurred())
}

func TestLogger_WritesFlatTextLines(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	logger, err := session.New(t.TempDir())
	g.Expect(err).ShouldNot(HaveOccurred())

	op := logger.Begin("prune scan")
	op.Infof("scanned %d folders", 42)
	op.Warnf("folder vanished: %s", "/tmp/gone")
	op.Errorf("delete failed: %s", "/tmp/busy")
	op.End()

	g.Expect(logger.Close()).To(Succeed())

	data, err := os.ReadFile(logger.Path())
	g.Expect(err).ShouldNot(HaveOccurred())

	content := string(data)
	g.Expect(content).To(ContainSubstring("session started"))
	g.Expect(content).To(ContainSubstring("operation started: prune scan"))
	g.Expect(content).To(ContainSubstring("INFO op=" + op.ID() + " scanned 42 folders"))
	g.Expect(content).To(ContainSubstring("WARN op=" + op.ID() + " folder vanished: /tmp/gone"))
	g.Expect(content).To(ContainSubstring("ERROR op=" + op.ID() + " delete failed: /tmp/busy"))
	g.Expect(content).To(ContainSubstring("operation finished: prune scan"))
	g.Expect(content).To(ContainSubstring("session ended"))
}

func TestLogger_OperationIDsAreShortAndDistinct(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	logger, err := session.New(t.TempDir())
	g.Expect(err).ShouldNot(HaveOccurred())

	defer func() { g.Expect(logger.Close()).To(Succeed()) }()

	first := logger.Begin("scan")
	second := logger.Begin("apply")

	g.Expect(first.ID()).To(HaveLen(8))
	g.Expect(second.ID()).To(HaveLen(8))
	g.Expect(first.ID()).ToNot(Equal(second.ID()))
}

func TestLogger_LogAfterCloseIsSilentlyDropped(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	logger, err := session.New(t.TempDir())
	g.Expect(err).ShouldNot(HaveOccurred())

	op := logger.Begin("scan")
	g.Expect(logger.Close()).To(Succeed())

	// Must not panic or write.
	op.Infof("too late")
	logger.Info("also too late")
	g.Expect(logger.Close()).To(Succeed(), "double close is harmless")

	data, err := os.ReadFile(logger.Path())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(strings.Contains(string(data), "too late")).To(BeFalse())
}
