//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package shared_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/folder-manager/internal/engine"
	"github.com/joe/folder-manager/internal/tui/shared"
)

func TestEventBridge_DeliversEvents(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	bridge.Emit(engine.ScanStarted{Kind: "prune", Root: "/tmp"})

	msg := bridge.ListenCmd()()
	eventMsg, ok := msg.(shared.EngineEventMsg)
	g.Expect(ok).To(BeTrue())
	g.Expect(eventMsg.Event).To(Equal(engine.ScanStarted{Kind: "prune", Root: "/tmp"}))
	g.Expect(eventMsg.Source).To(BeIdenticalTo(bridge))
}

func TestEventBridge_EmitAfterCloseIsIgnored(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	bridge.Close()

	// Must not panic on the closed channel.
	bridge.Emit(engine.ScanComplete{})

	g.Expect(bridge.ListenCmd()()).To(BeNil())
}

func TestEventBridge_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	for i := 0; i < shared.EventBridgeBufferSize+10; i++ {
		bridge.Emit(engine.ScanProgress{Files: i})
	}

	// The first buffered event is still the first one emitted.
	msg := bridge.ListenCmd()()
	eventMsg, ok := msg.(shared.EngineEventMsg)
	g.Expect(ok).To(BeTrue())
	g.Expect(eventMsg.Event).To(Equal(engine.ScanProgress{Files: 0}))
}
