package shared

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/folder-manager/internal/engine"
)

// EventBridgeBufferSize is sized so a burst of engine events never blocks
// the engine goroutine.
const EventBridgeBufferSize = 100

// EngineEventMsg wraps an engine.Event for use as a tea.Msg. Source
// identifies the bridge that produced it, so a model receiving broadcast
// messages can ignore events belonging to another model's operation.
type EngineEventMsg struct {
	Event  engine.Event
	Source *EventBridge
}

// EventBridge adapts engine events to bubble tea messages.
// It implements engine.EventEmitter and provides a channel for TUI consumption.
type EventBridge struct {
	eventChan chan tea.Msg
	closed    bool
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, EventBridgeBufferSize),
	}
}

// Emit implements engine.EventEmitter.
// It wraps the event in EngineEventMsg and sends to the channel.
func (b *EventBridge) Emit(event engine.Event) {
	if b.closed {
		return
	}

	// Non-blocking send - a full channel drops the event rather than
	// stalling the engine.
	select {
	case b.eventChan <- EngineEventMsg{Event: event, Source: b}:
	default:
	}
}

// ListenCmd returns a tea.Cmd that blocks until an event is received.
// Use this in Init() or after processing an event to continue listening.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.eventChan
		if !ok {
			return nil
		}

		return msg
	}
}

// Close closes the event channel.
// Call this when done with the bridge.
func (b *EventBridge) Close() {
	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
}
