package engine

// Event is the interface implemented by all engine events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// Scan phase events

// ScanStarted is emitted when a scan begins.
type ScanStarted struct {
	Kind string // "prune", "clone", "count", or "flatten"
	Root string
}

func (ScanStarted) isEvent() {}

// ScanProgress is emitted periodically during a scan.
type ScanProgress struct {
	Folders int
	Files   int
	Path    string
}

func (ScanProgress) isEvent() {}

// ScanComplete is emitted when a scan finishes.
type ScanComplete struct {
	Folders int
	Files   int
}

func (ScanComplete) isEvent() {}

// Apply phase events

// ApplyStarted is emitted when a mutation phase begins.
type ApplyStarted struct {
	Kind  string
	Total int
}

func (ApplyStarted) isEvent() {}

// ApplyProgress is emitted periodically while applying changes.
type ApplyProgress struct {
	Processed int
	Total     int
	Path      string
}

func (ApplyProgress) isEvent() {}

// ApplyComplete is emitted when a mutation phase finishes.
type ApplyComplete struct {
	Kind      string
	Succeeded int
	Failed    int
}

func (ApplyComplete) isEvent() {}

// Error events

// ErrorOccurred is emitted when an error occurs during any phase.
type ErrorOccurred struct {
	Phase string
	Err   error
}

func (ErrorOccurred) isEvent() {}
