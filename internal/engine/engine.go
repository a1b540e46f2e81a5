// Package engine implements the folder operations: pruning empty folder
// structures, cloning a folder hierarchy, counting files, and flattening
// nested files into the root. Every destructive operation is split into a
// read-only planning call and a separate apply call so callers can show a
// preview and ask for confirmation in between.
package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/joe/folder-manager/internal/session"
)

// Exported constants.
const (
	// ProgressEmitInterval is how many items are processed between progress events.
	ProgressEmitInterval = 50
)

// Exported variables.
var (
	ErrCancelled    = errors.New("operation cancelled")
	ErrNothingToDo  = errors.New("nothing to do")
	ErrRootEscape   = errors.New("path escapes the operation root")
	ErrRootNotFound = errors.New("root folder does not exist")
)

// Engine runs folder operations. One engine instance serves one run of the
// application; each operation call is independent.
type Engine struct {
	Status     *Status
	filter     *ExcludeFilter
	logger     *session.Logger
	emitter    EventEmitter
	cancelChan chan struct{}
	cancelOnce sync.Once
}

// Options configures a new Engine.
type Options struct {
	// Excludes are glob patterns matched against slash-separated relative
	// paths. Matching files and folders are invisible to every operation.
	Excludes []string
	// Logger receives a line-per-action record of everything the engine
	// does. Optional.
	Logger *session.Logger
}

// Status tracks live progress for UI polling. All fields are guarded by the
// engine and must be read through GetStatus.
type Status struct {
	mu sync.RWMutex

	CurrentPath    string
	FoldersScanned int
	FilesScanned   int
	ItemsProcessed int
	ItemsTotal     int
	StartTime      time.Time
	EndTime        time.Time
}

// New creates an engine with the given options.
func New(opts Options) *Engine {
	return &Engine{
		Status:     &Status{StartTime: time.Now()},
		filter:     NewExcludeFilter(opts.Excludes),
		logger:     opts.Logger,
		emitter:    nil,
		cancelChan: make(chan struct{}),
	}
}

// SetEventEmitter sets the event emitter for TUI communication.
// The emitter is optional - if nil, no events will be emitted.
func (e *Engine) SetEventEmitter(emitter EventEmitter) {
	e.emitter = emitter
}

// Cancel stops the running operation gracefully. Work completed before the
// cancellation is reported in the operation's partial result.
func (e *Engine) Cancel() {
	e.cancelOnce.Do(func() {
		close(e.cancelChan)
	})
}

// GetStatus returns a snapshot copy of the current progress.
func (e *Engine) GetStatus() Status {
	e.Status.mu.RLock()
	defer e.Status.mu.RUnlock()

	return Status{
		CurrentPath:    e.Status.CurrentPath,
		FoldersScanned: e.Status.FoldersScanned,
		FilesScanned:   e.Status.FilesScanned,
		ItemsProcessed: e.Status.ItemsProcessed,
		ItemsTotal:     e.Status.ItemsTotal,
		StartTime:      e.Status.StartTime,
		EndTime:        e.Status.EndTime,
	}
}

// emit sends an event if an emitter is configured.
// Safe to call even when emitter is nil.
func (e *Engine) emit(event Event) {
	if e.emitter != nil {
		e.emitter.Emit(event)
	}
}

// checkCancellation returns ErrCancelled if Cancel has been called.
func (e *Engine) checkCancellation() error {
	select {
	case <-e.cancelChan:
		return ErrCancelled
	default:
		return nil
	}
}

// beginOp opens a session log operation, or a no-op handle when no logger is
// configured.
func (e *Engine) beginOp(name string) *session.Operation {
	if e.logger == nil {
		return nil
	}

	return e.logger.Begin(name)
}

func opInfof(op *session.Operation, format string, args ...any) {
	if op != nil {
		op.Infof(format, args...)
	}
}

func opWarnf(op *session.Operation, format string, args ...any) {
	if op != nil {
		op.Warnf(format, args...)
	}
}

func opErrorf(op *session.Operation, format string, args ...any) {
	if op != nil {
		op.Errorf(format, args...)
	}
}

func opEnd(op *session.Operation) {
	if op != nil {
		op.End()
	}
}

// setCurrentPath updates the live status with the path being processed.
func (e *Engine) setCurrentPath(path string) {
	e.Status.mu.Lock()
	e.Status.CurrentPath = path
	e.Status.mu.Unlock()
}

// bumpScanned increments the scan counters.
func (e *Engine) bumpScanned(folders, files int) {
	e.Status.mu.Lock()
	e.Status.FoldersScanned += folders
	e.Status.FilesScanned += files
	e.Status.mu.Unlock()
}

// setApplyProgress updates the apply counters.
func (e *Engine) setApplyProgress(processed, total int) {
	e.Status.mu.Lock()
	e.Status.ItemsProcessed = processed
	e.Status.ItemsTotal = total
	e.Status.mu.Unlock()
}

// markDone records the end time of the last operation.
func (e *Engine) markDone() {
	e.Status.mu.Lock()
	e.Status.EndTime = time.Now()
	e.Status.mu.Unlock()
}
