// Package session writes the per-run log file. Every run of the application
// appends to a single timestamped file so a user can reconstruct exactly
// which folders were scanned, deleted, created, or moved.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Exported constants.
const (
	// DefaultLogDir is used when no log directory is configured.
	DefaultLogDir = "logs"
	// LogFilePermissions restricts log files to the owning user.
	LogFilePermissions = 0o600
	// LogDirPermissions restricts the log directory to the owning user.
	LogDirPermissions = 0o750
)

// Level is the severity of a log line.
type Level string

// Log levels, in increasing severity.
const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger appends flat text lines to the session log file. It is safe for
// concurrent use.
type Logger struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Operation tags a group of log lines with a short shared identifier so the
// lines of one scan or apply can be picked out of an interleaved log.
type Operation struct {
	logger *Logger
	id     string
	name   string
}

// New creates the log directory if needed and opens a fresh timestamped log
// file inside it.
func New(logDir string) (*Logger, error) {
	if logDir == "" {
		logDir = DefaultLogDir
	}

	err := os.MkdirAll(logDir, LogDirPermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	filename := fmt.Sprintf("folder-manager_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join(logDir, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermissions) // #nosec G304 -- path is built from the configured log directory
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	logger := &Logger{file: file, path: path}
	logger.write(LevelInfo, "", "session started")

	return logger, nil
}

// Path returns the location of the session log file.
func (l *Logger) Path() string {
	return l.path
}

// Begin starts a named operation and returns a handle whose log lines all
// carry the same short id.
func (l *Logger) Begin(name string) *Operation {
	op := &Operation{
		logger: l,
		id:     uuid.NewString()[:8],
		name:   name,
	}

	op.Infof("operation started: %s", name)

	return op
}

// Info logs an informational line not tied to any operation.
func (l *Logger) Info(message string) {
	l.write(LevelInfo, "", message)
}

// Close writes the closing line and releases the log file.
func (l *Logger) Close() error {
	l.write(LevelInfo, "", "session ended")

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file = nil

	if err != nil {
		return fmt.Errorf("failed to close log file %s: %w", l.path, err)
	}

	return nil
}

// write appends one formatted line. Logging failures are swallowed: the log
// must never take down the operation it is describing.
func (l *Logger) write(level Level, opID, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	var line string
	if opID == "" {
		line = fmt.Sprintf("%s %s %s\n", timestamp, level, message)
	} else {
		line = fmt.Sprintf("%s %s op=%s %s\n", timestamp, level, opID, message)
	}

	_, _ = l.file.WriteString(line)
}

// ID returns the operation's short identifier.
func (op *Operation) ID() string {
	return op.id
}

// Infof logs an informational line for this operation.
func (op *Operation) Infof(format string, args ...any) {
	op.logger.write(LevelInfo, op.id, fmt.Sprintf(format, args...))
}

// Warnf logs a warning line for this operation.
func (op *Operation) Warnf(format string, args ...any) {
	op.logger.write(LevelWarn, op.id, fmt.Sprintf(format, args...))
}

// Errorf logs an error line for this operation.
func (op *Operation) Errorf(format string, args ...any) {
	op.logger.write(LevelError, op.id, fmt.Sprintf(format, args...))
}

// End logs the closing line of the operation.
func (op *Operation) End() {
	op.Infof("operation finished: %s", op.name)
}
