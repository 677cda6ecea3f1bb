// Package history keeps the audit trail: accepted tool calls and consumed
// operations, in memory and appended to a file on disk. Operations are
// consumed exactly once by the materializer; this log is where they live
// afterwards.
package history

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"cad-engine/internal/logging"
)

// LogFilePath is the audit file path, relative to the working directory.
const LogFilePath = "logs/operations.txt"

// Log stores stamped lines in memory and appends them to the audit file.
type Log struct {
	mu       sync.Mutex
	path     string
	lines    []string
	warnOnce sync.Once
}

// New returns a Log writing to LogFilePath and ensures the directory exists.
func New() *Log {
	return NewAt(LogFilePath)
}

// NewAt returns a Log writing to the given path. An empty path keeps the
// trail in memory only.
func NewAt(path string) *Log {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Log{path: path, lines: make([]string, 0)}
}

// Record appends a line to the trail and to the file on disk. Each entry is
// prefixed with a timestamp.
func (l *Log) Record(line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		l.warnOnce.Do(func() {
			logging.Warn("audit file %s: %v; keeping the trail in memory only", l.path, err)
		})
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
