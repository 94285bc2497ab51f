// Package logging provides file-based logging for drift-guard.
//
// The MCP transport owns stdout, so operational logs go to a file under
// the project's .driftguard directory where they survive the session.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger appends timestamped lines to a log file with thread-safe access.
// The zero value is a no-op logger.
type Logger struct {
	mu   sync.Mutex
	file *os.File
}

// New creates a logger writing to the specified path.
// If the path is empty, returns a no-op logger.
// Creates parent directories if they don't exist.
func New(logPath string) (*Logger, error) {
	if logPath == "" {
		return &Logger{}, nil
	}

	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{file: f}, nil
}

// NewForRepo creates a logger in the repo's .driftguard/logs directory.
// Returns a no-op logger if the directory cannot be created.
func NewForRepo(repoPath string) *Logger {
	logPath := filepath.Join(repoPath, ".driftguard", "logs", "driftguard.log")
	logger, err := New(logPath)
	if err != nil {
		return &Logger{}
	}
	return logger
}

// Printf writes a single timestamped line to the log file.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	timestamp := time.Now().Format(time.RFC3339)
	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// Close releases the file handle.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
