// Package journal appends one line per fired binding to a plain-text log
// file so users can audit what their shortcuts launched.
package journal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05"

// Journal is safe for concurrent use. A nil *Journal discards every entry.
type Journal struct {
	mu     sync.Mutex
	file   *os.File
	log    zerolog.Logger
	closed bool
}

// Open creates the parent directory and opens path for appending.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	j := newJournal(file)
	j.file = file
	return j, nil
}

func newJournal(out io.Writer) *Journal {
	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeFormat,
		NoColor:    true,
	}
	return &Journal{
		log: zerolog.New(writer).With().Timestamp().Int("pid", os.Getpid()).Logger(),
	}
}

// Fired records a binding that matched. runErr is the error from starting
// the bound command, if any.
func (j *Journal) Fired(name, shortcut, command string, runErr error) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}

	ev := j.log.Info()
	if runErr != nil {
		ev = j.log.Error().Err(runErr)
	}
	ev = ev.Str("binding", name).Str("shortcut", shortcut)
	if command != "" {
		ev = ev.Str("command", command)
	}
	ev.Msg("fired")
}

// Unmatched records a press no binding claimed.
func (j *Journal) Unmatched(shortcut string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}
	j.log.Debug().Str("shortcut", shortcut).Msg("unmatched")
}

// Close flushes and closes the file. It is safe to call more than once.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	if j.file == nil {
		return nil
	}
	return j.file.Close()
}
