// Package ipc carries control commands from keyhookctl to the running
// daemon as newline-delimited JSON over a per-user named pipe.
package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"keyhook/internal/userutil"

	"github.com/google/uuid"
)

var pipeNamePattern = regexp.MustCompile(`(?i)^\\\\\.\\pipe\\keyhook-[a-z0-9._-]{1,128}$`)

const (
	defaultPipePrefix = `\\.\pipe\keyhook-`
	pipeEnvVar        = "KEYHOOK_PIPE"

	maxRequestBytes  = 64 * 1024
	maxResponseBytes = 256 * 1024
)

// Request is a single control command.
type Request struct {
	ID      string   `json:"id"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// NewRequest stamps a fresh request ID so that responses can be correlated
// in daemon logs.
func NewRequest(command string, args ...string) Request {
	return Request{ID: uuid.NewString(), Command: command, Args: args}
}

// Response mirrors a CLI invocation result.
type Response struct {
	ID       string `json:"id,omitempty"`
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
}

// Handler executes a request and returns its response.
type Handler interface {
	Execute(req Request) Response
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(req Request) Response

func (f HandlerFunc) Execute(req Request) Response { return f(req) }

// DefaultPipeName returns the pipe path to use. KEYHOOK_PIPE wins when it
// matches the keyhook pipe pattern; otherwise the name is derived from the
// current user.
func DefaultPipeName() string {
	if v, ok := trustedPipeNameFromEnv(); ok {
		return v
	}
	return defaultPipePrefix + userutil.CurrentUsername()
}

func trustedPipeNameFromEnv() (string, bool) {
	value := strings.TrimSpace(os.Getenv(pipeEnvVar))
	if value == "" {
		return "", false
	}
	if !pipeNamePattern.MatchString(value) {
		slog.Warn("[ipc] "+pipeEnvVar+" rejected: value does not match allowed pattern", "value", value)
		return "", false
	}
	return value, true
}

func decodeRequest(raw []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, err
	}
	if strings.TrimSpace(req.Command) == "" {
		return Request{}, errors.New("missing command")
	}
	if req.Args == nil {
		req.Args = []string{}
	}
	return req, nil
}

// writeFrame writes v as one JSON line.
func writeFrame(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	_, err = w.Write(raw)
	return err
}

// readFrame reads one newline-terminated frame of at most maxBytes. The
// reader must be buffered with at least maxBytes+1 bytes.
func readFrame(reader *bufio.Reader, maxBytes int) ([]byte, error) {
	raw, err := reader.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("frame exceeds %d bytes", maxBytes)
	}
	if errors.Is(err, io.EOF) {
		if len(raw) == 0 {
			return nil, io.EOF
		}
		return raw, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

var errUnsupported = fmt.Errorf("named pipes require Windows: %w", errors.ErrUnsupported)
