package ipc

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestDefaultPipeName(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		username string
		want     string
	}{
		{name: "trusted override", env: `\\.\pipe\keyhook-ci_pipe`, username: "someone", want: `\\.\pipe\keyhook-ci_pipe`},
		{name: "untrusted override ignored", env: `\\.\pipe\other-app`, username: "unit-tester", want: `\\.\pipe\keyhook-unit-tester`},
		{name: "username sanitized", env: "", username: "unit user!", want: `\\.\pipe\keyhook-unit_user_`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(pipeEnvVar, tt.env)
			t.Setenv("USERNAME", tt.username)
			if got := DefaultPipeName(); got != tt.want {
				t.Fatalf("DefaultPipeName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRequestStampsID(t *testing.T) {
	a := NewRequest("parse", "Ctrl+A")
	b := NewRequest("parse", "Ctrl+A")
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Fatalf("request ID %q is not a UUID: %v", a.ID, err)
	}
	if a.ID == b.ID {
		t.Fatal("two requests share an ID")
	}
	if a.Command != "parse" || len(a.Args) != 1 || a.Args[0] != "Ctrl+A" {
		t.Fatalf("NewRequest() = %+v", a)
	}
}

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "command only", raw: `{"id":"1","command":"status"}`},
		{name: "with args", raw: `{"command":"parse","args":["Win + E"]}`},
		{name: "missing command", raw: `{"id":"1"}`, wantErr: true},
		{name: "blank command", raw: `{"command":"  "}`, wantErr: true},
		{name: "not json", raw: `status`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := decodeRequest([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && req.Args == nil {
				t.Fatal("decodeRequest() left Args nil")
			}
		})
	}
}

func TestWriteFrameIsOneLine(t *testing.T) {
	var buf bytes.Buffer
	if err := writeFrame(&buf, Response{ExitCode: 0, Stdout: "a\nb\n"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
		t.Fatalf("frame %q must be a single terminated line", out)
	}
	var resp Response
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Stdout != "a\nb\n" {
		t.Fatalf("Stdout = %q", resp.Stdout)
	}
}

func TestReadFrame(t *testing.T) {
	const limit = 32
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
		errText string
	}{
		{name: "within limit", input: "{\"exit_code\":0}\n", want: "{\"exit_code\":0}\n"},
		{name: "eof without delimiter", input: "{\"exit_code\":0}", want: "{\"exit_code\":0}"},
		{name: "empty input", input: "", wantErr: io.EOF},
		{name: "oversized", input: strings.Repeat("x", limit+1) + "\n", errText: "exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := readFrame(bufio.NewReaderSize(strings.NewReader(tt.input), limit+1), limit)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Fatalf("readFrame() error = %v, want %v", err, tt.wantErr)
				}
			case tt.errText != "":
				if err == nil || !strings.Contains(err.Error(), tt.errText) {
					t.Fatalf("readFrame() error = %v, want %q", err, tt.errText)
				}
			default:
				if err != nil {
					t.Fatalf("readFrame() error = %v", err)
				}
				if string(raw) != tt.want {
					t.Fatalf("readFrame() = %q, want %q", raw, tt.want)
				}
			}
		})
	}
}
