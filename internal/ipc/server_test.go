package ipc

import (
	"bufio"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// startTCPServer runs a PipeServer on a loopback TCP listener and points
// Send at it.
func startTCPServer(t *testing.T, handler Handler) *PipeServer {
	t.Helper()
	srv := NewPipeServer(`\\.\pipe\keyhook-test`, handler)
	var addr atomic.Value
	srv.listen = func(string) (net.Listener, error) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err == nil {
			addr.Store(l.Addr().String())
		}
		return l, err
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { srv.Stop() })

	orig := dialPipe
	dialPipe = func(_ string, timeout time.Duration) (net.Conn, error) {
		return net.DialTimeout("tcp", addr.Load().(string), timeout)
	}
	t.Cleanup(func() { dialPipe = orig })
	return srv
}

func TestSendRoundTrip(t *testing.T) {
	srv := startTCPServer(t, HandlerFunc(func(req Request) Response {
		return Response{Stdout: req.Command + ":" + strings.Join(req.Args, ",")}
	}))

	req := NewRequest("parse", "Ctrl", "E")
	resp, err := Send(srv.PipeName(), req)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if resp.ExitCode != 0 || resp.Stdout != "parse:Ctrl,E" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.ID != req.ID {
		t.Fatalf("response ID = %q, want %q", resp.ID, req.ID)
	}
}

func TestServerRejectsInvalidRequest(t *testing.T) {
	var calls atomic.Int32
	startTCPServer(t, HandlerFunc(func(Request) Response {
		calls.Add(1)
		return Response{}
	}))

	conn, err := dialPipe("", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("{\"args\":[\"x\"]}\n")); err != nil {
		t.Fatal(err)
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if !strings.Contains(line, `"exit_code":1`) || !strings.Contains(line, "missing command") {
		t.Fatalf("response = %q", line)
	}
	if calls.Load() != 0 {
		t.Fatal("handler ran for an invalid request")
	}
}

func TestPipeServerLifecycle(t *testing.T) {
	t.Run("nil handler", func(t *testing.T) {
		if err := NewPipeServer("", nil).Start(); err == nil {
			t.Fatal("Start() without handler expected error")
		}
	})

	t.Run("double start", func(t *testing.T) {
		srv := startTCPServer(t, HandlerFunc(func(Request) Response { return Response{} }))
		if err := srv.Start(); err == nil {
			t.Fatal("second Start() expected error")
		}
	})

	t.Run("stop idempotent", func(t *testing.T) {
		srv := startTCPServer(t, HandlerFunc(func(Request) Response { return Response{} }))
		if err := srv.Stop(); err != nil {
			t.Fatalf("Stop() error = %v", err)
		}
		if err := srv.Stop(); err != nil {
			t.Fatalf("second Stop() error = %v", err)
		}
		if _, err := Send("", NewRequest("status")); err == nil {
			t.Fatal("Send() after Stop expected error")
		}
	})

	t.Run("default pipe name", func(t *testing.T) {
		t.Setenv(pipeEnvVar, "")
		t.Setenv("USERNAME", "lifecycle")
		if got := NewPipeServer("", HandlerFunc(nil)).PipeName(); got != defaultPipePrefix+"lifecycle" {
			t.Fatalf("PipeName() = %q", got)
		}
	})
}
