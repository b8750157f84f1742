package ipc

import (
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "dial", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: true},
		{name: "wrapped dial", err: fmt.Errorf("send: %w", &net.OpError{Op: "dial", Err: errors.New("x")}), want: true},
		{name: "read", err: &net.OpError{Op: "read", Err: errors.New("reset")}, want: false},
		{name: "unsupported", err: fmt.Errorf("pipe: %w", errors.ErrUnsupported), want: true},
		{name: "other", err: errors.New("invalid response"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConnectionError(tt.err); got != tt.want {
				t.Fatalf("IsConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestSendWithoutDaemonIsConnectionError(t *testing.T) {
	_, err := Send(`\\.\pipe\keyhook-absent-test-pipe`, NewRequest("status"))
	if err == nil {
		t.Fatal("Send() expected error without a daemon")
	}
	if !IsConnectionError(err) {
		t.Fatalf("IsConnectionError(%v) = false, want true", err)
	}
}
