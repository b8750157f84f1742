//go:build !windows

package ipc

import (
	"fmt"
	"net"
	"time"
)

func dialNamedPipe(name string, _ time.Duration) (net.Conn, error) {
	return nil, &net.OpError{Op: "dial", Net: "pipe", Err: fmt.Errorf("named pipe %s: %w", name, errUnsupported)}
}

func listenPipe(name string) (net.Listener, error) {
	return nil, fmt.Errorf("named pipe %s: %w", name, errUnsupported)
}
