package repository

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// CommandSink delivers rendered forwarder commands.
type CommandSink interface {
	Send(ctx context.Context, command string) error
}

// UDPCommandSink sends each command as a single datagram.
type UDPCommandSink struct {
	mu   sync.Mutex
	addr string
	conn net.Conn
}

// NewUDPCommandSink creates a sink for the forwarder at addr. The socket
// is dialed lazily on the first send.
func NewUDPCommandSink(addr string) *UDPCommandSink {
	return &UDPCommandSink{addr: addr}
}

// Send writes command as one datagram.
func (s *UDPCommandSink) Send(ctx context.Context, command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "udp", s.addr)
		if err != nil {
			return fmt.Errorf("dial forwarder %s: %w", s.addr, err)
		}
		s.conn = conn
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(time.Second)
	}
	_ = s.conn.SetWriteDeadline(deadline)

	if _, err := s.conn.Write([]byte(command)); err != nil {
		return fmt.Errorf("send to forwarder %s: %w", s.addr, err)
	}
	return nil
}

// Close releases the socket.
func (s *UDPCommandSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
