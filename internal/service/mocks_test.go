package service

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/yskddk/smart-hive-udp-server/internal/models"
)

type MockLogger struct {
	mu         sync.Mutex
	infoCalls  []string
	errorCalls []string
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoCalls = append(m.infoCalls, fmt.Sprintf(msg, args...))
}

func (m *MockLogger) Error(msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCalls = append(m.errorCalls, fmt.Sprintf(msg, args...))
}

func (m *MockLogger) GetInfoCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.infoCalls...)
}

func (m *MockLogger) GetErrorCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.errorCalls...)
}

// CountContaining returns how many info and error lines contain substr.
func (m *MockLogger) CountContaining(substr string) int {
	count := 0
	for _, line := range append(m.GetInfoCalls(), m.GetErrorCalls()...) {
		if strings.Contains(line, substr) {
			count++
		}
	}
	return count
}

type MockSheetRepository struct {
	mu          sync.Mutex
	submitCalls []models.SensorRecord
	submitError error
}

func (m *MockSheetRepository) Submit(_ context.Context, record models.SensorRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitCalls = append(m.submitCalls, record)
	return m.submitError
}

func (m *MockSheetRepository) GetSubmitCalls() []models.SensorRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.SensorRecord{}, m.submitCalls...)
}

type MockCommandSink struct {
	mu        sync.Mutex
	sendCalls []string
	sendError error
}

func (m *MockCommandSink) Send(_ context.Context, command string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendCalls = append(m.sendCalls, command)
	return m.sendError
}

func (m *MockCommandSink) GetSendCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.sendCalls...)
}

// fakePacketConn serves queued datagrams to ReadFrom. Once the queue is
// drained ReadFrom blocks until the read deadline passes or Close is called.
type fakePacketConn struct {
	mu       sync.Mutex
	queue    [][]byte
	reads    int
	deadline time.Time
	closed   bool
	wake     chan struct{}
}

func newFakePacketConn(datagrams ...string) *fakePacketConn {
	c := &fakePacketConn{wake: make(chan struct{}, 1)}
	for _, d := range datagrams {
		c.queue = append(c.queue, []byte(d))
	}
	return c
}

func (c *fakePacketConn) Push(datagram []byte) {
	c.mu.Lock()
	c.queue = append(c.queue, datagram)
	c.mu.Unlock()
	c.notify()
}

func (c *fakePacketConn) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

func (c *fakePacketConn) notify() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *fakePacketConn) ReadFrom(p []byte) (int, net.Addr, error) {
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return 0, nil, net.ErrClosed
		}
		if len(c.queue) > 0 {
			d := c.queue[0]
			c.queue = c.queue[1:]
			c.reads++
			c.mu.Unlock()
			return copy(p, d), &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000}, nil
		}
		deadline := c.deadline
		c.mu.Unlock()

		if deadline.IsZero() {
			<-c.wake
			continue
		}
		wait := time.Until(deadline)
		if wait <= 0 {
			return 0, nil, os.ErrDeadlineExceeded
		}
		timer := time.NewTimer(wait)
		select {
		case <-c.wake:
			timer.Stop()
		case <-timer.C:
			return 0, nil, os.ErrDeadlineExceeded
		}
	}
}

func (c *fakePacketConn) WriteTo(p []byte, _ net.Addr) (int, error) { return len(p), nil }

func (c *fakePacketConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *fakePacketConn) LocalAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50812}
}

func (c *fakePacketConn) SetDeadline(t time.Time) error { return c.SetReadDeadline(t) }

func (c *fakePacketConn) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	c.deadline = t
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *fakePacketConn) SetWriteDeadline(time.Time) error { return nil }
