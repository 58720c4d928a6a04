// Package service contains the receive loops of the bridge binaries.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/yskddk/smart-hive-udp-server/internal/logging"
	"github.com/yskddk/smart-hive-udp-server/internal/models"
	"github.com/yskddk/smart-hive-udp-server/internal/repository"
)

// ForwarderBufferSize is the largest datagram the forwarder reads in full.
const ForwarderBufferSize = 2048

// ForwarderService receives write commands on a datagram socket and
// submits them to the sheet repository, one at a time.
type ForwarderService struct {
	conn   net.PacketConn
	repo   repository.SheetRepository
	logger logging.Logger

	startedAt       time.Time
	received        atomic.Uint64
	forwarded       atomic.Uint64
	rejected        atomic.Uint64
	ignored         atomic.Uint64
	undecodable     atomic.Uint64
	forwardFailures atomic.Uint64
}

// NewForwarderService creates a ForwarderService reading from conn.
// The caller owns conn and closes it.
func NewForwarderService(conn net.PacketConn, repo repository.SheetRepository, logger logging.Logger) *ForwarderService {
	return &ForwarderService{
		conn:      conn,
		repo:      repo,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Run processes datagrams until a close message arrives, ctx is cancelled
// or the socket fails. A close message and cancellation return nil.
func (s *ForwarderService) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// unblocks ReadFrom
			_ = s.conn.SetReadDeadline(time.Now())
		case <-stop:
		}
	}()

	buf := make([]byte, ForwarderBufferSize)
	for {
		n, addr, err := s.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("forwarder stopped: %s", ctx.Err())
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return fmt.Errorf("receive datagram: %w", err)
		}

		if s.Handle(ctx, addr, buf[:n]) {
			return nil
		}
	}
}

// Handle processes a single datagram and reports whether it was the close
// message.
func (s *ForwarderService) Handle(ctx context.Context, from net.Addr, payload []byte) bool {
	s.received.Add(1)
	id := uuid.NewString()

	// the gateway terminates its commands with a NUL byte
	payload = bytes.TrimRight(payload, "\x00")
	if !utf8.Valid(payload) {
		s.undecodable.Add(1)
		err := models.NewBridgeError(models.ErrorCodeUndecodableBytes,
			fmt.Sprintf("dropping %d bytes from %s", len(payload), addrString(from)), models.ErrUndecodableBytes)
		s.logger.Error("msg=%s %s", id, err)
		return false
	}

	msg := models.ParseMessage(string(payload))
	if msg.IsClose() {
		s.logger.Info("msg=%s Server Close", id)
		return true
	}
	if !msg.IsWrite() {
		s.ignored.Add(1)
		return false
	}

	s.logger.Info("msg=%s Data Get from %s", id, addrString(from))
	record, err := models.NewSensorRecord(msg.Tokens)
	if err != nil {
		s.rejected.Add(1)
		s.logger.Error("msg=%s Msg Length Is Too Short (Need 17): %s", id, err)
		return false
	}

	if err := s.repo.Submit(ctx, record); err != nil {
		s.forwardFailures.Add(1)
		s.logger.Error("msg=%s %s", id, err)
	} else {
		s.forwarded.Add(1)
	}
	s.logger.Info("msg=%s Successful To Post Data\n%s", id, msg.Joined())

	return false
}

// Stats returns a snapshot of the counters.
func (s *ForwarderService) Stats() models.ForwarderStats {
	return models.ForwarderStats{
		Received:        s.received.Load(),
		Forwarded:       s.forwarded.Load(),
		Rejected:        s.rejected.Load(),
		Ignored:         s.ignored.Load(),
		Undecodable:     s.undecodable.Load(),
		ForwardFailures: s.forwardFailures.Load(),
		StartedAt:       s.startedAt,
	}
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return "unknown"
	}
	return addr.String()
}
