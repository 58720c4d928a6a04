package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/yskddk/smart-hive-udp-server/internal/logging"
	"github.com/yskddk/smart-hive-udp-server/internal/lora"
	"github.com/yskddk/smart-hive-udp-server/internal/repository"
)

// Gateway receive parameters.
const (
	GatewayBufferSize  = 256
	GatewayPollTimeout = 3 * time.Second
)

type deviceKey struct {
	udpClient uint8
	device    uint8
}

// GatewayService turns LoRa push packets into forwarder write commands.
// Only the receive loop touches the history, so it is not locked.
type GatewayService struct {
	conn        net.PacketConn
	sink        repository.CommandSink
	logger      logging.Logger
	pollTimeout time.Duration
	history     map[deviceKey]lora.Packet
}

// NewGatewayService creates a GatewayService reading from conn.
func NewGatewayService(conn net.PacketConn, sink repository.CommandSink, logger logging.Logger) *GatewayService {
	return &GatewayService{
		conn:        conn,
		sink:        sink,
		logger:      logger,
		pollTimeout: GatewayPollTimeout,
		history:     make(map[deviceKey]lora.Packet),
	}
}

// Run receives packets until ctx is cancelled or the socket fails.
func (g *GatewayService) Run(ctx context.Context) error {
	buf := make([]byte, GatewayBufferSize)
	for {
		if ctx.Err() != nil {
			g.logger.Info("gateway stopped: %s", ctx.Err())
			return nil
		}

		if err := g.conn.SetReadDeadline(time.Now().Add(g.pollTimeout)); err != nil {
			return fmt.Errorf("set read deadline: %w", err)
		}
		n, _, err := g.conn.ReadFrom(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			return fmt.Errorf("receive packet: %w", err)
		}
		if n == 0 {
			g.logger.Error("recv: 0 byte packet received")
			continue
		}

		if err := g.Handle(ctx, buf[:n]); err != nil {
			g.logger.Error("%s", err)
		}
	}
}

// Handle decodes one packet and sends its command unless the device
// repeated its previous reading.
func (g *GatewayService) Handle(ctx context.Context, payload []byte) error {
	p, err := lora.ParsePacket(payload)
	if err != nil {
		return err
	}

	key := deviceKey{udpClient: p.UDPClientID, device: p.DeviceID}
	if last, ok := g.history[key]; ok && last == p {
		return nil
	}
	g.history[key] = p

	command := p.Command(strconv.Itoa(int(p.UDPClientID)))
	if err := g.sink.Send(ctx, command); err != nil {
		return fmt.Errorf("send CSV failed: %w", err)
	}
	g.logger.Info("device %d serial %d relayed: %s", p.DeviceID, p.Serial, command)
	return nil
}
