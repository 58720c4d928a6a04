// Gateway receives binary LoRa push packets from UDP clients, drops
// repeated readings and relays new ones to the forwarder as write commands.
//
// Usage: gateway --listen=127.0.0.1:50810 --forward=127.0.0.1:50812
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/yskddk/smart-hive-udp-server/internal/config"
	"github.com/yskddk/smart-hive-udp-server/internal/logging"
	"github.com/yskddk/smart-hive-udp-server/internal/repository"
	"github.com/yskddk/smart-hive-udp-server/internal/service"
)

func main() {
	envFile := pflag.String("env-file", ".env", "env file with bridge settings")
	listen := pflag.String("listen", "", "UDP address to receive LoRa packets on")
	forward := pflag.String("forward", "", "UDP address of the forwarder")
	pflag.Parse()

	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if *listen != "" {
		cfg.GatewayListenAddr = *listen
	}
	if *forward != "" {
		cfg.GatewayForwardAddr = *forward
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Gateway failed: %v", err)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewStdLogger(log.New(os.Stderr, "", log.LstdFlags))

	conn, err := net.ListenPacket("udp", cfg.GatewayListenAddr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", cfg.GatewayListenAddr, err)
	}
	defer conn.Close()

	sink := repository.NewUDPCommandSink(cfg.GatewayForwardAddr)
	defer sink.Close()

	logger.Info("Listening on %s, relaying to %s", conn.LocalAddr(), cfg.GatewayForwardAddr)
	return service.NewGatewayService(conn, sink, logger).Run(ctx)
}
