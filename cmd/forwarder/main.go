// Forwarder receives sensor write commands over UDP and posts each one as
// a web form to the spreadsheet logging endpoint. It exits when it receives
// the datagram "close".
//
// Usage: forwarder --listen=127.0.0.1:50812 --status-addr=:8081
//
// Settings are read from the environment or an env file; flags win.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/yskddk/smart-hive-udp-server/internal/config"
	"github.com/yskddk/smart-hive-udp-server/internal/controller"
	"github.com/yskddk/smart-hive-udp-server/internal/logging"
	"github.com/yskddk/smart-hive-udp-server/internal/repository"
	"github.com/yskddk/smart-hive-udp-server/internal/routes"
	"github.com/yskddk/smart-hive-udp-server/internal/service"
)

func main() {
	envFile := pflag.String("env-file", ".env", "env file with bridge settings")
	listen := pflag.String("listen", "", "UDP address to receive commands on")
	endpoint := pflag.String("endpoint", "", "URL of the sheet logging endpoint")
	statusAddr := pflag.String("status-addr", "", "address of the status HTTP endpoint (disabled when empty)")
	pflag.Parse()

	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if *listen != "" {
		cfg.ForwarderListenAddr = *listen
	}
	if *endpoint != "" {
		cfg.SheetEndpointURL = *endpoint
	}
	if *statusAddr != "" {
		cfg.StatusAddr = *statusAddr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Forwarder failed: %v", err)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewStdLogger(log.New(os.Stdout, "", log.LstdFlags))

	conn, err := net.ListenPacket("udp", cfg.ForwarderListenAddr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", cfg.ForwarderListenAddr, err)
	}
	defer conn.Close()

	repo := repository.NewFormRepository(cfg.SheetEndpointURL, cfg.SheetHTTPTimeout)
	forwarder := service.NewForwarderService(conn, repo, logger)

	if cfg.StatusAddr != "" {
		server := &http.Server{
			Addr:              cfg.StatusAddr,
			Handler:           routes.NewHandler(controller.NewStatusController(forwarder), cfg.StatusAllowedOrigins),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("Status endpoint listening on %s", cfg.StatusAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("status endpoint: %s", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("status endpoint shutdown: %s", err)
			}
		}()
	}

	logger.Info("Listening on %s, posting to %s", conn.LocalAddr(), repo.Endpoint())
	return forwarder.Run(ctx)
}
