package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the environment does not override them.
const (
	DefaultForwarderListenAddr = "127.0.0.1:50812"
	DefaultSheetEndpointURL    = "https://script.google.com/macros/s/AKfycbw-3C_60Ua9ZrdB9ns_hilYOU70aqjISdaQfRV1V6sxsN50Zgnz/exec"
	DefaultGatewayListenAddr   = "127.0.0.1:50810"
	DefaultGatewayForwardAddr  = DefaultForwarderListenAddr
	DefaultAllowedOrigins      = "*"
)

// Config holds the application's configuration.
type Config struct {
	ForwarderListenAddr  string
	SheetEndpointURL     string
	SheetHTTPTimeout     time.Duration
	StatusAddr           string
	StatusAllowedOrigins []string
	GatewayListenAddr    string
	GatewayForwardAddr   string
}

// LoadConfig loads the configuration from environment variables.
// envFile is read first when present; a missing file is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file found, relying on system environment variables", envFile)
	}

	cfg := Config{
		ForwarderListenAddr:  getEnv("FORWARDER_LISTEN_ADDR", DefaultForwarderListenAddr),
		SheetEndpointURL:     getEnv("SHEET_ENDPOINT_URL", DefaultSheetEndpointURL),
		StatusAddr:           os.Getenv("STATUS_ADDR"),
		StatusAllowedOrigins: splitList(getEnv("STATUS_ALLOWED_ORIGINS", DefaultAllowedOrigins)),
		GatewayListenAddr:    getEnv("GATEWAY_LISTEN_ADDR", DefaultGatewayListenAddr),
		GatewayForwardAddr:   getEnv("GATEWAY_FORWARD_ADDR", DefaultGatewayForwardAddr),
	}

	timeout, err := parseTimeout(os.Getenv("SHEET_HTTP_TIMEOUT"))
	if err != nil {
		return Config{}, err
	}
	cfg.SheetHTTPTimeout = timeout

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks addresses and the endpoint URL.
func (c Config) Validate() error {
	for name, addr := range map[string]string{
		"FORWARDER_LISTEN_ADDR": c.ForwarderListenAddr,
		"GATEWAY_LISTEN_ADDR":   c.GatewayListenAddr,
		"GATEWAY_FORWARD_ADDR":  c.GatewayForwardAddr,
	} {
		if err := ValidateAddress(addr); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.StatusAddr != "" {
		if err := ValidateAddress(c.StatusAddr); err != nil {
			return fmt.Errorf("STATUS_ADDR: %w", err)
		}
	}

	u, err := url.Parse(c.SheetEndpointURL)
	if err != nil {
		return fmt.Errorf("SHEET_ENDPOINT_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("SHEET_ENDPOINT_URL must be an absolute http(s) URL, got %q", c.SheetEndpointURL)
	}
	return nil
}

// ValidateAddress checks that value is a host:port pair with a numeric port.
func ValidateAddress(value string) error {
	if value == "" {
		return fmt.Errorf("address must be non-empty")
	}
	_, port, err := net.SplitHostPort(value)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("port must be a number: %s", port)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func parseTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("SHEET_HTTP_TIMEOUT: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("SHEET_HTTP_TIMEOUT must not be negative")
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
