package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"
)

// Config holds server configuration
type Config struct {
	Port            string
	CatalogFile     string
	LogLevel        string
	LogRequests     bool
	EnableCORS      bool
	RateLimitRPS    float64
	RateLimitBurst  int
	RuntimeMetrics  bool
	EnableTLS       bool
	CertFile        string
	KeyFile         string
	ShutdownTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		Port:            "5000",
		LogLevel:        "info",
		LogRequests:     true,
		EnableCORS:      true,
		RuntimeMetrics:  true,
		CertFile:        "server.crt",
		KeyFile:         "server.key",
		ShutdownTimeout: 5 * time.Second,
	}
}

func configFlags() []cli.Flag {
	d := defaultConfig()
	return []cli.Flag{
		&cli.StringFlag{Name: "port", Value: d.Port, EnvVars: []string{"PORT"}, Usage: "listen port"},
		&cli.StringFlag{Name: "catalog-file", EnvVars: []string{"STORE_CATALOG_FILE"}, Usage: "YAML product list replacing the built-in catalog"},
		&cli.StringFlag{Name: "log-level", Value: d.LogLevel, EnvVars: []string{"LOG_LEVEL"}},
		&cli.BoolFlag{Name: "log-requests", Value: d.LogRequests, EnvVars: []string{"LOG_REQUESTS"}},
		&cli.BoolFlag{Name: "enable-cors", Value: d.EnableCORS, EnvVars: []string{"ENABLE_CORS"}},
		&cli.Float64Flag{Name: "rate-limit-rps", EnvVars: []string{"RATE_LIMIT_RPS"}, Usage: "0 disables rate limiting"},
		&cli.IntFlag{Name: "rate-limit-burst", EnvVars: []string{"RATE_LIMIT_BURST"}},
		&cli.BoolFlag{Name: "runtime-metrics", Value: d.RuntimeMetrics, EnvVars: []string{"RUNTIME_METRICS"}, Usage: "export Go runtime and process collectors"},
		&cli.BoolFlag{Name: "enable-tls", EnvVars: []string{"ENABLE_TLS"}},
		&cli.StringFlag{Name: "cert-file", Value: d.CertFile, EnvVars: []string{"CERT_FILE"}},
		&cli.StringFlag{Name: "key-file", Value: d.KeyFile, EnvVars: []string{"KEY_FILE"}},
		&cli.DurationFlag{Name: "shutdown-timeout", Value: d.ShutdownTimeout, EnvVars: []string{"SHUTDOWN_TIMEOUT"}},
	}
}

// configFromContext builds a validated Config from parsed flags.
func configFromContext(c *cli.Context) (Config, error) {
	cfg := Config{
		Port:            c.String("port"),
		CatalogFile:     c.String("catalog-file"),
		LogLevel:        c.String("log-level"),
		LogRequests:     c.Bool("log-requests"),
		EnableCORS:      c.Bool("enable-cors"),
		RateLimitRPS:    c.Float64("rate-limit-rps"),
		RateLimitBurst:  c.Int("rate-limit-burst"),
		RuntimeMetrics:  c.Bool("runtime-metrics"),
		EnableTLS:       c.Bool("enable-tls"),
		CertFile:        c.String("cert-file"),
		KeyFile:         c.String("key-file"),
		ShutdownTimeout: c.Duration("shutdown-timeout"),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

func (c Config) rateLimited() bool {
	return c.RateLimitRPS > 0 && c.RateLimitBurst > 0
}
