package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// server carries every dependency the handlers and middleware need.
type server struct {
	config      Config
	log         *zap.Logger
	catalog     *Catalog
	metrics     *storeMetrics
	probe       *systemProbe
	rnd         Randomizer
	rateLimiter *rate.Limiter
	startTime   time.Time
}

func newServer(cfg Config, log *zap.Logger) (*server, error) {
	catalog, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	s := &server{
		config:    cfg,
		log:       log,
		catalog:   catalog,
		metrics:   newStoreMetrics(cfg.RuntimeMetrics),
		probe:     defaultSystemProbe(),
		rnd:       globalRand{},
		startTime: time.Now(),
	}
	if cfg.rateLimited() {
		s.rateLimiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	return s, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	return zc.Build()
}
