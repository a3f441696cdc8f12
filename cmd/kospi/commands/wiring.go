package commands

import (
	"fmt"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/kis"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/market"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/marketdata"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/recommend"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/config"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/httputil"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/logger"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/redis"
)

// services bundles the wired application components for commands
type services struct {
	cfg       *config.Config
	log       *logger.Logger
	data      *marketdata.Service
	recommend *recommend.Service
	redisC    *redis.Client
}

// buildServices wires config → logger → HTTP → KIS → cache → pipeline.
// Every command starts here so the wiring stays in one place.
func buildServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
		cfg.LogFormat = "console"
	}

	log := logger.New(cfg)

	// 시세 조회는 재시도 없이 1회만, 초당 호출수 제한 준수
	httpClient := httputil.New(cfg, log).
		DisableRetry().
		WithRateLimit(cfg.KIS.RateLimitPerSec)

	kisClient := kis.NewClient(cfg.KIS.BaseURL, httpClient, log)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	var store marketdata.SnapshotStore
	if redisClient.Enabled() {
		store = marketdata.NewRedisStore(redisClient)
		log.Info("Using Redis snapshot store")
	} else {
		store = marketdata.NewMemoryStore()
	}

	dataService := marketdata.NewService(kisClient, store, market.Kospi200Codes, cfg.Cache.TTL, log)

	return &services{
		cfg:       cfg,
		log:       log,
		data:      dataService,
		recommend: recommend.NewService(dataService, log),
		redisC:    redisClient,
	}, nil
}

// close releases held connections
func (s *services) close() {
	if s.redisC != nil {
		_ = s.redisC.Close()
	}
}
