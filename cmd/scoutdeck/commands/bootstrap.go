package commands

import (
	"fmt"

	"github.com/hcallahan/scoutdeck/internal/deals"
	"github.com/hcallahan/scoutdeck/internal/external/fangraphs"
	"github.com/hcallahan/scoutdeck/internal/external/mlbpipeline"
	"github.com/hcallahan/scoutdeck/internal/external/prospectus"
	"github.com/hcallahan/scoutdeck/internal/external/statsapi"
	"github.com/hcallahan/scoutdeck/internal/market"
	"github.com/hcallahan/scoutdeck/internal/market/comc"
	"github.com/hcallahan/scoutdeck/internal/market/ebay"
	"github.com/hcallahan/scoutdeck/internal/market/stockx"
	"github.com/hcallahan/scoutdeck/internal/pipeline"
	"github.com/hcallahan/scoutdeck/internal/prospects"
	"github.com/hcallahan/scoutdeck/internal/valuation"
	"github.com/hcallahan/scoutdeck/internal/watchlist"
	"github.com/hcallahan/scoutdeck/pkg/config"
	"github.com/hcallahan/scoutdeck/pkg/database"
	"github.com/hcallahan/scoutdeck/pkg/httputil"
	"github.com/hcallahan/scoutdeck/pkg/logger"
	"github.com/hcallahan/scoutdeck/pkg/redis"
)

// app holds the fully wired dependency graph shared by every command.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	db    *database.DB
	redis *redis.Client

	watchRepo    *watchlist.Repository
	prospectRepo *prospects.Repository
	dealRepo     *deals.Repository

	analyzer *pipeline.Analyzer
	scanner  *pipeline.Scanner
}

// newApp loads config and wires every component.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	limiter := redis.NewRateLimiter(redisClient, "scoutdeck")
	cache := redis.NewCache(redisClient, "scoutdeck")

	// Per-source HTTP clients so each source gets its own rate budget.
	fgHTTP := httputil.New(cfg, log).WithRateLimiter(limiter, redis.FanGraphsRateLimit)
	statsHTTP := httputil.New(cfg, log).WithRateLimiter(limiter, redis.StatsAPIRateLimit)
	providerHTTP := httputil.New(cfg, log)
	ebayHTTP := httputil.NewWithTimeout(cfg, log, cfg.Scanner.ConnectorTimeout).
		WithRateLimiter(limiter, redis.EBayRateLimit)
	marketHTTP := httputil.NewWithTimeout(cfg, log, cfg.Scanner.ConnectorTimeout)

	fgClient := fangraphs.NewClient(fgHTTP, log, cfg.FanGraphs.BaseURL, cfg.FanGraphs.APIKey)
	pipelineClient := mlbpipeline.NewClient(providerHTTP, log, cfg.MLBPipeline.BaseURL)
	bpClient := prospectus.NewClient(providerHTTP, log, cfg.Prospectus.BaseURL, cfg.Prospectus.APIKey)
	statsClient := statsapi.NewClient(statsHTTP, log, cache, cfg.StatsAPI.BaseURL)

	connectors := []market.Connector{
		ebay.NewClient(ebayHTTP, log, cfg.EBay.BaseURL, cfg.EBay.APIKey),
		comc.NewClient(marketHTTP, log, cfg.COMC.BaseURL),
		stockx.NewClient(marketHTTP, log, cfg.StockX.BaseURL),
	}

	watchRepo := watchlist.NewRepository(db.Pool)
	prospectRepo := prospects.NewRepository(db.Pool)
	dealRepo := deals.NewRepository(db.Pool)

	estimator := valuation.NewEstimator(cfg.Valuation)

	return &app{
		cfg:          cfg,
		log:          log,
		db:           db,
		redis:        redisClient,
		watchRepo:    watchRepo,
		prospectRepo: prospectRepo,
		dealRepo:     dealRepo,
		analyzer: pipeline.NewAnalyzer(
			fgClient, pipelineClient, bpClient, statsClient,
			watchRepo, prospectRepo, log,
		),
		scanner: pipeline.NewScanner(
			connectors, estimator, watchRepo, dealRepo, cfg.Scanner, log,
		),
	}, nil
}

// Close releases shared resources.
func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
