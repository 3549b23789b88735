package app

import (
	"context"
	"time"

	"jobradar/internal/cache"
	"jobradar/internal/config"
	"jobradar/internal/database"
	"jobradar/internal/database/postgres"
	"jobradar/internal/extract"
	"jobradar/internal/gap"
	"jobradar/internal/logger"
	"jobradar/internal/match"
	"jobradar/internal/repository"
	"jobradar/internal/scraper"
	"jobradar/internal/usecase"
	"jobradar/internal/ws"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Container holds every long-lived dependency the process needs.
// Optional backends (postgres, redis, the AI extractor) stay nil when
// their configuration is absent; consumers degrade around them.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Cache *cache.Redis

	Extractor *extract.Service
	Scheduler *scraper.Scheduler
	Usecase   usecase.MatchUsecase
	Runs      repository.MatchRunRepository
	Hub       *ws.Hub
}

func NewContainer(cfg config.Config) (*Container, error) {
	log, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: log}

	c.Cache = cache.NewRedis(cfg.Redis, log)

	if cfg.Database.DBHost != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := postgres.Connect(ctx, cfg.Database)
		cancel()
		if err != nil {
			log.Warn("postgres unavailable, match runs will not be persisted", zap.Error(err))
		} else {
			c.DB = db
			c.Runs = repository.NewPostgresMatchRunRepository(db)
		}
	}

	extractClient := extract.NewClient(cfg.Extractor.BaseURL, cfg.Extractor.Timeout)
	c.Extractor = extract.NewService(extractClient, log)

	c.Hub = ws.NewHub(log)
	ws.SetDefaultHub(c.Hub)

	c.Scheduler = scraper.NewScheduler(buildAdapters(cfg.Scrape), cfg.Scrape, log)
	c.Scheduler.OnSourceDone(ws.NotifySourceDone)

	matcher := match.NewMatcher(match.TokenSetScorer{}, cfg.Match)
	gaps := gap.NewAggregator(gap.DefaultCatalog(), cfg.Match.TopGaps)

	var reportCache usecase.ReportCache
	if cfg.Redis.Host != "" {
		reportCache = c.Cache
	}

	c.Usecase = usecase.NewMatchUsecase(c.Scheduler, matcher, gaps, c.Extractor, reportCache, cfg.Redis.TTL, log)

	return c, nil
}

// buildAdapters gives every source its own rate limiter so one slow
// site never throttles the others.
func buildAdapters(cfg config.ScrapeConfig) []scraper.Adapter {
	limiter := func() *rate.Limiter {
		return rate.NewLimiter(rate.Every(cfg.RequestDelay), 1)
	}
	return []scraper.Adapter{
		scraper.NewIndeedAdapter(limiter()),
		scraper.NewLinkedInAdapter(limiter()),
		scraper.NewGlassdoorAdapter(limiter(), cfg.Headless),
		scraper.NewRemotiveAdapter(limiter()),
	}
}

// Close releases backends in reverse dependency order.
func (c *Container) Close() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Warn("redis close error", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("postgres close error", zap.Error(err))
		}
	}
	_ = c.Logger.Sync()
}
