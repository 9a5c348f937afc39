package container

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patrickmn/go-cache"

	database "github.com/FACorreiaa/go-itinerary-engine/app/db"
	"github.com/FACorreiaa/go-itinerary-engine/config"
	"github.com/FACorreiaa/go-itinerary-engine/internal/api/itinerary"
	"github.com/FACorreiaa/go-itinerary-engine/internal/planner"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	ItineraryHandler *itinerary.ItineraryHandler
}

// NewContainer initializes and returns a new dependency container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// Initialize database
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	generator := planner.NewGenerator(plannerConfig(cfg), logger)

	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cleanup := cfg.Cache.CleanupInterval
	if cleanup <= 0 {
		cleanup = time.Hour
	}
	resultCache := cache.New(ttl, cleanup)

	itineraryRepo := itinerary.NewRepository(pool, logger)
	itineraryService := itinerary.NewServiceImpl(generator, itineraryRepo, resultCache, logger)
	itineraryHandler := itinerary.NewItineraryHandler(itineraryService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		ItineraryHandler: itineraryHandler,
	}, nil
}

// plannerConfig layers file-based overrides onto the engine's tuned
// defaults. Zero values keep the baseline profile.
func plannerConfig(cfg *config.Config) planner.Config {
	pc := planner.DefaultConfig()
	if cfg.Planner.RegionRadiusKm > 0 {
		pc.RegionRadiusKm = cfg.Planner.RegionRadiusKm
	}
	if cfg.Planner.MicroClusterTravelMinutes > 0 {
		pc.MicroClusterTravelMinutes = cfg.Planner.MicroClusterTravelMinutes
	}
	if cfg.Planner.DailyTimeBudgetMinutes > 0 {
		pc.DailyTimeBudgetMinutes = cfg.Planner.DailyTimeBudgetMinutes
	}
	if cfg.Planner.OverloadCeilingMinutes > 0 {
		pc.OverloadCeilingMinutes = cfg.Planner.OverloadCeilingMinutes
	}
	if cfg.Planner.AverageSpeedKmh > 0 {
		pc.AverageSpeedKmh = cfg.Planner.AverageSpeedKmh
	}
	if cfg.Planner.TravelMinutesPerKm > 0 {
		pc.TravelMinutesPerKm = cfg.Planner.TravelMinutesPerKm
	}
	return pc
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
