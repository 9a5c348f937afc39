package itinerary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-engine/internal/planner"
	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary operations.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.GenerateItineraryRequest) (*types.GeneratedItinerary, error)
	SaveItinerary(ctx context.Context, req types.SaveItineraryRequest) (uuid.UUID, error)
	GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error)
	GetItineraries(ctx context.Context, page, pageSize int) (*types.PaginatedItinerariesResponse, error)
	DeleteItinerary(ctx context.Context, id uuid.UUID) error
}

// ServiceImpl wraps the planner engine with caching, persistence and
// observability.
type ServiceImpl struct {
	logger    *slog.Logger
	generator *planner.Generator
	repo      Repository
	cache     *cache.Cache
}

func NewServiceImpl(generator *planner.Generator, repo Repository, resultCache *cache.Cache, logger *slog.Logger) *ServiceImpl {
	if resultCache == nil {
		resultCache = cache.New(24*time.Hour, time.Hour)
	}
	return &ServiceImpl{
		logger:    logger,
		generator: generator,
		repo:      repo,
		cache:     resultCache,
	}
}

// GenerateItinerary runs the engine for the request. Because generation
// is deterministic for identical inputs, results are cached by a hash of
// the canonical request JSON.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.GenerateItineraryRequest) (*types.GeneratedItinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.Int("places.count", len(req.Places)),
		attribute.String("dates.start", req.Dates.Start),
		attribute.String("dates.end", req.Dates.End),
	))
	defer span.End()

	start := time.Now()

	key, err := requestCacheKey(req)
	if err == nil {
		if cached, found := s.cache.Get(key); found {
			if it, ok := cached.(*types.GeneratedItinerary); ok {
				s.logger.InfoContext(ctx, "Cache hit for itinerary generation", slog.String("cache_key", key))
				if m := metrics.Get(); m != nil {
					m.CacheHitsTotal.Add(ctx, 1)
				}
				span.SetStatus(codes.Ok, "Itinerary served from cache")
				return it, nil
			}
		}
	}

	result, err := s.generator.Generate(ctx, planner.Input{
		Places: req.Places,
		Dates:  req.Dates,
		Budget: req.Budget,
		Now:    time.Now().UTC(),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to generate itinerary: %w", err)
	}

	if key != "" {
		s.cache.Set(key, result, cache.DefaultExpiration)
	}
	if m := metrics.Get(); m != nil {
		m.GenerateRequestsTotal.Add(ctx, 1)
		m.GenerateDurationSeconds.Record(ctx, time.Since(start).Seconds())
		schedulable := 0
		for _, p := range req.Places {
			if p.Type != types.PlaceTypeAccommodation {
				schedulable++
			}
		}
		if dropped := schedulable - result.Summary.TotalActivities; dropped > 0 {
			m.PlacesDroppedTotal.Add(ctx, int64(dropped))
		}
	}

	span.SetAttributes(attribute.Int("itinerary.days", len(result.Days)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return result, nil
}

func (s *ServiceImpl) SaveItinerary(ctx context.Context, req types.SaveItineraryRequest) (uuid.UUID, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "SaveItinerary")
	defer span.End()

	id, err := s.repo.SaveItinerary(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save itinerary", slog.Any("error", err))
		span.RecordError(err)
		return uuid.Nil, err
	}
	span.SetStatus(codes.Ok, "Itinerary saved")
	return id, nil
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetItinerary", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
	))
	defer span.End()

	saved, err := s.repo.GetItinerary(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to get itinerary", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Itinerary retrieved")
	return saved, nil
}

func (s *ServiceImpl) GetItineraries(ctx context.Context, page, pageSize int) (*types.PaginatedItinerariesResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetItineraries", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	))
	defer span.End()

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	itineraries, total, err := s.repo.GetItineraries(ctx, page, pageSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to list itineraries", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to retrieve itineraries: %w", err)
	}

	span.SetAttributes(attribute.Int("itineraries.count", len(itineraries)))
	span.SetStatus(codes.Ok, "Itineraries retrieved")
	return &types.PaginatedItinerariesResponse{
		Itineraries:  itineraries,
		TotalRecords: total,
		Page:         page,
		PageSize:     pageSize,
	}, nil
}

func (s *ServiceImpl) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "DeleteItinerary", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
	))
	defer span.End()

	if err := s.repo.DeleteItinerary(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to delete itinerary", slog.Any("error", err))
		span.RecordError(err)
		return err
	}
	span.SetStatus(codes.Ok, "Itinerary deleted")
	return nil
}

// requestCacheKey hashes the canonical JSON encoding of the request.
// Valid because generation is a pure function of the request.
func requestCacheKey(req types.GenerateItineraryRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return "itinerary:" + hex.EncodeToString(sum[:]), nil
}
