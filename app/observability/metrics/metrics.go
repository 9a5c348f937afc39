package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerateRequestsTotal   metric.Int64Counter
	GenerateDurationSeconds metric.Float64Histogram
	PlacesDroppedTotal      metric.Int64Counter
	CacheHitsTotal          metric.Int64Counter
	DbQueryDurationSeconds  metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments exactly once,
// using the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("ItineraryEngine")
		var err error
		m := &AppMetrics{}

		m.GenerateRequestsTotal, err = meter.Int64Counter(
			"itinerary_generate_requests_total",
			metric.WithDescription("Total number of itinerary generation requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generate_requests_total: %v", err)
		}

		m.GenerateDurationSeconds, err = meter.Float64Histogram(
			"itinerary_generate_duration_seconds",
			metric.WithDescription("Duration of itinerary generation in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generate_duration_seconds: %v", err)
		}

		m.PlacesDroppedTotal, err = meter.Int64Counter(
			"itinerary_places_dropped_total",
			metric.WithDescription("Places dropped because they could not be scheduled"),
			metric.WithUnit("{place}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_places_dropped_total: %v", err)
		}

		m.CacheHitsTotal, err = meter.Int64Counter(
			"itinerary_cache_hits_total",
			metric.WithDescription("Generation requests served from the result cache"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_cache_hits_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global metrics instance; InitAppMetrics must run first.
func Get() *AppMetrics {
	return appMetrics
}
