package itinerary

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-engine/internal/api"
	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

type ItineraryHandler struct {
	itineraryService Service
	logger           *slog.Logger
}

func NewItineraryHandler(itineraryService Service, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// GenerateItinerary builds a day-by-day plan from the submitted places and dates.
func (h *ItineraryHandler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GenerateItinerary").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var req types.GenerateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Places) == 0 {
		l.ErrorContext(ctx, "At least one place is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "At least one place is required")
		return
	}
	if req.Dates.Start == "" || req.Dates.End == "" {
		l.ErrorContext(ctx, "Start and end dates are required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Start and end dates are required")
		return
	}

	itinerary, err := h.itineraryService.GenerateItinerary(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

// SaveItinerary persists a previously generated itinerary.
func (h *ItineraryHandler) SaveItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SaveItinerary").Start(r.Context(), "SaveItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SaveItinerary"))
	l.DebugContext(ctx, "Save itinerary handler invoked")

	var req types.SaveItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Title == "" {
		l.ErrorContext(ctx, "Title is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Title is required")
		return
	}
	if len(req.Itinerary.Days) == 0 {
		l.ErrorContext(ctx, "Itinerary payload is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Itinerary payload is required")
		return
	}

	id, err := h.itineraryService.SaveItinerary(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to save itinerary", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to save itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]string{"id": id.String()})
}

// GetItinerary returns a saved itinerary by ID.
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetItinerary").Start(r.Context(), "GetItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetItinerary"))

	idStr := chi.URLParam(r, "itineraryID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.ErrorContext(ctx, "Invalid itinerary ID format", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	saved, err := h.itineraryService.GetItinerary(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get itinerary", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, saved)
}

// GetItineraries lists saved itineraries with pagination.
func (h *ItineraryHandler) GetItineraries(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetItineraries").Start(r.Context(), "GetItineraries", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetItineraries"))

	page := parseQueryInt(r, "page", 1)
	pageSize := parseQueryInt(r, "page_size", 10)

	response, err := h.itineraryService.GetItineraries(ctx, page, pageSize)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve itineraries")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, response)
}

// DeleteItinerary removes a saved itinerary by ID.
func (h *ItineraryHandler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DeleteItinerary").Start(r.Context(), "DeleteItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "DeleteItinerary"))

	idStr := chi.URLParam(r, "itineraryID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.ErrorContext(ctx, "Invalid itinerary ID format", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	if err := h.itineraryService.DeleteItinerary(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete itinerary", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func parseQueryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
