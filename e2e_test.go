package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/FACorreiaa/go-itinerary-engine/internal/api/itinerary"
	"github.com/FACorreiaa/go-itinerary-engine/internal/planner"
	"github.com/FACorreiaa/go-itinerary-engine/internal/router"
	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

// memoryItineraryRepo is an in-memory Repository so the full HTTP stack
// can be exercised without Postgres.
type memoryItineraryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]types.SavedItinerary
}

func newMemoryItineraryRepo() *memoryItineraryRepo {
	return &memoryItineraryRepo{items: make(map[uuid.UUID]types.SavedItinerary)}
}

func (m *memoryItineraryRepo) SaveItinerary(_ context.Context, req types.SaveItineraryRequest) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	now := time.Now().UTC()
	m.items[id] = types.SavedItinerary{
		ID:        id,
		Title:     req.Title,
		Dates:     req.Dates,
		Itinerary: req.Itinerary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id, nil
}

func (m *memoryItineraryRepo) GetItinerary(_ context.Context, id uuid.UUID) (*types.SavedItinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved, ok := m.items[id]
	if !ok {
		return nil, itinerary.ErrNotFound
	}
	return &saved, nil
}

func (m *memoryItineraryRepo) GetItineraries(_ context.Context, page, pageSize int) ([]types.SavedItinerary, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]types.SavedItinerary, 0, len(m.items))
	for _, saved := range m.items {
		all = append(all, saved)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []types.SavedItinerary{}, len(all), nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (m *memoryItineraryRepo) DeleteItinerary(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return itinerary.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	generator := planner.NewGenerator(planner.DefaultConfig(), logger)
	repo := newMemoryItineraryRepo()
	service := itinerary.NewServiceImpl(generator, repo, nil, logger)
	handler := itinerary.NewItineraryHandler(service, logger)
	return router.SetupRouter(&router.Config{ItineraryHandler: handler})
}

func tripRequest() types.GenerateItineraryRequest {
	open := types.OpeningHours{Open: "09:30", Close: "17:30"}
	fee := 50.0
	return types.GenerateItineraryRequest{
		Title: "North Goa long weekend",
		Places: []types.PlaceKnowledge{
			{
				Name:            "Baga Beach",
				Type:            types.PlaceTypeBeach,
				Coordinates:     types.Coordinates{Lat: 15.5553, Lng: 73.7517},
				TypicalDuration: 120,
				BestTimeToVisit: "evening for the sunset",
				NearbyRestaurants: []types.RestaurantOption{
					{Name: "Britto's", Type: "restaurant", Rating: 4.3, DistanceKm: 0.2},
					{Name: "Cafe Lilliput", Type: "cafe", Rating: 4.0, DistanceKm: 0.4},
				},
			},
			{
				Name:            "Aguada Fort",
				Type:            types.PlaceTypeFort,
				Coordinates:     types.Coordinates{Lat: 15.4926, Lng: 73.7737},
				TypicalDuration: 90,
				OpeningHours:    &open,
				EntryFee:        &fee,
				CrowdPeakHours:  []string{"11:00-14:00"},
			},
			{
				Name:            "Anjuna Flea Market",
				Type:            types.PlaceTypeActivity,
				Coordinates:     types.Coordinates{Lat: 15.5735, Lng: 73.7445},
				TypicalDuration: 150,
				BestTimeToVisit: "morning before the heat",
			},
			{
				Name:            "Basilica of Bom Jesus",
				Type:            types.PlaceTypeLandmark,
				Coordinates:     types.Coordinates{Lat: 15.5009, Lng: 73.9116},
				TypicalDuration: 60,
				OpeningHours:    &types.OpeningHours{Open: "09:00", Close: "18:30"},
			},
		},
		Dates:  types.DateRange{Start: "2026-11-20", End: "2026-11-22"},
		Budget: &types.Budget{Total: 15000, Currency: "INR"},
	}
}

// E2ETestSuite drives complete itinerary workflows over HTTP.
type E2ETestSuite struct {
	suite.Suite
	server  *httptest.Server
	client  *http.Client
	baseURL string
}

func (s *E2ETestSuite) SetupSuite() {
	s.server = httptest.NewServer(newTestRouter())
	s.client = s.server.Client()
	s.baseURL = s.server.URL
}

func (s *E2ETestSuite) TearDownSuite() {
	s.server.Close()
}

func (s *E2ETestSuite) postJSON(path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	require.NoError(s.T(), err)
	resp, err := s.client.Post(s.baseURL+path, "application/json", bytes.NewReader(payload))
	require.NoError(s.T(), err)
	return resp
}

func (s *E2ETestSuite) TestPing() {
	resp, err := s.client.Get(s.baseURL + "/ping")
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
}

func (s *E2ETestSuite) TestGenerateItineraryWorkflow() {
	resp := s.postJSON("/api/v1/itineraries/generate", tripRequest())
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var generated types.GeneratedItinerary
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&generated))

	assert.Len(s.T(), generated.Days, 3)
	assert.Equal(s.T(), "2026-11-20", generated.Days[0].Date)
	assert.Equal(s.T(), 3, generated.Summary.TotalDays)
	assert.Greater(s.T(), generated.Summary.TotalActivities, 0)
	assert.NotEmpty(s.T(), generated.Route)
}

func (s *E2ETestSuite) TestGenerateRejectsEmptyPlaces() {
	req := tripRequest()
	req.Places = nil
	resp := s.postJSON("/api/v1/itineraries/generate", req)
	defer resp.Body.Close()
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func (s *E2ETestSuite) TestSaveGetListDeleteWorkflow() {
	genResp := s.postJSON("/api/v1/itineraries/generate", tripRequest())
	defer genResp.Body.Close()
	require.Equal(s.T(), http.StatusOK, genResp.StatusCode)

	var generated types.GeneratedItinerary
	require.NoError(s.T(), json.NewDecoder(genResp.Body).Decode(&generated))

	saveResp := s.postJSON("/api/v1/itineraries", types.SaveItineraryRequest{
		Title:     "Goa trip",
		Dates:     types.DateRange{Start: "2026-11-20", End: "2026-11-22"},
		Itinerary: generated,
	})
	defer saveResp.Body.Close()
	require.Equal(s.T(), http.StatusCreated, saveResp.StatusCode)

	var created map[string]string
	require.NoError(s.T(), json.NewDecoder(saveResp.Body).Decode(&created))
	id := created["id"]
	require.NotEmpty(s.T(), id)

	getResp, err := s.client.Get(fmt.Sprintf("%s/api/v1/itineraries/%s", s.baseURL, id))
	require.NoError(s.T(), err)
	defer getResp.Body.Close()
	require.Equal(s.T(), http.StatusOK, getResp.StatusCode)

	var saved types.SavedItinerary
	require.NoError(s.T(), json.NewDecoder(getResp.Body).Decode(&saved))
	assert.Equal(s.T(), "Goa trip", saved.Title)
	assert.Len(s.T(), saved.Itinerary.Days, 3)

	listResp, err := s.client.Get(s.baseURL + "/api/v1/itineraries?page=1&page_size=10")
	require.NoError(s.T(), err)
	defer listResp.Body.Close()
	require.Equal(s.T(), http.StatusOK, listResp.StatusCode)

	var page types.PaginatedItinerariesResponse
	require.NoError(s.T(), json.NewDecoder(listResp.Body).Decode(&page))
	assert.GreaterOrEqual(s.T(), page.TotalRecords, 1)

	delReq, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/v1/itineraries/%s", s.baseURL, id), nil)
	require.NoError(s.T(), err)
	delResp, err := s.client.Do(delReq)
	require.NoError(s.T(), err)
	defer delResp.Body.Close()
	assert.Equal(s.T(), http.StatusNoContent, delResp.StatusCode)

	missingResp, err := s.client.Get(fmt.Sprintf("%s/api/v1/itineraries/%s", s.baseURL, id))
	require.NoError(s.T(), err)
	defer missingResp.Body.Close()
	assert.Equal(s.T(), http.StatusNotFound, missingResp.StatusCode)
}

func TestE2ETestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e tests in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}
