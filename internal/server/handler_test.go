package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderpack/packages-cli/internal/adapters/estimate"
	"github.com/wanderpack/packages-cli/internal/core"
	"github.com/wanderpack/packages-cli/internal/destinations"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	catalog := destinations.NewCatalog()

	reg := core.NewRegistry(core.ModeEstimate)
	reg.RegisterFlight(estimate.NewFlights())
	reg.RegisterTrain(estimate.NewTrains())
	reg.RegisterHotel(estimate.NewHotels(catalog))
	require.NoError(t, reg.Validate())

	orch := core.NewOrchestrator(core.Config{}, reg, catalog, nil)
	return NewHandler(orch, catalog, nil, nil)
}

func TestSearchPackagesEndpoint(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/packages?to=BCN&nights=4&adults=2&outboundDate=2026-06-02&returnDate=2026-06-06", nil)
	rec := httptest.NewRecorder()
	h.SearchPackages(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result core.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Packages, 1)
	assert.Equal(t, "BCN", result.Packages[0].Destination.IATA)
	assert.True(t, result.ExactMatch)
	assert.Positive(t, result.Packages[0].TotalPrice)
}

func TestSearchPackagesBadParams(t *testing.T) {
	h := testHandler(t)

	for _, target := range []string{
		"/api/packages?nights=four",
		"/api/packages?adults=two",
		"/api/packages?maxBudget=lots",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.SearchPackages(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestSearchPackagesInvalidRequest(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/packages?adults=99", nil)
	rec := httptest.NewRecorder()
	h.SearchPackages(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid request", body["error"])
}

func TestListDestinationsEndpoint(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/destinations?mood=sun", nil)
	rec := httptest.NewRecorder()
	h.ListDestinations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Mood         string             `json:"mood"`
		Destinations []core.Destination `json:"destinations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sun", body.Mood)
	assert.NotEmpty(t, body.Destinations)
}

func TestListMoodsEndpoint(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	rec := httptest.NewRecorder()
	h.ListMoods(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Moods []string `json:"moods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Moods, "sun")
	assert.Contains(t, body.Moods, "random")
}

func TestHealthEndpoint(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequestID(inner).ServeHTTP(rec, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	// Inbound IDs pass through untouched.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-123")
	rec = httptest.NewRecorder()
	RequestID(inner).ServeHTTP(rec, req)

	assert.Equal(t, "upstream-123", seen)
}
