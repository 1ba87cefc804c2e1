package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/wanderpack/packages-cli/internal/core"
	"github.com/wanderpack/packages-cli/internal/destinations"
	"github.com/wanderpack/packages-cli/internal/obs"
)

type Handler struct {
	orch    *core.Orchestrator
	catalog *destinations.Catalog
	metrics *obs.Metrics
	logger  *zap.Logger
}

func NewHandler(orch *core.Orchestrator, catalog *destinations.Catalog, metrics *obs.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{orch: orch, catalog: catalog, metrics: metrics, logger: logger}
}

// SearchPackages handles GET /api/packages. The request context carries
// the client disconnect, so an abandoned browser tab cancels the fan-out.
func (h *Handler) SearchPackages(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	start := time.Now()
	result, err := h.orch.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// Client went away; nothing useful to write.
			h.logger.Debug("search abandoned", zap.String("requestID", requestIDFrom(r.Context())))
		default:
			h.logger.Error("search failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "search failed", "")
		}
		return
	}

	if h.metrics != nil {
		h.metrics.Searches.Inc()
		h.metrics.ProviderErrors.Add(float64(result.Stats.ErrorsCount))
		h.metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}

	writeJSON(w, http.StatusOK, result)
}

// ListDestinations handles GET /api/destinations, optionally filtered by
// ?mood=.
func (h *Handler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	mood := core.Mood(r.URL.Query().Get("mood"))
	if mood == "" {
		mood = core.MoodRandom
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mood":         mood,
		"destinations": h.catalog.Destinations(mood),
	})
}

// ListMoods handles GET /api/moods.
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"moods": core.Moods()})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseSearchRequest(r *http.Request) (core.SearchRequest, error) {
	q := r.URL.Query()
	req := core.SearchRequest{
		Origin:        q.Get("origin"),
		Destination:   q.Get("to"),
		Mood:          core.Mood(q.Get("mood")),
		TransportType: core.TransportType(q.Get("transport")),
		RelaxBudget:   q.Get("relaxBudget") == "true",
		RelaxMood:     q.Get("relaxMood") == "true",
	}

	var err error
	if req.Nights, err = intParam(q.Get("nights")); err != nil {
		return req, errors.New("nights must be an integer")
	}
	if req.Adults, err = intParam(q.Get("adults")); err != nil {
		return req, errors.New("adults must be an integer")
	}
	if req.MaxBudget, err = intParam(q.Get("maxBudget")); err != nil {
		return req, errors.New("maxBudget must be an integer")
	}

	if out, ret := q.Get("outboundDate"), q.Get("returnDate"); out != "" && ret != "" {
		req.FixedDates = []core.DateCandidate{{OutboundDate: out, ReturnDate: ret}}
	}
	return req, nil
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, map[string]string{"error": msg, "details": details})
}
