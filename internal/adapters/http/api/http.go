// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/wcarank/internal/adapters/repository"
	service "github.com/okian/wcarank/internal/app"
	"github.com/okian/wcarank/internal/domain/format"
	"github.com/okian/wcarank/internal/domain/query"
	"github.com/okian/wcarank/internal/domain/types"
)

// Error codes written in errorResponse.Code.
const (
	codeBadRequest  = "bad_request"
	codeInvalidRank = "invalid_rank"
	codeNotFound    = "not_found"
	codeDecode      = "decode_error"
	codeNotReady    = "not_ready"
	codeInternal    = "internal_error"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RankDependencies
	ListDependencies
}

// Profile mirrors the read shape returned by rank lookups.
type Profile = types.Profile

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	eventsHandler  *EventsHandler
	regionsHandler *RegionsHandler
	rankHandler    *RankHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		eventsHandler:  NewEventsHandler(deps),
		regionsHandler: NewRegionsHandler(deps),
		rankHandler:    NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", RequestIDMiddleware(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/events", RequestIDMiddleware(MetricsMiddleware(s.eventsHandler.HandleGetEvents, "events")))
	mux.HandleFunc("/regions", RequestIDMiddleware(MetricsMiddleware(s.regionsHandler.HandleGetRegions, "regions")))
	mux.HandleFunc("/rank", RequestIDMiddleware(MetricsMiddleware(s.rankHandler.HandleGetRank, "rank")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps a lookup error to its HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, query.ErrInvalidRankInput):
		return http.StatusBadRequest, codeInvalidRank
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, format.ErrDecode):
		return http.StatusUnprocessableEntity, codeDecode
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, codeNotReady
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
