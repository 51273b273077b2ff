package api

import (
	"context"
	"net/http"

	"github.com/okian/wcarank/internal/domain/types"
)

// ListDependencies exposes the distinct values of the loaded dataset.
type ListDependencies interface {
	Events(ctx context.Context) ([]types.EventOption, error)
	Regions(ctx context.Context) ([]string, error)
}

// EventsHandler handles event listing requests
type EventsHandler struct {
	deps ListDependencies
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(deps ListDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleGetEvents handles GET /events requests
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	events, err := h.deps.Events(r.Context())
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
