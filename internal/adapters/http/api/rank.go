package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/wcarank/pkg/logger"
)

// Query parameters accepted by GET /rank.
const (
	paramEvent  = "event"
	paramRegion = "region"
	paramRank   = "rank"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	Lookup(ctx context.Context, eventID, region, rankInput string) (Profile, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank?event=&region=&rank= requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	params := make(map[string]string, 3)
	for _, name := range []string{paramEvent, paramRegion, paramRank} {
		v := strings.TrimSpace(q.Get(name))
		if v == "" {
			writeError(w, http.StatusBadRequest, codeBadRequest, fmt.Errorf("%w: missing %s", ErrBadRequest, name))
			return
		}
		params[name] = v
	}

	profile, err := h.deps.Lookup(r.Context(), params[paramEvent], params[paramRegion], params[paramRank])
	if err != nil {
		status, code := classify(err)
		if status == http.StatusInternalServerError {
			logger.Get().Error(r.Context(), "rank lookup failed", logger.Error(err))
			err = ErrInternal
		}
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
