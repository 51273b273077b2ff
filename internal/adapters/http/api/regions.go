package api

import "net/http"

// RegionsHandler handles region listing requests
type RegionsHandler struct {
	deps ListDependencies
}

// NewRegionsHandler creates a new regions handler
func NewRegionsHandler(deps ListDependencies) *RegionsHandler {
	return &RegionsHandler{deps: deps}
}

// HandleGetRegions handles GET /regions requests
func (h *RegionsHandler) HandleGetRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	regions, err := h.deps.Regions(r.Context())
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, regions)
}
