package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/tuna/internal/domain/model"
)

// StatsProvider defines the interface for getting catalog statistics.
type StatsProvider interface {
	Stats(ctx context.Context) (model.Counts, error)
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.stats"
	counts, err := h.statsProvider.Stats(r.Context())
	if err != nil {
		writeError(r.Context(), w, op, fmt.Errorf("%w: %w", ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
