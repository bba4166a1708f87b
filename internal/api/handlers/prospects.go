package handlers

import (
	"net/http"
	"strconv"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

const defaultTopLimit = 50

// ProspectHandler serves the latest scored prospect snapshots.
type ProspectHandler struct {
	repo   contracts.ProspectRepository
	logger *logger.Logger
}

// NewProspectHandler creates a new prospect handler.
func NewProspectHandler(repo contracts.ProspectRepository, log *logger.Logger) *ProspectHandler {
	return &ProspectHandler{repo: repo, logger: log}
}

// GetTop returns the highest scored prospects.
// GET /api/prospects/top?limit=50
func (h *ProspectHandler) GetTop(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	prospects, err := h.repo.ListTop(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list prospects")
		respondError(w, http.StatusInternalServerError, "Failed to list prospects")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(prospects),
		"items":   prospects,
	})
}
