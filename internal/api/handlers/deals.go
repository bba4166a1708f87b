package handlers

import (
	"net/http"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

// DealHandler serves stored deals.
type DealHandler struct {
	repo   contracts.DealRepository
	logger *logger.Logger
}

// NewDealHandler creates a new deal handler.
func NewDealHandler(repo contracts.DealRepository, log *logger.Logger) *DealHandler {
	return &DealHandler{repo: repo, logger: log}
}

// List returns deals for one owner, optionally filtered by status.
// GET /api/deals?user_id=...&status=pending
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	status := contracts.DealStatus(r.URL.Query().Get("status"))
	switch status {
	case "", contracts.DealPending, contracts.DealAccepted, contracts.DealRejected:
	default:
		respondError(w, http.StatusBadRequest, "status must be pending, accepted or rejected")
		return
	}

	deals, err := h.repo.ListByUser(r.Context(), userID, status)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list deals")
		respondError(w, http.StatusInternalServerError, "Failed to list deals")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(deals),
		"items":   deals,
	})
}
