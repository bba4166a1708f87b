package handlers

import (
	"net/http"

	"github.com/hcallahan/scoutdeck/internal/pipeline"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

// PipelineHandler triggers evaluation and scan cycles over HTTP.
type PipelineHandler struct {
	analyzer *pipeline.Analyzer
	scanner  *pipeline.Scanner
	logger   *logger.Logger
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(analyzer *pipeline.Analyzer, scanner *pipeline.Scanner, log *logger.Logger) *PipelineHandler {
	return &PipelineHandler{
		analyzer: analyzer,
		scanner:  scanner,
		logger:   log,
	}
}

// Analyze runs one prospect evaluation cycle inline.
// POST /api/pipeline/analyze
func (h *PipelineHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyzer.Run(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Analysis cycle failed")
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"processed":          summary.Processed,
		"updated":            summary.Updated,
		"inserted":           summary.Inserted,
		"data_sources":       summary.DataSources,
		"analysis_timestamp": summary.Timestamp,
	})
}

// Scan runs one market scan cycle inline.
// POST /api/pipeline/scan
func (h *PipelineHandler) Scan(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scanner.Run(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Scan cycle failed")
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"deals_found":    summary.DealsFound,
		"deals_inserted": summary.DealsInserted,
		"users_scanned":  summary.UsersScanned,
		"scan_timestamp": summary.Timestamp,
	})
}
