package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"steamdeals/scanner/internal/scanner"

	log "github.com/sirupsen/logrus"
)

// ScanService runs one scan pass for a page.
type ScanService interface {
	Scan(ctx context.Context, page int) (*scanner.Result, error)
}

// DealsHandler serves the scan trigger endpoint.
type DealsHandler struct {
	scans ScanService
}

func NewDealsHandler(scans ScanService) *DealsHandler {
	return &DealsHandler{scans: scans}
}

// GetDeals handles GET /api/deals?page=N. The page defaults to 1; anything
// that is not a positive integer is a client error.
func (h *DealsHandler) GetDeals(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "page must be a positive integer", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	result, err := h.scans.Scan(r.Context(), page)
	if err != nil {
		log.Errorf("❌ Scan failed for page %d: %v", page, err)
		http.Error(w, "scan failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Errorf("Failed to encode deals response: %v", err)
	}
}
