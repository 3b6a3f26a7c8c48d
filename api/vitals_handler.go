package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/fitlyhq/fitly-backend/models"
	"github.com/fitlyhq/fitly-backend/utils"
)

// VitalsStore is the storage surface the vitals relay needs.
type VitalsStore interface {
	Insert(ctx context.Context, v models.Vitals) (models.Vitals, error)
}

// VitalsHandler relays bracelet readings into storage.
type VitalsHandler struct {
	vitals VitalsStore
}

// NewVitalsHandler constructs the handler.
func NewVitalsHandler(vitals VitalsStore) *VitalsHandler {
	return &VitalsHandler{vitals: vitals}
}

// VitalsRequest is one reading posted by the bracelet bridge.
type VitalsRequest struct {
	Temperature float64   `json:"temperature"`
	BPM         float64   `json:"bpm"`
	Timestamp   time.Time `json:"timestamp"`
}

// Save handles POST /api/vitals
func (h *VitalsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req VitalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	saved, err := h.vitals.Insert(ctx, models.Vitals{
		Temperature: req.Temperature,
		BPM:         req.BPM,
		Timestamp:   req.Timestamp,
	})
	if err != nil {
		log.Printf("Error saving vitals: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "Dependency", "Error saving vitals")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Vitals recorded",
		"data":    saved,
	})
}
