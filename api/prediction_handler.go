package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitlyhq/fitly-backend/models"
	"github.com/fitlyhq/fitly-backend/utils"
)

// PredictionStore persists results obtained from the external ML services.
type PredictionStore interface {
	SaveBloodPressure(ctx context.Context, p models.BloodPressurePrediction) (models.BloodPressurePrediction, error)
	SaveDiabetes(ctx context.Context, p models.DiabetesPrediction) (models.DiabetesPrediction, error)
}

// PredictionHandler persists ML prediction results for a user. The models
// themselves run in an external service; this side only records outcomes.
type PredictionHandler struct {
	preds PredictionStore
}

// NewPredictionHandler constructs the handler.
func NewPredictionHandler(preds PredictionStore) *PredictionHandler {
	return &PredictionHandler{preds: preds}
}

// SaveBloodPressureRequest is the payload for a BP prediction result.
type SaveBloodPressureRequest struct {
	UserID string                     `json:"userId"`
	Input  *models.BloodPressureInput `json:"input"`
	Result *string                    `json:"result"`
}

// SaveDiabetesRequest is the payload for a diabetes prediction result.
type SaveDiabetesRequest struct {
	UserID string                `json:"userId"`
	Input  *models.DiabetesInput `json:"input"`
	Result *string               `json:"result"`
}

// SaveBloodPressure handles POST /api/predictions/blood-pressure
func (h *PredictionHandler) SaveBloodPressure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SaveBloodPressureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "Invalid request body")
		return
	}
	if req.UserID == "" || req.Input == nil || req.Result == nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "Missing fields")
		return
	}

	oid, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "userId is not a valid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	saved, err := h.preds.SaveBloodPressure(ctx, models.BloodPressurePrediction{
		User:   oid,
		Input:  *req.Input,
		Result: *req.Result,
	})
	if err != nil {
		log.Printf("Error saving blood pressure prediction: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "Dependency", "Error saving prediction")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, saved)
}

// SaveDiabetes handles POST /api/predictions/diabetes
func (h *PredictionHandler) SaveDiabetes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SaveDiabetesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "Invalid request body")
		return
	}
	if req.UserID == "" || req.Input == nil || req.Result == nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "Missing fields")
		return
	}

	oid, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "userId is not a valid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	saved, err := h.preds.SaveDiabetes(ctx, models.DiabetesPrediction{
		User:   oid,
		Input:  *req.Input,
		Result: *req.Result,
	})
	if err != nil {
		log.Printf("Error saving diabetes prediction: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "Dependency", "Error saving prediction")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, saved)
}
