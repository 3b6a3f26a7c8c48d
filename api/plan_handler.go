package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitlyhq/fitly-backend/models"
	"github.com/fitlyhq/fitly-backend/store"
	"github.com/fitlyhq/fitly-backend/utils"
)

// PlanStore is the storage surface the workout plan endpoints need.
type PlanStore interface {
	Save(ctx context.Context, plan models.WorkoutPlan) (models.WorkoutPlan, error)
	FindByUser(ctx context.Context, userID string) (models.WorkoutPlan, error)
}

// PlanHandler owns the workout plan endpoints.
type PlanHandler struct {
	plans PlanStore
}

// NewPlanHandler constructs the handler.
func NewPlanHandler(plans PlanStore) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// SavePlanRequest is the payload for persisting a generated weekly plan.
type SavePlanRequest struct {
	UserID         string                       `json:"userId"`
	WeeklyPlan     map[string][]models.Exercise `json:"weekly_plan"`
	Equipment      []string                     `json:"equipment"`
	Recommendation string                       `json:"recommendation"`
	Diet           string                       `json:"diet"`
}

// Save handles POST /api/plan/save
func (h *PlanHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "Invalid request body")
		return
	}
	if req.UserID == "" || len(req.WeeklyPlan) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "userId and weekly_plan are required")
		return
	}

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "userId is not a valid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	plan, err := h.plans.Save(ctx, models.WorkoutPlan{
		User:           oid,
		WeeklyPlan:     req.WeeklyPlan,
		Equipment:      req.Equipment,
		Recommendation: req.Recommendation,
		Diet:           req.Diet,
	})
	if err != nil {
		log.Printf("Error saving plan: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "Dependency", "Error saving workout plan")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, plan)
}

// ByUser serves GET /api/plan/user/{userId}
func (h *PlanHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/plan/user/"))
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "User id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	plan, err := h.plans.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "NotFound", "No plan found for this user.")
			return
		}
		log.Printf("Error fetching plan: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "Dependency", "Error fetching workout plan")
		return
	}
	utils.RespondJSON(w, http.StatusOK, plan)
}
