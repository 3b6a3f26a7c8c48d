package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fitlyhq/fitly-backend/models"
	"github.com/fitlyhq/fitly-backend/utils"
)

// storeTimeout bounds handler-level storage calls.
const storeTimeout = 10 * time.Second

// StatsStore is the storage surface the stats endpoints need.
type StatsStore interface {
	Upsert(ctx context.Context, userID string, date time.Time, steps int, caloriesBurned float64) (models.DailyStats, error)
	RangeByUser(ctx context.Context, userID string, days int) ([]models.DailyStats, error)
	All(ctx context.Context) ([]models.DailyStats, error)
}

// StatsHandler owns the daily activity endpoints.
type StatsHandler struct {
	stats StatsStore
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(stats StatsStore) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// UpdateStatsRequest is the payload for upserting one day's counters.
type UpdateStatsRequest struct {
	UserID         string  `json:"userId"`
	Date           string  `json:"date"`
	Steps          int     `json:"steps"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

// Stats dispatches POST (upsert) and GET (list all) on /api/stats
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.update(w, r)
	case http.MethodGet:
		h.all(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *StatsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "Invalid request body")
		return
	}
	if req.UserID == "" || req.Date == "" {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "userId and date are required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "date must be YYYY-MM-DD or RFC3339")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	stats, err := h.stats.Upsert(ctx, req.UserID, date, req.Steps, req.CaloriesBurned)
	if err != nil {
		log.Printf("Error updating stats: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "Dependency", "Error updating stats")
		return
	}
	utils.RespondJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) all(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	stats, err := h.stats.All(ctx)
	if err != nil {
		log.Printf("Error fetching all stats: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "Dependency", "Error fetching stats")
		return
	}
	utils.RespondJSON(w, http.StatusOK, stats)
}

// ByUser serves GET /api/stats/user/{userId}?days=N
func (h *StatsHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/api/stats/user/")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "User id is required")
		return
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	stats, err := h.stats.RangeByUser(ctx, userID, days)
	if err != nil {
		log.Printf("Error fetching stats: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "Dependency", "Error fetching stats")
		return
	}
	utils.RespondJSON(w, http.StatusOK, stats)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
