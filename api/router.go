package api

import (
	"net/http"

	"github.com/fitlyhq/fitly-backend/auth"
)

// NewRouter registers every endpoint on a fresh mux.
func NewRouter(svc *auth.Service, stats StatsStore, plans PlanStore, vitals VitalsStore, preds PredictionStore) *http.ServeMux {
	mux := http.NewServeMux()

	authHandler := NewAuthHandler(svc)
	profileHandler := NewProfileHandler(svc)
	usersHandler := NewUsersHandler(svc)
	statsHandler := NewStatsHandler(stats)
	planHandler := NewPlanHandler(plans)
	vitalsHandler := NewVitalsHandler(vitals)
	predictionHandler := NewPredictionHandler(preds)

	// Public auth routes
	mux.HandleFunc("/api/signup", authHandler.Signup)
	mux.HandleFunc("/api/login", authHandler.Login)
	mux.HandleFunc("/api/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("/api/verify-otp", authHandler.VerifyOTP)
	mux.HandleFunc("/api/reset-password", authHandler.ResetPassword)

	// Authenticated profile routes
	mux.HandleFunc("/api/logout", RequireAuth(svc, profileHandler.Logout))
	mux.HandleFunc("/api/profile", RequireAuth(svc, profileHandler.Profile))
	mux.HandleFunc("/api/profile/upload", RequireAuth(svc, profileHandler.Upload))

	// Admin / debug
	mux.HandleFunc("/api/users", usersHandler.List)
	mux.HandleFunc("/api/user/", RequireAuth(svc, usersHandler.Delete))

	// Activity stats
	mux.HandleFunc("/api/stats", statsHandler.Stats)
	mux.HandleFunc("/api/stats/user/", statsHandler.ByUser)

	// Workout plans
	mux.HandleFunc("/api/plan/save", planHandler.Save)
	mux.HandleFunc("/api/plan/user/", planHandler.ByUser)

	// Vitals relay
	mux.HandleFunc("/api/vitals", vitalsHandler.Save)

	// ML prediction persistence
	mux.HandleFunc("/api/predictions/blood-pressure", predictionHandler.SaveBloodPressure)
	mux.HandleFunc("/api/predictions/diabetes", predictionHandler.SaveDiabetes)

	return mux
}
