package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fitlyhq/fitly-backend/api"
	"github.com/fitlyhq/fitly-backend/auth"
	"github.com/fitlyhq/fitly-backend/config"
	"github.com/fitlyhq/fitly-backend/store"
	"github.com/fitlyhq/fitly-backend/utils"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize MongoDB
	client, err := store.Connect(config.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := client.Database(config.MongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := store.NewUsers(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	stats := store.NewStats(db)
	if err := stats.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create stats indexes: %v", err)
	}
	plans := store.NewPlans(db)
	vitals := store.NewVitals(db)
	preds := store.NewPredictions(db)

	blobs, err := utils.NewS3Store(ctx, config.AWSRegion, config.AWSBucketName)
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}
	mailer := utils.NewSendGridMailer(config.SendGridAPIKey, config.EmailFromName, config.EmailFromAddr)

	svc := auth.NewService(
		users,
		auth.NewHasher(config.BcryptCost),
		auth.NewTokenManager(config.JWTSecret, config.JWTTTL),
		auth.NewOTPCache(config.OTPTTL),
		mailer,
		blobs,
	)

	mux := api.NewRouter(svc, stats, plans, vitals, preds)

	// CORS Middleware
	corsMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	handler := corsMiddleware(utils.LatencyMiddleware(mux))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
