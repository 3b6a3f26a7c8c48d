package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fitlyhq/fitly-backend/auth"
	"github.com/fitlyhq/fitly-backend/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth verifies the bearer token and injects the user id into the
// request context.
func RequireAuth(svc *auth.Service, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.RespondError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Code, "Missing bearer token")
			return
		}

		userID, err := svc.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// UserIDFrom returns the authenticated user id set by RequireAuth.
func UserIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// respondServiceError maps the typed error taxonomy onto status codes and a
// stable error body. Anything untyped becomes an opaque 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var ae *auth.Error
	if errors.As(err, &ae) {
		utils.RespondError(w, ae.Status, ae.Code, ae.Message)
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, "Internal", "Internal server error")
}
