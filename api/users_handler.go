package api

import (
	"net/http"
	"strings"

	"github.com/fitlyhq/fitly-backend/auth"
	"github.com/fitlyhq/fitly-backend/utils"
)

// UsersHandler owns the admin/debug user endpoints.
type UsersHandler struct {
	svc *auth.Service
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(svc *auth.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// List returns every user record, password hashes excluded by serialization
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, users)
}

// Delete removes the user named in the path: DELETE /api/user/{id}
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/user/")
	if id == "" {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "User id is required")
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
