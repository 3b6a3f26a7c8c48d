package api

import (
	"encoding/json"
	"net/http"

	"github.com/fitlyhq/fitly-backend/auth"
	"github.com/fitlyhq/fitly-backend/models"
	"github.com/fitlyhq/fitly-backend/utils"
)

// maxUploadSize caps profile image uploads at 10MB.
const maxUploadSize = 10 << 20

// ProfileHandler owns the authenticated profile endpoints.
type ProfileHandler struct {
	svc *auth.Service
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(svc *auth.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// UpdateProfileRequest carries the partial profile fields for PUT /profile.
type UpdateProfileRequest struct {
	FullName     *string  `json:"fullName"`
	Gender       *string  `json:"gender"`
	Age          *int     `json:"age"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	Birthday     *string  `json:"birthday"`
	ProfileImage *string  `json:"profileImage"`
}

// Profile dispatches GET and PUT on /api/profile
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetProfile(r.Context(), UserIDFrom(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "Invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), UserIDFrom(r), models.ProfileUpdate{
		FullName:     req.FullName,
		Gender:       req.Gender,
		Age:          req.Age,
		Height:       req.Height,
		Weight:       req.Weight,
		Birthday:     req.Birthday,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated",
		"user":    user,
	})
}

// Upload stores a multipart profile image and records its object key
func (h *ProfileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "Error parsing form data")
		return
	}

	file, header, err := r.FormFile("profileImage")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Validation", "No file uploaded")
		return
	}
	defer file.Close()

	user, err := h.svc.UploadProfileImage(r.Context(), UserIDFrom(r), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Image uploaded",
		"user":    user,
	})
}

// Logout acknowledges the logout; tokens are stateless so the client just
// drops its copy.
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}
