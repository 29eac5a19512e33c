package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/models"
	"smartwaste-backend/internal/roles"
	"smartwaste-backend/pkg/utils"
)

type updateUserRequest struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Area     string `json:"area"`
}

// ListUsers returns every profile for the admin staff directory.
func ListUsers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles := []models.Profile{}
		if err := db.Select(&profiles, `SELECT * FROM profiles ORDER BY created_at DESC`); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}

		responses := make([]models.ProfileResponse, len(profiles))
		for i := range profiles {
			responses[i] = profiles[i].ToProfileResponse()
		}
		utils.Success(w, responses)
	}
}

// UpdateUser lets an admin reassign a staff member's name, role and area.
// Changing the role here grants or revokes workflow permissions right away,
// since privileged operations re-read the profile row on every request.
func UpdateUser(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "id")
		if userID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing user id")
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		fullName := strings.TrimSpace(req.FullName)
		area := strings.TrimSpace(req.Area)
		role := roles.Normalize(req.Role)
		if fullName == "" || area == "" {
			utils.Error(w, http.StatusBadRequest, "Full name and area are required")
			return
		}
		if !roles.Known(role) {
			utils.Error(w, http.StatusBadRequest, "Role must be admin, worker, driver or recycling_manager")
			return
		}

		result, err := db.Exec(`
			UPDATE profiles SET full_name = $1, role = $2, area = $3, updated_at = $4
			WHERE id = $5
		`, fullName, string(role), area, time.Now().Unix(), userID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update user")
			return
		}
		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}

		var profile models.Profile
		if err := db.Get(&profile, `SELECT * FROM profiles WHERE id = $1`, userID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated user")
			return
		}

		utils.Success(w, profile.ToProfileResponse())
	}
}
