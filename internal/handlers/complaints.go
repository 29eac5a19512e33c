package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/models"
	"smartwaste-backend/pkg/utils"
)

// CreateComplaint files a citizen complaint on behalf of whoever called it in.
// Any authenticated user can record one.
func CreateComplaint(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateComplaintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		citizen := strings.TrimSpace(req.CitizenName)
		area := strings.TrimSpace(req.Area)
		issue := strings.TrimSpace(req.Issue)
		if citizen == "" || area == "" || issue == "" {
			utils.Error(w, http.StatusBadRequest, "Citizen name, area and issue are required")
			return
		}

		priority := req.Priority
		switch priority {
		case "":
			priority = "Low"
		case "Low", "Medium", "High":
		default:
			utils.Error(w, http.StatusBadRequest, "Priority must be Low, Medium or High")
			return
		}

		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		complaintID := uuid.New().String()
		_, err := db.Exec(`
			INSERT INTO complaints (id, citizen_name, area, issue, priority, status, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, complaintID, citizen, area, issue, priority, models.ComplaintStatusOpen, actor.ID, time.Now().Unix())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save complaint")
			return
		}

		utils.JSON(w, http.StatusCreated, map[string]string{"message": "Complaint filed", "id": complaintID})
	}
}

// ListComplaints returns all complaints, newest first. Reading is open to
// every authenticated user so staff can see what was reported in their area.
func ListComplaints(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		complaints := []models.Complaint{}
		if err := db.Select(&complaints, `SELECT * FROM complaints ORDER BY created_at DESC`); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaints")
			return
		}

		utils.Success(w, complaints)
	}
}

// UpdateComplaintStatus moves a complaint one step along
// Open → In Progress → Resolved. Admin only (routed).
func UpdateComplaintStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		complaintID := chi.URLParam(r, "id")
		if complaintID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing complaint id")
			return
		}

		var complaint models.Complaint
		err := db.Get(&complaint, `SELECT * FROM complaints WHERE id = $1`, complaintID)
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Complaint not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaint")
			return
		}

		next := models.NextComplaintStatus(complaint.Status)
		if next == "" {
			utils.Error(w, http.StatusBadRequest, "Complaint is already resolved")
			return
		}

		result, err := db.Exec(`
			UPDATE complaints SET status = $1 WHERE id = $2 AND status = $3
		`, next, complaintID, complaint.Status)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update complaint")
			return
		}
		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusConflict, "Complaint was updated by someone else")
			return
		}

		utils.Success(w, map[string]string{"message": "Complaint updated", "status": next})
	}
}
