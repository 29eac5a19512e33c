package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/lifecycle"
	"smartwaste-backend/internal/models"
	"smartwaste-backend/internal/roles"
	"smartwaste-backend/pkg/utils"
)

// findAssignee resolves a staff member by email (when the input contains
// "@") or by exact full name, mirroring how admins type assignees in.
func findAssignee(db *sqlx.DB, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", sql.ErrNoRows
	}

	var id string
	if strings.Contains(key, "@") {
		err := db.Get(&id, `SELECT id FROM profiles WHERE LOWER(email) = LOWER($1)`, key)
		return id, err
	}
	err := db.Get(&id, `SELECT id FROM profiles WHERE LOWER(full_name) = LOWER($1)`, key)
	return id, err
}

// CreateStaffTask assigns a TRIP or MANUAL task (admin only; COLLECTION
// entries are system-generated).
func CreateStaffTask(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateStaffTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.TaskType != models.StaffTaskTypeTrip && req.TaskType != models.StaffTaskTypeManual {
			utils.Error(w, http.StatusBadRequest, "task_type must be TRIP or MANUAL")
			return
		}
		if req.Date == "" || req.VehicleID == "" || req.Assignee == "" || req.Route == "" || req.Shift == "" {
			utils.Error(w, http.StatusBadRequest, "Fill all fields")
			return
		}

		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}
		if actor.Role != roles.Admin {
			utils.Error(w, http.StatusForbidden, "Only admin can assign staff tasks")
			return
		}

		assignedTo, err := findAssignee(db, req.Assignee)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusBadRequest, "Staff not found. Enter exact full name or email of an existing user.")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		taskID := uuid.New().String()
		_, err = db.Exec(`
			INSERT INTO staff_tasks (id, task_type, assigned_to, vehicle_id, route, shift, date, status, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 'Assigned', $8, $9)
		`, taskID, req.TaskType, assignedTo, req.VehicleID, req.Route, req.Shift, req.Date, actor.ID, time.Now().Unix())
		if err != nil {
			log.Printf("❌ Staff task insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create staff task")
			return
		}

		utils.JSON(w, http.StatusCreated, map[string]string{"message": "Task assigned", "id": taskID})
	}
}

// ListStaffTasks returns the ledger visible to the caller: everything for
// admins, own assignments for everyone else.
func ListStaffTasks(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		tasks := []models.StaffTask{}
		filter := roles.StaffTaskFilter(actor.Role, actor.ID)
		query := `SELECT * FROM staff_tasks`
		if !filter.Unrestricted() {
			query += " WHERE " + filter.Where
		}
		query += " ORDER BY created_at DESC"
		if err := db.Select(&tasks, query, filter.Args...); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch staff tasks")
			return
		}

		utils.Success(w, tasks)
	}
}

// UpdateStaffTaskStatus advances Assigned→Started→Completed for the
// assigned actor. Admins see the ledger but do not act on it. Completing a
// trip points the actor at the collection screen with the trip id so the
// collection record gets linked back.
func UpdateStaffTaskStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "id")
		if taskID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing task id")
			return
		}

		var req models.UpdateStaffTaskStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		to := lifecycle.StaffStatus(req.Status)
		if !to.Valid() {
			utils.Error(w, http.StatusBadRequest, "Status must be Assigned, Started or Completed")
			return
		}

		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		var task models.StaffTask
		err := db.Get(&task, `SELECT * FROM staff_tasks WHERE id = $1`, taskID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		if err := lifecycle.CanAdvanceStaff(&task, to, actor); err != nil {
			utils.Error(w, lifecycleErrorStatus(err), err.Error())
			return
		}

		now := time.Now().Unix()
		var result sql.Result
		switch to {
		case lifecycle.StaffStarted:
			result, err = db.Exec(`
				UPDATE staff_tasks SET status = 'Started', started_at = $1
				WHERE id = $2 AND status = 'Assigned'
			`, now, taskID)
		case lifecycle.StaffCompleted:
			result, err = db.Exec(`
				UPDATE staff_tasks SET status = 'Completed', completed_at = $1
				WHERE id = $2 AND status = 'Started'
			`, now, taskID)
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Update failed")
			return
		}
		if rows, rerr := result.RowsAffected(); rerr == nil && rows == 0 {
			utils.Error(w, http.StatusConflict, "Task status changed meanwhile")
			return
		}

		if to == lifecycle.StaffCompleted {
			// Workflow hint, not a data constraint: the next step is logging
			// the collection tied to this trip.
			utils.Success(w, map[string]string{
				"message":       "Updated",
				"redirect":      "collection",
				"staff_task_id": taskID,
			})
			return
		}
		utils.Message(w, "Updated")
	}
}

// DeleteStaffTask removes a ledger entry (admin only).
func DeleteStaffTask(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "id")
		if taskID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing task id")
			return
		}

		result, err := db.Exec(`DELETE FROM staff_tasks WHERE id = $1`, taskID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Delete failed")
			return
		}
		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Task not found")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
