package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/database"
	"smartwaste-backend/internal/lifecycle"
	"smartwaste-backend/internal/middleware"
	"smartwaste-backend/internal/models"
	"smartwaste-backend/internal/roles"
	"smartwaste-backend/pkg/utils"
)

// requireActor re-reads the caller's profile from the store and builds the
// lifecycle actor. Authorization never runs off token-cached role/area
// alone. Writes the error response itself when the actor cannot be
// resolved.
func requireActor(db *sqlx.DB, w http.ResponseWriter, r *http.Request) (*models.Profile, lifecycle.Actor, bool) {
	claims, ok := middleware.GetUserFromContext(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return nil, lifecycle.Actor{}, false
	}

	profile, err := database.GetProfile(db, claims.UserID)
	if err == sql.ErrNoRows {
		utils.Error(w, http.StatusUnauthorized, "Profile not found")
		return nil, lifecycle.Actor{}, false
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return nil, lifecycle.Actor{}, false
	}

	actor := lifecycle.Actor{
		ID:   profile.ID,
		Role: roles.Normalize(profile.Role),
		Area: profile.Area,
	}
	return profile, actor, true
}

func lifecycleErrorStatus(err error) int {
	if errors.Is(err, lifecycle.ErrOutOfOrder) {
		return http.StatusBadRequest
	}
	return http.StatusForbidden
}

type TaskListResponse struct {
	PickupTasks []models.PickupTask `json:"pickup_tasks"`
	StaffTasks  []models.StaffTask  `json:"staff_tasks"`
}

// ListTasks returns the pickup and staff tasks visible to the given user:
//   - worker/driver: tasks assigned to them
//   - recycling_manager: tasks in their area, post-delivery statuses
//   - admin: everything
//
// Callers may only list their own userid unless they are admin.
func ListTasks(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userid")
		if userID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing userid")
			return
		}

		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}
		if actor.ID != userID && actor.Role != roles.Admin {
			utils.Error(w, http.StatusForbidden, "You can only list your own tasks")
			return
		}

		// The visibility filter is built from the listed user's stored
		// role/area, not the caller's token.
		target, err := database.GetProfile(db, userID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Profile not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}
		targetRole := roles.Normalize(target.Role)

		pickupTasks := []models.PickupTask{}
		filter := roles.TaskFilter(targetRole, target.ID, target.Area)
		query := `SELECT * FROM pickup_tasks`
		if !filter.Unrestricted() {
			query += " WHERE " + filter.Where
		}
		query += " ORDER BY created_at DESC"
		if err := db.Select(&pickupTasks, query, filter.Args...); err != nil {
			log.Printf("❌ Failed to fetch pickup tasks: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch tasks")
			return
		}

		staffTasks := []models.StaffTask{}
		staffFilter := roles.StaffTaskFilter(targetRole, target.ID)
		staffQuery := `SELECT * FROM staff_tasks`
		if !staffFilter.Unrestricted() {
			staffQuery += " WHERE " + staffFilter.Where
		}
		staffQuery += " ORDER BY created_at DESC"
		if err := db.Select(&staffTasks, staffQuery, staffFilter.Args...); err != nil {
			log.Printf("❌ Failed to fetch staff tasks: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch tasks")
			return
		}

		utils.Success(w, TaskListResponse{PickupTasks: pickupTasks, StaffTasks: staffTasks})
	}
}

// CollectTask enacts OPEN→COLLECTED. Requires a pre-existing collection
// record referencing the task; without one the caller is pointed back to
// the collection screen and nothing is written. On success the bin is
// forced back to Empty and a COLLECTION entry is appended to the staff
// ledger. Both are best-effort and logged on failure.
func CollectTask(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "taskid")
		if taskID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing taskid")
			return
		}

		var req models.CollectRequest
		// An empty body is fine since collected_kg is optional, but anything
		// sent must parse.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := lifecycle.ValidateCollectedKg(req.CollectedKg); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		profile, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		task, err := database.GetPickupTask(db, taskID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		if err := lifecycle.CanAdvance(task, lifecycle.StatusCollected, actor); err != nil {
			utils.Error(w, lifecycleErrorStatus(err), err.Error())
			return
		}

		hasRecord, err := database.HasCollectionRecord(db, taskID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to check collection records")
			return
		}
		if !hasRecord {
			utils.JSON(w, http.StatusBadRequest, map[string]string{
				"error":    "Collection entry is mandatory. Save a collection record for this task first.",
				"redirect": "collection",
			})
			return
		}

		// Status, kg and timestamp go out as one write; the guard on the
		// previous status drops the update if the task moved meanwhile.
		result, err := db.Exec(`
			UPDATE pickup_tasks
			SET status = 'COLLECTED', collected_kg = COALESCE($1, collected_kg), collected_at = $2
			WHERE id = $3 AND status = 'OPEN'
		`, req.CollectedKg, time.Now().Unix(), taskID)
		if err != nil {
			log.Printf("❌ Collect update failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Collect update failed")
			return
		}
		if rows, err := result.RowsAffected(); err == nil && rows == 0 {
			utils.Error(w, http.StatusConflict, "Task is no longer OPEN")
			return
		}

		// Dependent writes are independent of the status update; a failure
		// here is logged, never surfaced as a request failure.
		if task.BinID != nil {
			if err := database.SetBinStatusByBinID(db, *task.BinID, models.BinStatusEmpty, actor.ID); err != nil {
				log.Printf("⚠️  Bin status sync failed for task %s: %v", taskID, err)
			}
		}
		if err := database.AppendCollectionLog(db, task, profile); err != nil {
			log.Printf("⚠️  Activity log insert failed for task %s: %v", taskID, err)
		}

		log.Printf("✅ Task %s marked COLLECTED by %s", taskID, profile.Email)
		utils.Message(w, "Marked collected")
	}
}

// DeliverTask enacts COLLECTED→DELIVERED for the assigned driver.
func DeliverTask(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "taskid")
		if taskID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing taskid")
			return
		}

		profile, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		task, err := database.GetPickupTask(db, taskID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		if err := lifecycle.CanAdvance(task, lifecycle.StatusDelivered, actor); err != nil {
			utils.Error(w, lifecycleErrorStatus(err), err.Error())
			return
		}

		result, err := db.Exec(`
			UPDATE pickup_tasks
			SET status = 'DELIVERED', delivered_at = $1
			WHERE id = $2 AND status = 'COLLECTED'
		`, time.Now().Unix(), taskID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Deliver update failed")
			return
		}
		if rows, err := result.RowsAffected(); err == nil && rows == 0 {
			utils.Error(w, http.StatusConflict, "Task is no longer COLLECTED")
			return
		}

		log.Printf("✅ Task %s marked DELIVERED by %s", taskID, profile.Email)
		utils.Message(w, "Marked delivered")
	}
}

// ReceiveTask enacts DELIVERED→RECEIVED for a recycling manager in the
// task's area. received_kg is mandatory.
func ReceiveTask(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "taskid")
		if taskID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing taskid")
			return
		}

		var req models.ReceiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := lifecycle.ValidateReceivedKg(req.ReceivedKg); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		profile, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		task, err := database.GetPickupTask(db, taskID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		if err := lifecycle.CanAdvance(task, lifecycle.StatusReceived, actor); err != nil {
			utils.Error(w, lifecycleErrorStatus(err), err.Error())
			return
		}

		result, err := db.Exec(`
			UPDATE pickup_tasks
			SET status = 'RECEIVED', received_kg = $1, received_at = $2
			WHERE id = $3 AND status = 'DELIVERED'
		`, *req.ReceivedKg, time.Now().Unix(), taskID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Receive update failed")
			return
		}
		if rows, err := result.RowsAffected(); err == nil && rows == 0 {
			utils.Error(w, http.StatusConflict, "Task is no longer DELIVERED")
			return
		}

		log.Printf("✅ Task %s marked RECEIVED by %s", taskID, profile.Email)
		utils.Message(w, "Marked received")
	}
}

// RecycleTask enacts the terminal RECEIVED→RECYCLED transition. Both
// recycled_kg and recycle_percent are required; percent outside [0,100]
// aborts with no write.
func RecycleTask(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "taskid")
		if taskID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing taskid")
			return
		}

		var req models.RecycleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.RecycledKg == nil || req.RecyclePercent == nil {
			utils.Error(w, http.StatusBadRequest, "recycled_kg and recycle_percent are required")
			return
		}
		if err := lifecycle.ValidateRecycleInputs(req.RecycledKg, req.RecyclePercent); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		profile, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		task, err := database.GetPickupTask(db, taskID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		if err := lifecycle.CanAdvance(task, lifecycle.StatusRecycled, actor); err != nil {
			utils.Error(w, lifecycleErrorStatus(err), err.Error())
			return
		}

		result, err := db.Exec(`
			UPDATE pickup_tasks
			SET status = 'RECYCLED', recycled_kg = $1, recycle_percent = $2, recycled_at = $3
			WHERE id = $4 AND status = 'RECEIVED'
		`, *req.RecycledKg, *req.RecyclePercent, time.Now().Unix(), taskID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Recycling update failed")
			return
		}
		if rows, err := result.RowsAffected(); err == nil && rows == 0 {
			utils.Error(w, http.StatusConflict, "Task is no longer RECEIVED")
			return
		}

		log.Printf("✅ Task %s marked RECYCLED by %s", taskID, profile.Email)
		utils.Message(w, "Recycling recorded")
	}
}

// CreatePickupTask is the admin-only manual task creation. When no staff
// is named, the first available worker and driver in the area are picked.
func CreatePickupTask(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.CreatePickupTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Area == "" {
			utils.Error(w, http.StatusBadRequest, "Area is required")
			return
		}

		priority := req.Priority
		if priority == "" {
			priority = "High"
		}

		workerID := req.AssignedWorkerID
		driverID := req.AssignedDriverID
		var err error
		if workerID == nil {
			workerID, err = database.FirstProfileInArea(db, "worker", req.Area)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "Failed to assign worker")
				return
			}
		}
		if driverID == nil {
			driverID, err = database.FirstProfileInArea(db, "driver", req.Area)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "Failed to assign driver")
				return
			}
		}

		taskID := uuid.New().String()
		_, err = db.Exec(`
			INSERT INTO pickup_tasks (id, bin_id, area, status, assigned_worker_id, assigned_driver_id, priority, notes, assigned_by, created_at)
			VALUES ($1, $2, $3, 'OPEN', $4, $5, $6, $7, $8, $9)
		`, taskID, req.BinID, req.Area, workerID, driverID, priority, req.Notes, claims.UserID, time.Now().Unix())
		if err != nil {
			log.Printf("❌ Manual task insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create task")
			return
		}

		utils.JSON(w, http.StatusCreated, map[string]string{"message": "Task created", "id": taskID})
	}
}
