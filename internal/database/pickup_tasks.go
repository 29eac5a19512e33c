package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/models"
)

// GetPickupTask fetches a single pickup task by id. Used on write paths,
// which bypass the visibility filter; the transition checks still apply.
func GetPickupTask(db *sqlx.DB, taskID string) (*models.PickupTask, error) {
	var task models.PickupTask
	err := db.Get(&task, `SELECT * FROM pickup_tasks WHERE id = $1`, taskID)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// HasCollectionRecord reports whether any collection record references the
// task. This is the hard precondition for the OPEN→COLLECTED transition.
func HasCollectionRecord(db *sqlx.DB, taskID string) (bool, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM collection_records WHERE task_id = $1`, taskID)
	if err != nil {
		return false, fmt.Errorf("failed to check collection records: %w", err)
	}
	return count > 0, nil
}

// EnsureOpenPickupTask makes sure at most one OPEN pickup task exists for
// the bin, creating it with the first available worker and driver in the
// same area. First match means whatever row the database returns first;
// ordering is not guaranteed. The check-then-create is racy under
// concurrent Full reports; that race is accepted and documented rather
// than locked around.
func EnsureOpenPickupTask(db *sqlx.DB, binID, area, reportedBy string) (bool, error) {
	var existing int
	err := db.Get(&existing, `
		SELECT COUNT(*) FROM pickup_tasks
		WHERE bin_id = $1 AND status = 'OPEN'
	`, binID)
	if err != nil {
		return false, fmt.Errorf("failed to check open tasks: %w", err)
	}
	if existing > 0 {
		return false, nil
	}

	workerID, err := FirstProfileInArea(db, "worker", area)
	if err != nil {
		return false, err
	}
	driverID, err := FirstProfileInArea(db, "driver", area)
	if err != nil {
		return false, err
	}

	_, err = db.Exec(`
		INSERT INTO pickup_tasks (id, bin_id, area, status, assigned_worker_id, assigned_driver_id, priority, assigned_by, created_at)
		VALUES ($1, $2, $3, 'OPEN', $4, $5, 'High', $6, $7)
	`, uuid.New().String(), binID, area, workerID, driverID, reportedBy, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("failed to create pickup task: %w", err)
	}
	return true, nil
}

// FirstProfileInArea returns the id of some profile with the given role in
// the area, or nil when none exists. "First" is whatever the store returns
// first; no ordering is guaranteed unless the area roster is small.
func FirstProfileInArea(db *sqlx.DB, role, area string) (*string, error) {
	var id string
	err := db.Get(&id, `SELECT id FROM profiles WHERE role = $1 AND area = $2 LIMIT 1`, role, area)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s in area %s: %w", role, area, err)
	}
	return &id, nil
}

// SetBinStatusByBinID updates a bin's fill status by its business key.
// Used as the collect side effect forcing the bin back to Empty.
func SetBinStatusByBinID(db *sqlx.DB, binID, status, updatedBy string) error {
	_, err := db.Exec(`
		UPDATE bins SET status = $1, updated_by = $2, updated_at = $3
		WHERE bin_id = $4
	`, status, updatedBy, time.Now().Unix(), binID)
	if err != nil {
		return fmt.Errorf("failed to update bin %s: %w", binID, err)
	}
	return nil
}

// AppendCollectionLog records a completed collection in the staff-task
// ledger, carrying the task's area as the route and the collecting staff's
// name. Best-effort: callers log failures instead of failing the request.
func AppendCollectionLog(db *sqlx.DB, task *models.PickupTask, staff *models.Profile) error {
	route := task.Area
	date := time.Now().UTC().Format("2006-01-02")
	_, err := db.Exec(`
		INSERT INTO staff_tasks (id, task_type, assigned_to, vehicle_id, route, shift, date, status, completed_at, task_id, created_by, created_at)
		VALUES ($1, 'COLLECTION', $2, $3, $4, NULL, $5, 'Completed', $6, $7, $8, $9)
	`, uuid.New().String(), staff.ID, nil, route, date, time.Now().Unix(), task.ID, staff.ID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to append collection log: %w", err)
	}
	return nil
}

// GetProfile fetches a profile row by id.
func GetProfile(db *sqlx.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.Get(&profile, `SELECT * FROM profiles WHERE id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
