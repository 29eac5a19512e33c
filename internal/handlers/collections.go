package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/models"
	"smartwaste-backend/internal/roles"
	"smartwaste-backend/pkg/utils"
)

// CreateCollection logs a physical collection event. Worker and driver
// roles record these; a record referencing a pickup task is the mandatory
// evidence for marking that task collected.
func CreateCollection(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateCollectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		date := strings.TrimSpace(req.Date)
		area := strings.TrimSpace(req.Area)
		if date == "" || area == "" {
			utils.Error(w, http.StatusBadRequest, "Fill all fields")
			return
		}
		if !models.ValidWasteType(req.WasteType) {
			utils.Error(w, http.StatusBadRequest, "Waste type must be Wet, Dry or Plastic")
			return
		}
		if req.QuantityKg == nil || *req.QuantityKg <= 0 {
			utils.Error(w, http.StatusBadRequest, "Qty must be > 0")
			return
		}

		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}
		if actor.Role != roles.Worker && actor.Role != roles.Driver {
			utils.Error(w, http.StatusForbidden, "Only workers and drivers record collections")
			return
		}

		recordID := uuid.New().String()
		_, err := db.Exec(`
			INSERT INTO collection_records (id, user_id, date, area, waste_type, quantity_kg, task_id, bin_id, staff_task_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, recordID, actor.ID, date, area, req.WasteType, *req.QuantityKg,
			req.TaskID, req.BinID, req.StaffTaskID, time.Now().Unix())
		if err != nil {
			log.Printf("❌ Collection insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to save collection")
			return
		}

		utils.JSON(w, http.StatusCreated, map[string]string{"message": "Collection saved", "id": recordID})
	}
}

// ListCollections returns the caller's own records; admins see all.
func ListCollections(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		records := []models.CollectionRecord{}
		var err error
		if actor.Role == roles.Admin {
			err = db.Select(&records, `SELECT * FROM collection_records ORDER BY created_at DESC`)
		} else {
			err = db.Select(&records, `SELECT * FROM collection_records WHERE user_id = $1 ORDER BY created_at DESC`, actor.ID)
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch collections")
			return
		}

		utils.Success(w, records)
	}
}

// DeleteCollection removes a record. Owner only; someone else's id just
// looks like a missing record.
func DeleteCollection(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recordID := chi.URLParam(r, "id")
		if recordID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing record id")
			return
		}

		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		result, err := db.Exec(`DELETE FROM collection_records WHERE id = $1 AND user_id = $2`, recordID, actor.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Delete failed")
			return
		}
		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Record not found")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
