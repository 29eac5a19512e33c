package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/database"
	"smartwaste-backend/internal/models"
	"smartwaste-backend/pkg/utils"
)

func GetBins(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bins []models.Bin
		err := db.Select(&bins, `
			SELECT id, bin_id, area, status, updated_by, created_at, updated_at
			FROM bins
			ORDER BY updated_at DESC
		`)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch bins")
			return
		}

		responses := make([]models.BinResponse, len(bins))
		for i, bin := range bins {
			responses[i] = bin.ToBinResponse()
		}
		utils.Success(w, responses)
	}
}

// SaveBin upserts a bin by its human-entered code. Reporting a bin Full
// idempotently provisions an OPEN pickup task for it, auto-assigned to the
// first worker and driver found in the bin's area.
func SaveBin(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SaveBinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		binID := strings.TrimSpace(req.BinID)
		area := strings.TrimSpace(req.Area)
		if binID == "" || area == "" {
			utils.Error(w, http.StatusBadRequest, "Enter Bin ID and Area")
			return
		}
		if !models.ValidBinStatus(req.Status) {
			utils.Error(w, http.StatusBadRequest, "Status must be Empty, Half or Full")
			return
		}

		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}

		now := time.Now().Unix()
		var existingID string
		err := db.Get(&existingID, `SELECT id FROM bins WHERE bin_id = $1`, binID)
		switch {
		case err == sql.ErrNoRows:
			_, err = db.Exec(`
				INSERT INTO bins (id, bin_id, area, status, updated_by, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, uuid.New().String(), binID, area, req.Status, actor.ID, now, now)
		case err == nil:
			_, err = db.Exec(`
				UPDATE bins SET area = $1, status = $2, updated_by = $3, updated_at = $4
				WHERE id = $5
			`, area, req.Status, actor.ID, now, existingID)
		default:
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}
		if err != nil {
			log.Printf("❌ Bin save failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to save bin")
			return
		}

		taskCreated := false
		if req.Status == models.BinStatusFull {
			taskCreated, err = database.EnsureOpenPickupTask(db, binID, area, actor.ID)
			if err != nil {
				log.Printf("❌ Pickup task provisioning failed for bin %s: %v", binID, err)
				utils.Error(w, http.StatusInternalServerError, "Bin saved but task creation failed")
				return
			}
		}

		utils.Success(w, map[string]interface{}{
			"message":      "Bin saved",
			"task_created": taskCreated,
		})
	}
}
