package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/models"
	"smartwaste-backend/internal/roles"
	"smartwaste-backend/pkg/utils"
)

// CreateRecycling adds a plant-side processing entry. Restricted to the
// recycling manager (and admins).
func CreateRecycling(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateRecyclingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		date := strings.TrimSpace(req.Date)
		if date == "" {
			utils.Error(w, http.StatusBadRequest, "Date is required")
			return
		}
		if !models.ValidWasteType(req.WasteType) {
			utils.Error(w, http.StatusBadRequest, "Waste type must be Wet, Dry or Plastic")
			return
		}
		if req.InputKg == nil || req.RecycledKg == nil || req.LandfillKg == nil {
			utils.Error(w, http.StatusBadRequest, "input_kg, recycled_kg and landfill_kg are required")
			return
		}
		if *req.InputKg < 0 || *req.RecycledKg < 0 || *req.LandfillKg < 0 {
			utils.Error(w, http.StatusBadRequest, "Quantities cannot be negative")
			return
		}
		if *req.RecycledKg+*req.LandfillKg > *req.InputKg {
			utils.Error(w, http.StatusBadRequest, "Recycled plus landfill cannot exceed input")
			return
		}

		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}
		if actor.Role != roles.Admin && actor.Role != roles.RecyclingManager {
			utils.Error(w, http.StatusForbidden, "Recycling access required")
			return
		}

		entryID := uuid.New().String()
		_, err := db.Exec(`
			INSERT INTO recycling (id, date, waste_type, input_kg, recycled_kg, landfill_kg, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, entryID, date, req.WasteType, *req.InputKg, *req.RecycledKg, *req.LandfillKg, time.Now().Unix())
		if err != nil {
			log.Printf("❌ Recycling insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to save recycling entry")
			return
		}

		utils.JSON(w, http.StatusCreated, map[string]string{"message": "Recycling entry saved", "id": entryID})
	}
}

// ListRecycling returns all plant entries, newest first.
func ListRecycling(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, actor, ok := requireActor(db, w, r)
		if !ok {
			return
		}
		if actor.Role != roles.Admin && actor.Role != roles.RecyclingManager {
			utils.Error(w, http.StatusForbidden, "Recycling access required")
			return
		}

		entries := []models.RecyclingEntry{}
		if err := db.Select(&entries, `SELECT * FROM recycling ORDER BY created_at DESC`); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch recycling entries")
			return
		}

		utils.Success(w, entries)
	}
}
