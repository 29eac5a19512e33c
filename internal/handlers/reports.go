package handlers

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/models"
	"smartwaste-backend/internal/reports"
	"smartwaste-backend/pkg/utils"
)

// Dashboard returns the headline KPI figures: total kg collected, bins
// currently full, kg recycled through the pickup workflow, and the
// recycling-plant ledger totals.
func Dashboard(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := []models.CollectionRecord{}
		if err := db.Select(&records, `SELECT * FROM collection_records`); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch collections")
			return
		}

		bins := []models.Bin{}
		if err := db.Select(&bins, `SELECT * FROM bins`); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch bins")
			return
		}

		tasks := []models.PickupTask{}
		if err := db.Select(&tasks, `SELECT * FROM pickup_tasks`); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch tasks")
			return
		}

		entries := []models.RecyclingEntry{}
		if err := db.Select(&entries, `SELECT * FROM recycling`); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch recycling entries")
			return
		}

		recycledKg, landfillKg := reports.LedgerTotals(entries)
		utils.Success(w, map[string]interface{}{
			"total_collected_kg": reports.TotalCollectedKg(records),
			"full_bins":          reports.CountFullBins(bins),
			"total_recycled_kg":  reports.TotalRecycledKg(tasks),
			"ledger_recycled_kg": recycledKg,
			"ledger_landfill_kg": landfillKg,
			"open_tasks":         countOpenTasks(tasks),
		})
	}
}

func countOpenTasks(tasks []models.PickupTask) int {
	count := 0
	for _, t := range tasks {
		if t.Status == "OPEN" {
			count++
		}
	}
	return count
}

// WasteTypes returns per-type collected totals plus bar heights normalized
// against the biggest bucket, ready for the report chart.
func WasteTypes(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := []models.CollectionRecord{}
		if err := db.Select(&records, `SELECT * FROM collection_records`); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch collections")
			return
		}

		totals := reports.PerWasteType(records)
		utils.Success(w, map[string]interface{}{
			"total_kg":     reports.TotalCollectedKg(records),
			"by_type_kg":   totals,
			"bar_percents": reports.BarPercents(totals),
		})
	}
}
