// Package reports computes dashboard and report figures from already
// fetched rows. Nothing is cached; every request recomputes.
package reports

import (
	"smartwaste-backend/internal/lifecycle"
	"smartwaste-backend/internal/models"
)

// TotalCollectedKg sums quantity_kg across collection records.
func TotalCollectedKg(records []models.CollectionRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.QuantityKg
	}
	return total
}

// CountFullBins counts bins currently reported Full.
func CountFullBins(bins []models.Bin) int {
	count := 0
	for _, b := range bins {
		if b.Status == models.BinStatusFull {
			count++
		}
	}
	return count
}

// TotalRecycledKg sums recycled_kg across pickup tasks that reached the
// terminal RECYCLED status.
func TotalRecycledKg(tasks []models.PickupTask) float64 {
	var total float64
	for _, t := range tasks {
		if lifecycle.Status(t.Status) == lifecycle.StatusRecycled && t.RecycledKg != nil {
			total += *t.RecycledKg
		}
	}
	return total
}

// LedgerTotals sums the recycling ledger into recycled and landfill totals.
func LedgerTotals(entries []models.RecyclingEntry) (recycledKg, landfillKg float64) {
	for _, e := range entries {
		recycledKg += e.RecycledKg
		landfillKg += e.LandfillKg
	}
	return recycledKg, landfillKg
}

// PerWasteType groups collection records into per-type kg totals. The three
// known waste types are always present, zero-filled; unexpected stored
// values still get their own bucket rather than being dropped.
func PerWasteType(records []models.CollectionRecord) map[string]float64 {
	totals := map[string]float64{
		models.WasteTypeWet:     0,
		models.WasteTypeDry:     0,
		models.WasteTypePlastic: 0,
	}
	for _, r := range records {
		totals[r.WasteType] += r.QuantityKg
	}
	return totals
}

// BarPercents normalizes bucket totals to 0-100 bar heights against the
// largest bucket. The denominator is floored at 1 so an all-zero report
// never divides by zero.
func BarPercents(totals map[string]float64) map[string]int {
	max := 0.0
	for _, v := range totals {
		if v > max {
			max = v
		}
	}
	if max < 1 {
		max = 1
	}
	percents := make(map[string]int, len(totals))
	for k, v := range totals {
		percents[k] = int(v / max * 100)
	}
	return percents
}
