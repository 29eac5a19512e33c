package reports_test

import (
	"testing"

	"smartwaste-backend/internal/models"
	"smartwaste-backend/internal/reports"
)

func f64Ptr(v float64) *float64 { return &v }

func TestTotalCollectedKg(t *testing.T) {
	records := []models.CollectionRecord{
		{WasteType: models.WasteTypeWet, QuantityKg: 10},
		{WasteType: models.WasteTypeDry, QuantityKg: 5},
	}
	if got := reports.TotalCollectedKg(records); got != 15 {
		t.Errorf("total = %v, want 15", got)
	}
	if got := reports.TotalCollectedKg(nil); got != 0 {
		t.Errorf("empty total = %v, want 0", got)
	}
}

func TestCountFullBins(t *testing.T) {
	bins := []models.Bin{
		{BinID: "B-001", Status: models.BinStatusFull},
		{BinID: "B-002", Status: models.BinStatusHalf},
		{BinID: "B-003", Status: models.BinStatusFull},
		{BinID: "B-004", Status: models.BinStatusEmpty},
	}
	if got := reports.CountFullBins(bins); got != 2 {
		t.Errorf("full bins = %d, want 2", got)
	}
}

func TestTotalRecycledKgOnlyCountsTerminalTasks(t *testing.T) {
	tasks := []models.PickupTask{
		{Status: "RECYCLED", RecycledKg: f64Ptr(7)},
		{Status: "RECYCLED", RecycledKg: f64Ptr(3)},
		{Status: "RECEIVED", RecycledKg: f64Ptr(100)}, // not terminal yet
		{Status: "RECYCLED", RecycledKg: nil},
	}
	if got := reports.TotalRecycledKg(tasks); got != 10 {
		t.Errorf("recycled total = %v, want 10", got)
	}
}

func TestLedgerTotals(t *testing.T) {
	entries := []models.RecyclingEntry{
		{InputKg: 20, RecycledKg: 12, LandfillKg: 8},
		{InputKg: 10, RecycledKg: 4, LandfillKg: 6},
	}
	recycled, landfill := reports.LedgerTotals(entries)
	if recycled != 16 || landfill != 14 {
		t.Errorf("ledger totals = %v/%v, want 16/14", recycled, landfill)
	}
}

func TestPerWasteTypeZeroFillsKnownTypes(t *testing.T) {
	records := []models.CollectionRecord{
		{WasteType: models.WasteTypeWet, QuantityKg: 10},
		{WasteType: models.WasteTypeDry, QuantityKg: 5},
	}
	totals := reports.PerWasteType(records)
	if totals[models.WasteTypeWet] != 10 || totals[models.WasteTypeDry] != 5 {
		t.Errorf("totals = %v", totals)
	}
	if v, ok := totals[models.WasteTypePlastic]; !ok || v != 0 {
		t.Errorf("Plastic must be present and zero, got %v (present=%v)", v, ok)
	}
}

func TestPerWasteTypeKeepsUnknownBuckets(t *testing.T) {
	records := []models.CollectionRecord{
		{WasteType: "Glass", QuantityKg: 3},
	}
	totals := reports.PerWasteType(records)
	if totals["Glass"] != 3 {
		t.Errorf("unexpected stored type should keep its bucket, got %v", totals)
	}
}

func TestBarPercents(t *testing.T) {
	percents := reports.BarPercents(map[string]float64{
		"Wet": 10, "Dry": 5, "Plastic": 0,
	})
	if percents["Wet"] != 100 || percents["Dry"] != 50 || percents["Plastic"] != 0 {
		t.Errorf("percents = %v", percents)
	}
}

func TestBarPercentsAllZero(t *testing.T) {
	percents := reports.BarPercents(map[string]float64{
		"Wet": 0, "Dry": 0, "Plastic": 0,
	})
	for k, v := range percents {
		if v != 0 {
			t.Errorf("%s = %d, want 0 (no divide-by-zero blowup)", k, v)
		}
	}
}
