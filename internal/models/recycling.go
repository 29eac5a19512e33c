package models

// RecyclingEntry is a row of the facility-level recycling ledger, recorded
// per day and waste type by recycling managers.
type RecyclingEntry struct {
	ID         string  `json:"id" db:"id"`
	Date       string  `json:"date" db:"date"` // YYYY-MM-DD
	WasteType  string  `json:"waste_type" db:"waste_type"`
	InputKg    float64 `json:"input_kg" db:"input_kg"`
	RecycledKg float64 `json:"recycled_kg" db:"recycled_kg"`
	LandfillKg float64 `json:"landfill_kg" db:"landfill_kg"`
	CreatedAt  int64   `json:"created_at" db:"created_at"`
}

type CreateRecyclingRequest struct {
	Date       string   `json:"date"`
	WasteType  string   `json:"waste_type"`
	InputKg    *float64 `json:"input_kg"`
	RecycledKg *float64 `json:"recycled_kg"`
	LandfillKg *float64 `json:"landfill_kg"`
}
