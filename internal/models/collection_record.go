package models

const (
	WasteTypeWet     = "Wet"
	WasteTypeDry     = "Dry"
	WasteTypePlastic = "Plastic"
)

// CollectionRecord is the logged evidence of a physical waste collection.
// A pickup task may not be marked COLLECTED before one exists for it.
type CollectionRecord struct {
	ID          string  `json:"id" db:"id"`
	UserID      string  `json:"user_id" db:"user_id"`
	Date        string  `json:"date" db:"date"` // YYYY-MM-DD
	Area        string  `json:"area" db:"area"`
	WasteType   string  `json:"waste_type" db:"waste_type"`
	QuantityKg  float64 `json:"quantity_kg" db:"quantity_kg"`
	TaskID      *string `json:"task_id,omitempty" db:"task_id"`
	BinID       *string `json:"bin_id,omitempty" db:"bin_id"`
	StaffTaskID *string `json:"staff_task_id,omitempty" db:"staff_task_id"`
	CreatedAt   int64   `json:"created_at" db:"created_at"`
}

type CreateCollectionRequest struct {
	Date        string   `json:"date"`
	Area        string   `json:"area"`
	WasteType   string   `json:"waste_type"`
	QuantityKg  *float64 `json:"quantity_kg"`
	TaskID      *string  `json:"task_id"`
	BinID       *string  `json:"bin_id"`
	StaffTaskID *string  `json:"staff_task_id"`
}

func ValidWasteType(wasteType string) bool {
	return wasteType == WasteTypeWet || wasteType == WasteTypeDry || wasteType == WasteTypePlastic
}
