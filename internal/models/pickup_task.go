package models

type PickupTask struct {
	ID               string   `json:"id" db:"id"`
	BinID            *string  `json:"bin_id,omitempty" db:"bin_id"` // null for manually created tasks
	Area             string   `json:"area" db:"area"`
	Status           string   `json:"status" db:"status"`
	AssignedWorkerID *string  `json:"assigned_worker_id,omitempty" db:"assigned_worker_id"`
	AssignedDriverID *string  `json:"assigned_driver_id,omitempty" db:"assigned_driver_id"`
	CollectedKg      *float64 `json:"collected_kg,omitempty" db:"collected_kg"`
	ReceivedKg       *float64 `json:"received_kg,omitempty" db:"received_kg"`
	RecycledKg       *float64 `json:"recycled_kg,omitempty" db:"recycled_kg"`
	RecyclePercent   *float64 `json:"recycle_percent,omitempty" db:"recycle_percent"`
	CollectedAt      *int64   `json:"collected_at,omitempty" db:"collected_at"`
	DeliveredAt      *int64   `json:"delivered_at,omitempty" db:"delivered_at"`
	ReceivedAt       *int64   `json:"received_at,omitempty" db:"received_at"`
	RecycledAt       *int64   `json:"recycled_at,omitempty" db:"recycled_at"`
	Priority         string   `json:"priority" db:"priority"`
	Notes            *string  `json:"notes,omitempty" db:"notes"`
	AssignedBy       *string  `json:"assigned_by,omitempty" db:"assigned_by"`
	CreatedAt        int64    `json:"created_at" db:"created_at"`
}

// CollectRequest is the body for POST /tasks/collect/:taskid.
// collected_kg is optional; when present it must be > 0.
type CollectRequest struct {
	CollectedKg *float64 `json:"collected_kg"`
}

// ReceiveRequest is the body for POST /tasks/receive/:taskid
type ReceiveRequest struct {
	ReceivedKg *float64 `json:"received_kg"`
}

// RecycleRequest is the body for POST /tasks/recycle/:taskid
type RecycleRequest struct {
	RecycledKg     *float64 `json:"recycled_kg"`
	RecyclePercent *float64 `json:"recycle_percent"`
}

// CreatePickupTaskRequest is the body for the admin-only POST /tasks
type CreatePickupTaskRequest struct {
	BinID            *string `json:"bin_id"`
	Area             string  `json:"area"`
	Priority         string  `json:"priority"`
	Notes            *string `json:"notes"`
	AssignedWorkerID *string `json:"assigned_worker_id"`
	AssignedDriverID *string `json:"assigned_driver_id"`
}
