package models

// Staff task types. COLLECTION entries are appended automatically when a
// pickup task is marked collected; TRIP and MANUAL are assigned by admins.
const (
	StaffTaskTypeTrip       = "TRIP"
	StaffTaskTypeManual     = "MANUAL"
	StaffTaskTypeCollection = "COLLECTION"
)

type StaffTask struct {
	ID          string  `json:"id" db:"id"`
	TaskType    string  `json:"task_type" db:"task_type"`
	AssignedTo  string  `json:"assigned_to" db:"assigned_to"`
	VehicleID   *string `json:"vehicle_id,omitempty" db:"vehicle_id"`
	Route       *string `json:"route,omitempty" db:"route"`
	Shift       *string `json:"shift,omitempty" db:"shift"`
	Date        *string `json:"date,omitempty" db:"date"` // YYYY-MM-DD
	Status      string  `json:"status" db:"status"`       // Assigned, Started, Completed
	StartedAt   *int64  `json:"started_at,omitempty" db:"started_at"`
	CompletedAt *int64  `json:"completed_at,omitempty" db:"completed_at"`
	TaskID      *string `json:"task_id,omitempty" db:"task_id"` // optional backlink to pickup task
	CreatedBy   *string `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   int64   `json:"created_at" db:"created_at"`
}

// CreateStaffTaskRequest is the admin body for POST /staff-tasks.
// Assignee is looked up by exact full name, or by email when it contains "@".
type CreateStaffTaskRequest struct {
	TaskType  string `json:"task_type"`
	Assignee  string `json:"assignee"`
	VehicleID string `json:"vehicle_id"`
	Route     string `json:"route"`
	Shift     string `json:"shift"`
	Date      string `json:"date"`
}

// UpdateStaffTaskStatusRequest is the body for POST /staff-tasks/:id/status
type UpdateStaffTaskStatusRequest struct {
	Status string `json:"status"`
}
