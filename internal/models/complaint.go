package models

const (
	ComplaintStatusOpen       = "Open"
	ComplaintStatusInProgress = "In Progress"
	ComplaintStatusResolved   = "Resolved"
)

type Complaint struct {
	ID          string  `json:"id" db:"id"`
	CitizenName string  `json:"citizen_name" db:"citizen_name"`
	Area        string  `json:"area" db:"area"`
	Issue       string  `json:"issue" db:"issue"`
	Priority    string  `json:"priority" db:"priority"` // Low, Medium, High
	Status      string  `json:"status" db:"status"`
	CreatedBy   *string `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   int64   `json:"created_at" db:"created_at"`
}

type CreateComplaintRequest struct {
	CitizenName string `json:"citizen_name"`
	Area        string `json:"area"`
	Issue       string `json:"issue"`
	Priority    string `json:"priority"`
}

// NextComplaintStatus returns the next status in the complaint workflow,
// or "" when the complaint is already resolved.
func NextComplaintStatus(status string) string {
	switch status {
	case ComplaintStatusOpen:
		return ComplaintStatusInProgress
	case ComplaintStatusInProgress:
		return ComplaintStatusResolved
	}
	return ""
}
