package lifecycle

import "smartwaste-backend/internal/models"

type StaffStatus string

const (
	StaffAssigned  StaffStatus = "Assigned"
	StaffStarted   StaffStatus = "Started"
	StaffCompleted StaffStatus = "Completed"
)

var staffOrder = map[StaffStatus]int{
	StaffAssigned:  0,
	StaffStarted:   1,
	StaffCompleted: 2,
}

func (s StaffStatus) Valid() bool {
	_, ok := staffOrder[s]
	return ok
}

// NextStaffStatus returns the step after s, or false when s is terminal
// or unknown.
func NextStaffStatus(s StaffStatus) (StaffStatus, bool) {
	switch s {
	case StaffAssigned:
		return StaffStarted, true
	case StaffStarted:
		return StaffCompleted, true
	}
	return "", false
}

// CanAdvanceStaff checks a staff-task transition. Only the assigned actor
// may advance it; admins watch the ledger but get no action rights.
func CanAdvanceStaff(task *models.StaffTask, to StaffStatus, actor Actor) error {
	from := StaffStatus(task.Status)
	if !from.Valid() || !to.Valid() {
		return ErrOutOfOrder
	}
	next, ok := NextStaffStatus(from)
	if !ok || next != to {
		return ErrOutOfOrder
	}
	if task.AssignedTo != actor.ID {
		return ErrNotAssigned
	}
	return nil
}
