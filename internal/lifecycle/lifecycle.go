// Package lifecycle holds the pickup-task and staff-task state machines:
// which transitions exist, who may perform them, and what inputs they
// require. It is pure; handlers perform the actual writes.
package lifecycle

import (
	"errors"
	"math"

	"smartwaste-backend/internal/models"
	"smartwaste-backend/internal/roles"
)

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusCollected Status = "COLLECTED"
	StatusDelivered Status = "DELIVERED"
	StatusReceived  Status = "RECEIVED"
	StatusRecycled  Status = "RECYCLED"
)

// Pickup tasks only ever move forward through this order.
var statusOrder = map[Status]int{
	StatusOpen:      0,
	StatusCollected: 1,
	StatusDelivered: 2,
	StatusReceived:  3,
	StatusRecycled:  4,
}

var (
	ErrOutOfOrder  = errors.New("pickup tasks only advance one step forward through OPEN, COLLECTED, DELIVERED, RECEIVED, RECYCLED")
	ErrWrongRole   = errors.New("this transition is not allowed for your role")
	ErrNotAssigned = errors.New("only the staff assigned to this task can update it")
	ErrWrongArea   = errors.New("this task belongs to a different area")
)

func (s Status) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Next returns the following status, or false when s is terminal or unknown.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusOpen:
		return StatusCollected, true
	case StatusCollected:
		return StatusDelivered, true
	case StatusDelivered:
		return StatusReceived, true
	case StatusReceived:
		return StatusRecycled, true
	}
	return "", false
}

func (s Status) Terminal() bool {
	return s == StatusRecycled
}

// Actor is the authenticated staff member attempting a transition, with
// role and area re-read from the profile store.
type Actor struct {
	ID   string
	Role roles.Role
	Area string
}

// CanAdvance checks a single pickup-task transition: one step forward only,
// and the right actor for each step. Admins get visibility over every task
// but never implicit transition rights.
func CanAdvance(task *models.PickupTask, to Status, actor Actor) error {
	from := Status(task.Status)
	if !from.Valid() || !to.Valid() {
		return ErrOutOfOrder
	}
	next, ok := from.Next()
	if !ok || next != to {
		return ErrOutOfOrder
	}

	switch to {
	case StatusCollected:
		if actor.Role != roles.Worker && actor.Role != roles.Driver {
			return ErrWrongRole
		}
		if !assignedTo(task, actor.ID) {
			return ErrNotAssigned
		}
	case StatusDelivered:
		if actor.Role != roles.Driver {
			return ErrWrongRole
		}
		if task.AssignedDriverID == nil || *task.AssignedDriverID != actor.ID {
			return ErrNotAssigned
		}
	case StatusReceived, StatusRecycled:
		if actor.Role != roles.RecyclingManager {
			return ErrWrongRole
		}
		if actor.Area != task.Area {
			return ErrWrongArea
		}
	}
	return nil
}

func assignedTo(task *models.PickupTask, actorID string) bool {
	if task.AssignedWorkerID != nil && *task.AssignedWorkerID == actorID {
		return true
	}
	if task.AssignedDriverID != nil && *task.AssignedDriverID == actorID {
		return true
	}
	return false
}

var (
	ErrKgRequired      = errors.New("a valid kg value is required")
	ErrKgInvalid       = errors.New("kg must be a number greater than zero")
	ErrKgNegative      = errors.New("kg cannot be negative")
	ErrPercentRequired = errors.New("recycle_percent is required")
	ErrPercentRange    = errors.New("recycle_percent must be between 0 and 100")
)

// ValidateCollectedKg checks the optional collected weight: absent is fine,
// present must be a finite number > 0.
func ValidateCollectedKg(kg *float64) error {
	if kg == nil {
		return nil
	}
	if !finite(*kg) || *kg <= 0 {
		return ErrKgInvalid
	}
	return nil
}

// ValidateReceivedKg checks the mandatory received weight (> 0).
func ValidateReceivedKg(kg *float64) error {
	if kg == nil {
		return ErrKgRequired
	}
	if !finite(*kg) || *kg <= 0 {
		return ErrKgInvalid
	}
	return nil
}

// ValidateRecycleInputs checks the terminal transition inputs: recycled_kg
// must be a finite number >= 0, recycle_percent must be within [0, 100].
func ValidateRecycleInputs(recycledKg, recyclePercent *float64) error {
	if recycledKg == nil {
		return ErrKgRequired
	}
	if !finite(*recycledKg) {
		return ErrKgInvalid
	}
	if *recycledKg < 0 {
		return ErrKgNegative
	}
	if recyclePercent == nil {
		return ErrPercentRequired
	}
	if !finite(*recyclePercent) || *recyclePercent < 0 || *recyclePercent > 100 {
		return ErrPercentRange
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
