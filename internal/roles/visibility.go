package roles

// Filter is a row-level predicate applied to every list query. An empty
// Where means no restriction (admin only).
type Filter struct {
	Where string
	Args  []interface{}
}

func (f Filter) Unrestricted() bool {
	return f.Where == ""
}

// TaskFilter builds the pickup_tasks predicate for a role:
//   - admin: no restriction
//   - recycling_manager: own area, post-delivery statuses only
//   - worker/driver: rows assigned to the actor
//   - anything else: fail-closed to the assigned-only predicate
//
// Placeholders are numbered from $1; the caller appends Where as the sole
// WHERE clause of the query.
func TaskFilter(r Role, actorID, area string) Filter {
	switch r {
	case Admin:
		return Filter{}
	case RecyclingManager:
		return Filter{
			Where: "area = $1 AND status IN ('DELIVERED', 'RECEIVED', 'RECYCLED')",
			Args:  []interface{}{area},
		}
	}
	return Filter{
		Where: "(assigned_worker_id = $1 OR assigned_driver_id = $1)",
		Args:  []interface{}{actorID},
	}
}

// StaffTaskFilter builds the staff_tasks predicate: admins see the whole
// ledger, everyone else only their own assignments.
func StaffTaskFilter(r Role, actorID string) Filter {
	if r == Admin {
		return Filter{}
	}
	return Filter{
		Where: "assigned_to = $1",
		Args:  []interface{}{actorID},
	}
}
