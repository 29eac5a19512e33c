// Package roles normalizes actor roles and derives what each role may see
// and do. Role strings read from the database or from request input go
// through Normalize before any authorization decision.
package roles

import "strings"

type Role string

const (
	Admin            Role = "admin"
	Worker           Role = "worker"
	Driver           Role = "driver"
	RecyclingManager Role = "recycling_manager"
)

// Normalize canonicalizes free-text role input: case and surrounding space
// are ignored, internal spaces and hyphens become underscores. Unrecognized
// values pass through normalized; callers must treat any non-enum value as
// minimal privilege, never reject outright.
func Normalize(raw string) Role {
	r := strings.ToLower(strings.TrimSpace(raw))
	r = strings.ReplaceAll(r, "-", "_")
	r = strings.Join(strings.Fields(r), "_")
	return Role(r)
}

// Known reports whether r is one of the four recognized roles.
func Known(r Role) bool {
	switch r {
	case Admin, Worker, Driver, RecyclingManager:
		return true
	}
	return false
}

// Page surfaces reachable per role. Unknown roles fall back to the worker
// set so a corrupted role value never unlocks admin surfaces.
var pageAccess = map[Role][]string{
	Admin: {
		"dashboard", "users", "tasks", "collection", "bins",
		"recycling", "staff_vehicle", "report", "map", "profile", "complaints",
	},
	RecyclingManager: {
		"dashboard", "tasks", "recycling", "report", "map", "profile",
	},
	Worker: {
		"dashboard", "tasks", "collection", "bins",
		"staff_vehicle", "report", "map", "profile", "complaints",
	},
	Driver: {
		"dashboard", "tasks", "collection", "bins",
		"staff_vehicle", "report", "map", "profile", "complaints",
	},
}

// AllowedPages returns the UI surfaces reachable by the role.
func AllowedPages(r Role) []string {
	if pages, ok := pageAccess[r]; ok {
		return pages
	}
	return pageAccess[Worker]
}

func CanAccessPage(r Role, page string) bool {
	for _, p := range AllowedPages(r) {
		if p == page {
			return true
		}
	}
	return false
}
