package roles_test

import (
	"testing"

	"smartwaste-backend/internal/roles"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want roles.Role
	}{
		{"admin", roles.Admin},
		{"ADMIN", roles.Admin},
		{"  Worker  ", roles.Worker},
		{"Recycling Manager", roles.RecyclingManager},
		{"recycling-manager", roles.RecyclingManager},
		{"Recycling   Manager", roles.RecyclingManager},
		{"driver", roles.Driver},
		{"supervisor", roles.Role("supervisor")}, // unknowns pass through normalized
		{"Night Shift", roles.Role("night_shift")},
	}
	for _, tc := range cases {
		if got := roles.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestKnown(t *testing.T) {
	for _, r := range []roles.Role{roles.Admin, roles.Worker, roles.Driver, roles.RecyclingManager} {
		if !roles.Known(r) {
			t.Errorf("%q should be known", r)
		}
	}
	if roles.Known(roles.Role("supervisor")) {
		t.Error("supervisor is not a recognized role")
	}
	if roles.Known(roles.Role("")) {
		t.Error("empty role is not a recognized role")
	}
}

func TestCanAccessPage(t *testing.T) {
	if !roles.CanAccessPage(roles.Admin, "users") {
		t.Error("admin should reach users")
	}
	if roles.CanAccessPage(roles.Worker, "users") {
		t.Error("worker should not reach users")
	}
	if roles.CanAccessPage(roles.RecyclingManager, "bins") {
		t.Error("recycling manager should not reach bins")
	}
	if !roles.CanAccessPage(roles.RecyclingManager, "recycling") {
		t.Error("recycling manager should reach recycling")
	}

	// Unknown role falls back to the worker set, never the admin one.
	if roles.CanAccessPage(roles.Role("supervisor"), "users") {
		t.Error("unknown role must not reach admin pages")
	}
	if !roles.CanAccessPage(roles.Role("supervisor"), "tasks") {
		t.Error("unknown role should still reach worker pages")
	}
}

func TestTaskFilter(t *testing.T) {
	admin := roles.TaskFilter(roles.Admin, "a1", "North")
	if !admin.Unrestricted() {
		t.Errorf("admin filter should be unrestricted, got %q", admin.Where)
	}

	mgr := roles.TaskFilter(roles.RecyclingManager, "m1", "North")
	if mgr.Where != "area = $1 AND status IN ('DELIVERED', 'RECEIVED', 'RECYCLED')" {
		t.Errorf("manager filter = %q", mgr.Where)
	}
	if len(mgr.Args) != 1 || mgr.Args[0] != "North" {
		t.Errorf("manager args = %v", mgr.Args)
	}

	worker := roles.TaskFilter(roles.Worker, "w1", "North")
	if worker.Where != "(assigned_worker_id = $1 OR assigned_driver_id = $1)" {
		t.Errorf("worker filter = %q", worker.Where)
	}
	if len(worker.Args) != 1 || worker.Args[0] != "w1" {
		t.Errorf("worker args = %v", worker.Args)
	}

	// Fail closed: a role we do not recognize sees only its own assignments.
	unknown := roles.TaskFilter(roles.Role("supervisor"), "u1", "North")
	if unknown.Where != worker.Where {
		t.Errorf("unknown role filter = %q, want assigned-only", unknown.Where)
	}
}

func TestStaffTaskFilter(t *testing.T) {
	if !roles.StaffTaskFilter(roles.Admin, "a1").Unrestricted() {
		t.Error("admin sees the whole ledger")
	}
	f := roles.StaffTaskFilter(roles.Driver, "d1")
	if f.Where != "assigned_to = $1" || len(f.Args) != 1 || f.Args[0] != "d1" {
		t.Errorf("driver ledger filter = %q %v", f.Where, f.Args)
	}
}
