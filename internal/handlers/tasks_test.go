package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/handlers"
	"smartwaste-backend/internal/middleware"
)

var profileCols = []string{
	"id", "email", "password", "full_name", "role", "area", "created_at", "updated_at",
}

var taskCols = []string{
	"id", "bin_id", "area", "status", "assigned_worker_id", "assigned_driver_id",
	"collected_kg", "received_kg", "recycled_kg", "recycle_percent",
	"collected_at", "delivered_at", "received_at", "recycled_at",
	"priority", "notes", "assigned_by", "created_at",
}

func TestCollectTaskRequiresCollectionRecord(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	mock.ExpectQuery(`SELECT \* FROM profiles WHERE id = \$1`).WithArgs("w1").
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow("w1", "worker@smartwaste.local", "x", "Worker One", "worker", "North", 0, 0))
	mock.ExpectQuery(`SELECT \* FROM pickup_tasks WHERE id = \$1`).WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow("t1", "B-001", "North", "OPEN", "w1", "d1",
				nil, nil, nil, nil, nil, nil, nil, nil, "High", nil, nil, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM collection_records WHERE task_id = \$1`).WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := httptest.NewRequest(http.MethodPost, "/tasks/collect/t1", strings.NewReader(`{"collected_kg": 12}`))
	req = withTaskID(req, "t1")
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, middleware.UserClaims{
		UserID: "w1", Email: "worker@smartwaste.local", Role: "worker",
	}))
	rec := httptest.NewRecorder()
	handlers.CollectTask(db)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := errorBody(t, rec)
	if body["redirect"] != "collection" {
		t.Errorf("redirect = %q, want \"collection\"", body["redirect"])
	}
	// No UPDATE was expected; a status write here would trip the mock.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("task was written without a collection record: %v", err)
	}
}

func TestCollectTaskRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tasks/collect/t1", strings.NewReader(`{"collected_kg":`))
	req = withTaskID(req, "t1")
	rec := httptest.NewRecorder()
	handlers.CollectTask(nil)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("truncated body: status = %d, want 400", rec.Code)
	}
}

func TestCollectTaskAllowsEmptyBody(t *testing.T) {
	// collected_kg is optional, so an empty body must get past input
	// validation. With no claims in context the next stop is the 401 from
	// actor resolution, which proves the body was accepted.
	req := httptest.NewRequest(http.MethodPost, "/tasks/collect/t1", nil)
	req = withTaskID(req, "t1")
	rec := httptest.NewRecorder()
	handlers.CollectTask(nil)(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("empty body: status = %d, want 401", rec.Code)
	}
}
