package database_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/database"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestEnsureOpenPickupTaskSkipsWhenOneIsOpen(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pickup_tasks`).WithArgs("B-001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	created, err := database.EnsureOpenPickupTask(db, "B-001", "North", "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("a second Full report must not create another task")
	}
	// No profile lookups and no INSERT were expected; any write would have
	// tripped the mock.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected statements ran: %v", err)
	}
}

func TestEnsureOpenPickupTaskCreatesWhenNoneOpen(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pickup_tasks`).WithArgs("B-001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT id FROM profiles WHERE role = \$1 AND area = \$2`).
		WithArgs("worker", "North").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("w1"))
	mock.ExpectQuery(`SELECT id FROM profiles WHERE role = \$1 AND area = \$2`).
		WithArgs("driver", "North").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("d1"))
	mock.ExpectExec(`INSERT INTO pickup_tasks`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := database.EnsureOpenPickupTask(db, "B-001", "North", "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("first Full report should create a task")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected statements did not run: %v", err)
	}
}

func TestHasCollectionRecord(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM collection_records WHERE task_id = \$1`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	has, err := database.HasCollectionRecord(db, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if has {
		t.Error("no records logged, want false")
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM collection_records WHERE task_id = \$1`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	has, err = database.HasCollectionRecord(db, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !has {
		t.Error("records exist, want true")
	}
}
