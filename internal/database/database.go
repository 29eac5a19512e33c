package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("✅ Database connection established")
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Identity + role store. Auth is backend-issued JWT over bcrypt
		// hashes kept here.
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			area TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS bins (
			id TEXT PRIMARY KEY,
			bin_id TEXT NOT NULL UNIQUE,
			area TEXT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('Empty', 'Half', 'Full')),
			updated_by TEXT REFERENCES profiles(id) ON DELETE SET NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Append-only pickup task history. No (bin_id, status='OPEN')
		// uniqueness constraint: duplicate prevention is an application-level
		// check-then-create, see EnsureOpenPickupTask.
		`CREATE TABLE IF NOT EXISTS pickup_tasks (
			id TEXT PRIMARY KEY,
			bin_id TEXT,
			area TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'OPEN'
				CHECK(status IN ('OPEN', 'COLLECTED', 'DELIVERED', 'RECEIVED', 'RECYCLED')),
			assigned_worker_id TEXT REFERENCES profiles(id) ON DELETE SET NULL,
			assigned_driver_id TEXT REFERENCES profiles(id) ON DELETE SET NULL,
			collected_kg DOUBLE PRECISION,
			received_kg DOUBLE PRECISION,
			recycled_kg DOUBLE PRECISION,
			recycle_percent DOUBLE PRECISION,
			collected_at BIGINT,
			delivered_at BIGINT,
			received_at BIGINT,
			recycled_at BIGINT,
			priority TEXT NOT NULL DEFAULT 'High',
			notes TEXT,
			assigned_by TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS staff_tasks (
			id TEXT PRIMARY KEY,
			task_type TEXT NOT NULL CHECK(task_type IN ('TRIP', 'MANUAL', 'COLLECTION')),
			assigned_to TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			vehicle_id TEXT,
			route TEXT,
			shift TEXT,
			date TEXT,
			status TEXT NOT NULL DEFAULT 'Assigned'
				CHECK(status IN ('Assigned', 'Started', 'Completed')),
			started_at BIGINT,
			completed_at BIGINT,
			task_id TEXT,
			created_by TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS collection_records (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			date TEXT NOT NULL,
			area TEXT NOT NULL,
			waste_type TEXT NOT NULL CHECK(waste_type IN ('Wet', 'Dry', 'Plastic')),
			quantity_kg DOUBLE PRECISION NOT NULL CHECK(quantity_kg > 0),
			task_id TEXT,
			bin_id TEXT,
			staff_task_id TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS recycling (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			waste_type TEXT NOT NULL,
			input_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
			recycled_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
			landfill_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS complaints (
			id TEXT PRIMARY KEY,
			citizen_name TEXT NOT NULL,
			area TEXT NOT NULL,
			issue TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT 'Low',
			status TEXT NOT NULL DEFAULT 'Open'
				CHECK(status IN ('Open', 'In Progress', 'Resolved')),
			created_by TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_role_area ON profiles(role, area)`,
		`CREATE INDEX IF NOT EXISTS idx_bins_bin_id ON bins(bin_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pickup_tasks_status ON pickup_tasks(status)`,
		`CREATE INDEX IF NOT EXISTS idx_pickup_tasks_bin_id ON pickup_tasks(bin_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pickup_tasks_worker ON pickup_tasks(assigned_worker_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pickup_tasks_driver ON pickup_tasks(assigned_driver_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pickup_tasks_area ON pickup_tasks(area)`,
		`CREATE INDEX IF NOT EXISTS idx_staff_tasks_assigned_to ON staff_tasks(assigned_to)`,
		`CREATE INDEX IF NOT EXISTS idx_collection_records_user ON collection_records(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_collection_records_task ON collection_records(task_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
