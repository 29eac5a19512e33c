package database

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedProfiles(db *sqlx.DB) error {
	// Check if profiles already exist
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM profiles"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Profiles already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding test profiles...")

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	staffPassword, err := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	profiles := []map[string]interface{}{
		{
			"id":        uuid.New().String(),
			"email":     "admin@smartwaste.local",
			"password":  string(adminPassword),
			"full_name": "Admin User",
			"role":      "admin",
			"area":      "General",
		},
		{
			"id":        uuid.New().String(),
			"email":     "worker@smartwaste.local",
			"password":  string(staffPassword),
			"full_name": "Wanda Worker",
			"role":      "worker",
			"area":      "North",
		},
		{
			"id":        uuid.New().String(),
			"email":     "driver@smartwaste.local",
			"password":  string(staffPassword),
			"full_name": "Dan Driver",
			"role":      "driver",
			"area":      "North",
		},
		{
			"id":        uuid.New().String(),
			"email":     "manager@smartwaste.local",
			"password":  string(staffPassword),
			"full_name": "Rita Recycler",
			"role":      "recycling_manager",
			"area":      "North",
		},
	}

	for _, profile := range profiles {
		query := `
			INSERT INTO profiles (id, email, password, full_name, role, area)
			VALUES (:id, :email, :password, :full_name, :role, :area)
		`
		if _, err := db.NamedExec(query, profile); err != nil {
			return err
		}
		log.Printf("  ✓ Created profile: %s (%s)", profile["email"], profile["role"])
	}

	log.Println("✓ Successfully seeded test profiles")
	log.Println("  📧 Admin: admin@smartwaste.local / admin123")
	return nil
}

func SeedBins(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM bins"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Bins already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding demo bins...")

	bins := []map[string]interface{}{
		{"bin_id": "B-001", "area": "North", "status": "Empty"},
		{"bin_id": "B-002", "area": "North", "status": "Half"},
		{"bin_id": "B-003", "area": "South", "status": "Empty"},
		{"bin_id": "B-004", "area": "South", "status": "Half"},
		{"bin_id": "B-005", "area": "East", "status": "Empty"},
	}

	for _, bin := range bins {
		_, err := db.Exec(`
			INSERT INTO bins (id, bin_id, area, status)
			VALUES ($1, $2, $3, $4)
		`, uuid.New().String(), bin["bin_id"], bin["area"], bin["status"])
		if err != nil {
			return err
		}
	}

	log.Printf("✓ Successfully seeded %d bins", len(bins))
	return nil
}
