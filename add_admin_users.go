package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// One-off bootstrap script for adding an admin account to a live database.
// Run with: DATABASE_URL=... ADMIN_EMAIL=... ADMIN_PASSWORD=... go run add_admin_users.go
func main() {
	// Get database connection string from environment
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set")
	}
	fullName := os.Getenv("ADMIN_NAME")
	if fullName == "" {
		fullName = "Administrator"
	}
	area := os.Getenv("ADMIN_AREA")
	if area == "" {
		area = "HQ"
	}

	// Connect to database
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("🔌 Connected to database")

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	// Check if profile already exists
	var exists bool
	if err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)", email); err != nil {
		log.Fatalf("Error checking for profile %s: %v", email, err)
	}
	if exists {
		log.Printf("⚠️  Profile already exists: %s", email)
		return
	}

	now := time.Now().Unix()
	profile := map[string]interface{}{
		"id":         uuid.New().String(),
		"email":      email,
		"password":   string(hashed),
		"full_name":  fullName,
		"role":       "admin",
		"area":       area,
		"created_at": now,
		"updated_at": now,
	}

	query := `
		INSERT INTO profiles (id, email, password, full_name, role, area, created_at, updated_at)
		VALUES (:id, :email, :password, :full_name, :role, :area, :created_at, :updated_at)
	`
	if _, err := db.NamedExec(query, profile); err != nil {
		log.Fatalf("Failed to create admin %s: %v", email, err)
	}

	log.Printf("✅ Created admin user: %s", email)
}
