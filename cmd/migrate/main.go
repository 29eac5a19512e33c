package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"smartwaste-backend/internal/database"
)

// Standalone migrate-and-seed utility for environments where the server
// should not run DDL on boot (tighter production DB roles).
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// Connect to database
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration completed successfully!")

	if os.Getenv("SKIP_SEED") == "" {
		if err := database.SeedProfiles(db); err != nil {
			log.Fatalf("Profile seeding failed: %v", err)
		}
		if err := database.SeedBins(db); err != nil {
			log.Fatalf("Bin seeding failed: %v", err)
		}
		log.Println("Seeding completed successfully!")
	}

	// Query and display summary
	var result struct {
		Profiles   int `db:"profiles"`
		Bins       int `db:"bins"`
		OpenTasks  int `db:"open_tasks"`
		StaffTasks int `db:"staff_tasks"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM profiles) AS profiles,
			(SELECT COUNT(*) FROM bins) AS bins,
			(SELECT COUNT(*) FROM pickup_tasks WHERE status = 'OPEN') AS open_tasks,
			(SELECT COUNT(*) FROM staff_tasks) AS staff_tasks
	`

	if err := db.Get(&result, query); err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Profiles:                %d\n", result.Profiles)
	fmt.Printf("Bins:                    %d\n", result.Bins)
	fmt.Printf("Open pickup tasks:       %d\n", result.OpenTasks)
	fmt.Printf("Staff tasks:             %d\n", result.StaffTasks)
	fmt.Println("============================================================")
}
