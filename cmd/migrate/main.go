package main

import (
	"context"
	"log"
	"os"
	"time"

	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/repository/implementation"
	"nestle-in-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// defaultTimeSlots are the hourly booking windows every pod offers.
var defaultTimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// seedPods mirrors the initial floor layout: eight pods named A through H,
// with C and G already taken.
func seedPods() []*entity.Pod {
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	unavailable := map[string]bool{"C": true, "G": true}

	pods := make([]*entity.Pod, 0, len(names))
	for i, name := range names {
		pods = append(pods, &entity.Pod{
			Id:        i + 1,
			Name:      name,
			Available: !unavailable[name],
			TimeSlots: defaultTimeSlots,
			CreatedAt: time.Now(),
		})
	}
	return pods
}

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM Migration...")

	// 3. AutoMigrate All Models
	if err := database.AutoMigrate(db); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}
	color.Green("✔ Schema migrated")

	// 4. Seed pods (idempotent, existing rows are left untouched)
	podRepo := implementation.NewPodRepository(db)
	if err := podRepo.Seed(context.Background(), seedPods()); err != nil {
		color.Red("Error: Pod seeding failed: %v", err)
		os.Exit(1)
	}
	color.Green("✔ Pods seeded")

	color.Green("✅ Database migration completed successfully.")
}
