package database

import (
	"fmt"
	"log"

	"github.com/czdteam-copilot/LuckyDraw/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a connection to the PostgreSQL database and returns the
// handle. The caller owns the handle and passes it to whatever needs it;
// there is no package-level instance.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Prize{},
		&models.Winner{},
	} {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedPrizes inserts the initial prize pool. It only seeds an empty table so
// restarting the service mid-event never restocks a running pool.
func SeedPrizes(db *gorm.DB, prizes []models.Prize) error {
	var count int64
	if err := db.Model(&models.Prize{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count prizes: %w", err)
	}

	if count > 0 {
		log.Printf("Prize pool already seeded (%d tiers), skipping", count)
		return nil
	}

	for i := range prizes {
		if prizes[i].ID == uuid.Nil {
			prizes[i].ID = uuid.New()
		}
		if prizes[i].InitialQuantity == 0 {
			prizes[i].InitialQuantity = prizes[i].Quantity
		}
	}

	if err := db.Create(&prizes).Error; err != nil {
		return fmt.Errorf("failed to seed prizes: %w", err)
	}

	log.Printf("Seeded %d prize tiers", len(prizes))
	return nil
}
