package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/czdteam-copilot/LuckyDraw/internal/config"
	"github.com/czdteam-copilot/LuckyDraw/internal/database"
	"github.com/czdteam-copilot/LuckyDraw/internal/models"
)

// Seeds the prize pool from a JSON file, e.g.:
//
//	[
//	  {"label": "Lì xì 10K", "amount": 10000, "quantity": 50},
//	  {"label": "Lì xì 50K", "amount": 50000, "quantity": 10},
//	  {"label": "Lì xì 500K", "amount": 500000, "quantity": 1}
//	]
//
// Seeding only touches an empty table; re-running against a live event is a
// no-op.
func main() {
	path := "prizes.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Read seed file
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read seed file %s: %v", path, err)
	}

	var prizes []models.Prize
	if err := json.Unmarshal(raw, &prizes); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	for _, p := range prizes {
		if p.Label == "" || p.Amount <= 0 || p.Quantity < 0 {
			log.Fatalf("Invalid prize tier in seed file: %+v", p)
		}
	}

	// Connect to database
	db, err := database.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedPrizes(db, prizes); err != nil {
		log.Fatalf("Failed to seed prizes: %v", err)
	}

	log.Println("Prize pool ready")
}
