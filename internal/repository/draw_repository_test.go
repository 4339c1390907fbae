package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/czdteam-copilot/LuckyDraw/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTestDB(t *testing.T) *Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Prize{}, &models.Winner{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return NewRepository(db)
}

func TestTotalRemainingEmptyTable(t *testing.T) {
	repo := setupRepoTestDB(t)

	total, err := repo.TotalRemaining(context.Background())
	if err != nil {
		t.Fatalf("total remaining failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("total remaining %d on empty table, want 0", total)
	}
}

func TestAttachPayoutConditionalUpdate(t *testing.T) {
	repo := setupRepoTestDB(t)
	ctx := context.Background()

	prize := models.Prize{ID: uuid.New(), Label: "Lì xì 10K", Amount: 10000, Quantity: 1, InitialQuantity: 1}
	if err := repo.db.Create(&prize).Error; err != nil {
		t.Fatalf("failed to seed prize: %v", err)
	}

	winner := models.Winner{
		ID:          uuid.New(),
		PrizeID:     prize.ID,
		PlayerName:  "An",
		Code:        "repo-attach",
		PrizeAmount: prize.Amount,
	}
	if err := repo.db.Create(&winner).Error; err != nil {
		t.Fatalf("failed to seed winner: %v", err)
	}

	rows, err := repo.AttachPayout(ctx, winner.ID, prize.ID, "An",
		"Vietcombank", "0123456789", "NGUYEN VAN AN")
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows affected %d, want 1", rows)
	}

	// The guard matches zero rows once bank_name is set.
	rows, err = repo.AttachPayout(ctx, winner.ID, prize.ID, "An",
		"Techcombank", "999", "SOMEONE ELSE")
	if err != nil {
		t.Fatalf("second attach errored: %v", err)
	}
	if rows != 0 {
		t.Fatalf("rows affected %d on second attach, want 0", rows)
	}
}

func TestCountWinnersByPrize(t *testing.T) {
	repo := setupRepoTestDB(t)
	ctx := context.Background()

	prize := models.Prize{ID: uuid.New(), Label: "Lì xì 50K", Amount: 50000, Quantity: 0, InitialQuantity: 2}
	if err := repo.db.Create(&prize).Error; err != nil {
		t.Fatalf("failed to seed prize: %v", err)
	}

	for i := 0; i < 2; i++ {
		winner := models.Winner{
			ID:          uuid.New(),
			PrizeID:     prize.ID,
			PlayerName:  fmt.Sprintf("player-%d", i),
			Code:        fmt.Sprintf("repo-count-%d", i),
			PrizeAmount: prize.Amount,
		}
		if err := repo.db.Create(&winner).Error; err != nil {
			t.Fatalf("failed to seed winner: %v", err)
		}
	}

	count, err := repo.CountWinnersByPrize(ctx, prize.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count %d, want 2", count)
	}
	if count > int64(prize.InitialQuantity) {
		t.Fatalf("tier over-awarded: %d winners for %d units", count, prize.InitialQuantity)
	}
}
