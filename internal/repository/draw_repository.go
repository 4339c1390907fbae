package repository

import (
	"context"

	"github.com/czdteam-copilot/LuckyDraw/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPrizes retrieves the current pool, cheapest tier first
func (r *Repository) ListPrizes(ctx context.Context) ([]models.Prize, error) {
	var prizes []models.Prize
	err := r.db.WithContext(ctx).
		Order("amount ASC").
		Find(&prizes).Error
	if err != nil {
		return nil, err
	}
	return prizes, nil
}

// TotalRemaining returns the number of unsold units across all tiers
func (r *Repository) TotalRemaining(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Prize{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListWinners retrieves all winner records, newest first
func (r *Repository) ListWinners(ctx context.Context) ([]models.Winner, error) {
	var winners []models.Winner
	err := r.db.WithContext(ctx).
		Preload("Prize").
		Order("created_at DESC").
		Find(&winners).Error
	if err != nil {
		return nil, err
	}
	return winners, nil
}

// GetWinnerByID retrieves a winner record by ID
func (r *Repository) GetWinnerByID(ctx context.Context, winnerID uuid.UUID) (*models.Winner, error) {
	var winner models.Winner
	err := r.db.WithContext(ctx).Where("id = ?", winnerID).First(&winner).Error
	if err != nil {
		return nil, err
	}
	return &winner, nil
}

// AttachPayout writes bank details onto the exact winner record, as a single
// conditional update: the record must match by id, prize and player name AND
// still have no bank details. It returns the number of rows changed; zero
// means not found or already attached, which callers must not distinguish.
func (r *Repository) AttachPayout(
	ctx context.Context,
	winnerID uuid.UUID,
	prizeID uuid.UUID,
	playerName string,
	bankName string,
	bankNumber string,
	ownerName string,
) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Winner{}).
		Where("id = ? AND prize_id = ? AND player_name = ? AND bank_name IS NULL",
			winnerID, prizeID, playerName).
		Updates(map[string]interface{}{
			"bank_name":   bankName,
			"bank_number": bankNumber,
			"owner_name":  ownerName,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// SetPaidOut flips the paid-out flag on a winner record
func (r *Repository) SetPaidOut(ctx context.Context, winnerID uuid.UUID, paid bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Winner{}).
		Where("id = ?", winnerID).
		Update("paid_out", paid)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// CountWinnersByPrize returns the number of winner records per prize tier
func (r *Repository) CountWinnersByPrize(ctx context.Context, prizeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Winner{}).
		Where("prize_id = ?", prizeID).
		Count(&count).Error
	return count, err
}
