package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/czdteam-copilot/LuckyDraw/internal/models"
	"github.com/czdteam-copilot/LuckyDraw/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrContention is returned when a draw keeps colliding with concurrent
// draws and the retry budget runs out. The caller shows the same "no luck"
// message as exhaustion but logs it separately.
var ErrContention = errors.New("draw aborted after repeated conflicts")

// ErrInvalidPlayerName is returned when a draw is submitted with a blank
// player name, before the store is touched.
var ErrInvalidPlayerName = errors.New("player name is required")

// errStaleSnapshot signals that the pool changed between reading the
// snapshot and claiming the chosen unit. The whole attempt is retried.
var errStaleSnapshot = errors.New("pool snapshot went stale")

// DrawService runs the atomic draw: read the pool, pick a tier, claim one
// unit and record the winner, all in a single serializable transaction.
type DrawService struct {
	db         *gorm.DB
	allocator  *PoolAllocator
	maxRetries int
}

// NewDrawService creates a new DrawService. maxRetries bounds how often a
// conflicted draw is re-run before giving up with ErrContention.
func NewDrawService(db *gorm.DB, allocator *PoolAllocator, maxRetries int) *DrawService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &DrawService{
		db:         db,
		allocator:  allocator,
		maxRetries: maxRetries,
	}
}

// Draw performs one draw for the named player. An exhausted pool is a valid
// outcome (Awarded=false, nil error); only store failures and exhausted
// retry budgets return an error. A committed award is final.
func (s *DrawService) Draw(ctx context.Context, playerName string) (*models.DrawResult, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, ErrInvalidPlayerName
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		result, err := s.drawOnce(ctx, playerName)
		if err == nil {
			return result, nil
		}
		if !isRetryableDrawError(err) {
			return nil, err
		}

		lastErr = err
		log.Printf("[Draw] attempt %d/%d conflicted: %v", attempt, s.maxRetries, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 5 * time.Millisecond):
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrContention, lastErr)
}

// drawOnce runs a single draw attempt as one isolated unit. The snapshot
// read, the decrement and the winner insert all commit together or not at
// all.
func (s *DrawService) drawOnce(ctx context.Context, playerName string) (*models.DrawResult, error) {
	var result *models.DrawResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Fresh snapshot inside the transaction; never cached across draws.
		var prizes []models.Prize
		if err := tx.Order("amount ASC").Find(&prizes).Error; err != nil {
			return fmt.Errorf("failed to read prize pool: %w", err)
		}

		pool := make([]models.PoolEntry, len(prizes))
		for i, p := range prizes {
			pool[i] = models.PoolEntry{
				PrizeID:  p.ID,
				Quantity: p.Quantity,
				Amount:   p.Amount,
			}
		}

		prizeID, err := s.allocator.Select(pool)
		if errors.Is(err, ErrPoolExhausted) {
			result = &models.DrawResult{Awarded: false}
			return nil
		}
		if err != nil {
			return err
		}

		var prize *models.Prize
		for i := range prizes {
			if prizes[i].ID == prizeID {
				prize = &prizes[i]
				break
			}
		}
		if prize == nil {
			return fmt.Errorf("allocator chose unknown prize %s", prizeID)
		}

		// Guarded single-statement decrement. Zero rows affected means a
		// concurrent draw claimed the unit first; abort and retry from the
		// snapshot so quantity can never go negative.
		res := tx.Model(&models.Prize{}).
			Where("id = ? AND quantity > 0", prizeID).
			Update("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement prize stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errStaleSnapshot
		}

		code, err := utils.GenerateDrawCode()
		if err != nil {
			return err
		}

		winner := models.Winner{
			ID:          uuid.New(),
			PrizeID:     prizeID,
			PlayerName:  playerName,
			Code:        code,
			PrizeAmount: prize.Amount,
			PaidOut:     false,
		}
		if err := tx.Create(&winner).Error; err != nil {
			return fmt.Errorf("failed to record winner: %w", err)
		}

		result = &models.DrawResult{
			Awarded:  true,
			Prize:    prize,
			WinnerID: winner.ID,
			Code:     code,
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// isRetryableDrawError reports whether the failed attempt may be re-run.
// Serialization failures and deadlocks (Postgres 40001/40P01), stale
// snapshots and sqlite lock errors in tests all qualify; anything else is a
// real store failure and propagates.
func isRetryableDrawError(err error) bool {
	if errors.Is(err, errStaleSnapshot) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}

	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
