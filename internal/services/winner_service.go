package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/czdteam-copilot/LuckyDraw/internal/models"
	"github.com/czdteam-copilot/LuckyDraw/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrWinnerNotEligible is returned when the conditional payout update
// matched nothing. The record may not exist, belong to another player, or
// already carry bank details; the distinction is deliberately not exposed so
// a resubmitted form can neither overwrite saved details nor probe which
// records exist.
var ErrWinnerNotEligible = errors.New("winner record not found or payout details already saved")

// ErrWinnerNotFound is returned when a paid-out toggle targets a record
// that does not exist.
var ErrWinnerNotFound = errors.New("winner record not found")

// ErrInvalidBankDetails is returned when submitted payout details fail
// validation before touching the store.
var ErrInvalidBankDetails = errors.New("incomplete bank details")

// BankDetails is the payout destination submitted by a winner.
type BankDetails struct {
	BankName      string
	AccountNumber string
	AccountOwner  string
}

// WinnerStats summarizes the event for the admin dashboard.
type WinnerStats struct {
	TotalWinners    int64           `json:"total_winners"`
	TotalAwarded    decimal.Decimal `json:"total_awarded"`
	WithBankInfo    int64           `json:"with_bank_info"`
	WithoutBankInfo int64           `json:"without_bank_info"`
	PaidOut         int64           `json:"paid_out"`
	TotalRemaining  int64           `json:"total_remaining"`
}

// WinnerService handles everything that happens to a winner record after
// the draw: payout attachment, the operator's paid-out flag and reporting.
type WinnerService struct {
	repo *repository.Repository
}

// NewWinnerService creates a new WinnerService
func NewWinnerService(repo *repository.Repository) *WinnerService {
	return &WinnerService{repo: repo}
}

// AttachPayout records where to send the awarded amount. It succeeds at most
// once per winner record; a second submission (or one targeting the wrong
// record) returns ErrWinnerNotEligible and changes nothing.
func (s *WinnerService) AttachPayout(
	ctx context.Context,
	winnerID uuid.UUID,
	prizeID uuid.UUID,
	playerName string,
	bank BankDetails,
) error {
	bank.BankName = strings.TrimSpace(bank.BankName)
	bank.AccountNumber = strings.TrimSpace(bank.AccountNumber)
	bank.AccountOwner = strings.TrimSpace(bank.AccountOwner)
	playerName = strings.TrimSpace(playerName)

	if bank.BankName == "" || bank.AccountNumber == "" || bank.AccountOwner == "" || playerName == "" {
		return ErrInvalidBankDetails
	}

	rows, err := s.repo.AttachPayout(ctx, winnerID, prizeID, playerName,
		bank.BankName, bank.AccountNumber, bank.AccountOwner)
	if err != nil {
		return fmt.Errorf("failed to save payout details: %w", err)
	}
	if rows == 0 {
		return ErrWinnerNotEligible
	}

	return nil
}

// SetPaidOut flips the operator's paid-out flag on a winner record and
// returns the updated record.
func (s *WinnerService) SetPaidOut(ctx context.Context, winnerID uuid.UUID, paid bool) (*models.Winner, error) {
	rows, err := s.repo.SetPaidOut(ctx, winnerID, paid)
	if err != nil {
		return nil, fmt.Errorf("failed to update paid-out flag: %w", err)
	}
	if rows == 0 {
		return nil, ErrWinnerNotFound
	}

	winner, err := s.repo.GetWinnerByID(ctx, winnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload winner record: %w", err)
	}
	return winner, nil
}

// ListWinners returns all winner records, newest first.
func (s *WinnerService) ListWinners(ctx context.Context) ([]models.Winner, error) {
	return s.repo.ListWinners(ctx)
}

// Stats aggregates the event totals shown on the admin dashboard.
func (s *WinnerService) Stats(ctx context.Context) (*WinnerStats, error) {
	winners, err := s.repo.ListWinners(ctx)
	if err != nil {
		return nil, err
	}

	remaining, err := s.repo.TotalRemaining(ctx)
	if err != nil {
		return nil, err
	}

	stats := &WinnerStats{
		TotalWinners:   int64(len(winners)),
		TotalAwarded:   decimal.Zero,
		TotalRemaining: remaining,
	}

	for _, w := range winners {
		stats.TotalAwarded = stats.TotalAwarded.Add(decimal.NewFromInt(w.PrizeAmount))
		if w.BankName != nil {
			stats.WithBankInfo++
		} else {
			stats.WithoutBankInfo++
		}
		if w.PaidOut {
			stats.PaidOut++
		}
	}

	return stats, nil
}
