package models

import (
	"time"

	"github.com/google/uuid"
)

// Prize represents one prize tier in the pool: a fixed cash amount and a
// remaining-stock counter. Quantity only ever goes down; there is no restock.
type Prize struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Label           string    `gorm:"size:255;not null" json:"label"`
	Amount          int64     `gorm:"not null" json:"amount"` // VND
	Quantity        int       `gorm:"not null" json:"quantity"`
	InitialQuantity int       `gorm:"not null" json:"initial_quantity"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Prize) TableName() string {
	return "prizes"
}

// Winner is the durable record created by a successful draw. Bank fields are
// either all NULL (payout details not submitted yet) or all set.
type Winner struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PrizeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"prize_id"`
	Prize       *Prize    `gorm:"foreignKey:PrizeID" json:"prize,omitempty"`
	PlayerName  string    `gorm:"size:255;not null" json:"player_name"`
	Code        string    `gorm:"size:32;uniqueIndex;not null" json:"code"`
	PrizeAmount int64     `gorm:"not null" json:"prize_amount"`
	BankName    *string   `gorm:"size:255" json:"bank_name"`
	BankNumber  *string   `gorm:"size:64" json:"bank_number"`
	OwnerName   *string   `gorm:"size:255" json:"owner_name"`
	PaidOut     bool      `gorm:"not null;default:false;index" json:"paid_out"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Winner) TableName() string {
	return "winners"
}

// PoolEntry is one row of the pool snapshot fed to the allocator. It is
// derived inside an open transaction and never persisted or cached.
type PoolEntry struct {
	PrizeID  uuid.UUID
	Quantity int
	Amount   int64
}

// DrawResult is the outcome of a single draw attempt.
type DrawResult struct {
	Awarded  bool
	Prize    *Prize
	WinnerID uuid.UUID
	Code     string
}

// DrawRequest is the body of POST /api/draw.
type DrawRequest struct {
	Name string `json:"name" binding:"required"`
}

// AttachPayoutRequest is the body of POST /api/winners.
type AttachPayoutRequest struct {
	WinnerID      string `json:"winnerId" binding:"required"`
	PrizeID       string `json:"prizeId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	AccountOwner  string `json:"accountOwner" binding:"required"`
}

// SetPaidRequest is the body of PATCH /api/admin/winners/:id/paid.
type SetPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

// AdminLoginRequest is the body of POST /api/admin/login.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// PrizeStatus is one row of the public pool-status response.
type PrizeStatus struct {
	ID       uuid.UUID `json:"id"`
	Label    string    `json:"label"`
	Amount   int64     `json:"amount"`
	Quantity int       `json:"quantity"`
}
