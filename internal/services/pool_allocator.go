package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"

	"github.com/czdteam-copilot/LuckyDraw/internal/models"

	"github.com/google/uuid"
)

// ErrPoolExhausted is returned by Select when no tier has remaining stock.
// It is a terminal outcome of the event, not a failure.
var ErrPoolExhausted = errors.New("prize pool exhausted")

// PoolAllocator picks one prize tier from a pool snapshot, weighted by
// remaining stock: every unsold unit is an equally likely outcome, as if a
// single item were drawn from a box holding Quantity identical items per
// tier. It never touches the store; the caller feeds it a snapshot read
// inside an open transaction.
type PoolAllocator struct {
	entropy io.Reader
}

// NewPoolAllocator creates an allocator backed by crypto/rand, so draw
// outcomes cannot be predicted or replayed.
func NewPoolAllocator() *PoolAllocator {
	return &PoolAllocator{entropy: rand.Reader}
}

// NewPoolAllocatorWithEntropy creates an allocator reading randomness from r.
// Used by tests to make selection deterministic.
func NewPoolAllocatorWithEntropy(r io.Reader) *PoolAllocator {
	return &PoolAllocator{entropy: r}
}

// Select returns the ID of the chosen tier, or ErrPoolExhausted when every
// entry has zero remaining quantity (an empty pool counts as exhausted).
// Entries with zero quantity are never selected.
func (a *PoolAllocator) Select(pool []models.PoolEntry) (uuid.UUID, error) {
	// Cumulative weights over the eligible entries only.
	ids := make([]uuid.UUID, 0, len(pool))
	cumulative := make([]int64, 0, len(pool))
	var total int64

	for _, entry := range pool {
		if entry.Quantity <= 0 {
			continue
		}
		total += int64(entry.Quantity)
		ids = append(ids, entry.PrizeID)
		cumulative = append(cumulative, total)
	}

	if total == 0 {
		return uuid.Nil, ErrPoolExhausted
	}

	n, err := rand.Int(a.entropy, big.NewInt(total))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to draw random unit: %w", err)
	}
	pick := n.Int64()

	// Binary search for the tier owning the picked unit.
	idx := sort.Search(len(cumulative), func(i int) bool {
		return cumulative[i] > pick
	})

	return ids[idx], nil
}
