package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/czdteam-copilot/LuckyDraw/internal/models"

	"github.com/google/uuid"
)

func TestSelectEmptyPool(t *testing.T) {
	allocator := NewPoolAllocator()

	_, err := allocator.Select(nil)
	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted for empty pool, got %v", err)
	}
}

func TestSelectAllTiersEmpty(t *testing.T) {
	allocator := NewPoolAllocator()

	pool := []models.PoolEntry{
		{PrizeID: uuid.New(), Quantity: 0, Amount: 10000},
		{PrizeID: uuid.New(), Quantity: 0, Amount: 50000},
	}

	_, err := allocator.Select(pool)
	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted, got %v", err)
	}
}

func TestSelectSkipsZeroQuantityTiers(t *testing.T) {
	allocator := NewPoolAllocator()

	liveID := uuid.New()
	emptyID := uuid.New()
	pool := []models.PoolEntry{
		{PrizeID: emptyID, Quantity: 0, Amount: 50000},
		{PrizeID: liveID, Quantity: 2, Amount: 10000},
	}

	for i := 0; i < 200; i++ {
		id, err := allocator.Select(pool)
		if err != nil {
			t.Fatalf("select failed: %v", err)
		}
		if id == emptyID {
			t.Fatalf("selected a tier with zero remaining quantity")
		}
		if id != liveID {
			t.Fatalf("selected unknown tier %s", id)
		}
	}
}

func TestSelectZeroEntropyPicksFirstEligible(t *testing.T) {
	// An all-zero entropy source always draws unit 0, which belongs to the
	// first tier with stock.
	allocator := NewPoolAllocatorWithEntropy(bytes.NewReader(make([]byte, 64)))

	firstID := uuid.New()
	pool := []models.PoolEntry{
		{PrizeID: uuid.New(), Quantity: 0, Amount: 50000},
		{PrizeID: firstID, Quantity: 3, Amount: 10000},
		{PrizeID: uuid.New(), Quantity: 1, Amount: 20000},
	}

	id, err := allocator.Select(pool)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if id != firstID {
		t.Fatalf("expected first eligible tier %s, got %s", firstID, id)
	}
}

func TestSelectWeightedFairness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical test in short mode")
	}

	allocator := NewPoolAllocator()

	heavyID := uuid.New()
	lightID := uuid.New()
	pool := []models.PoolEntry{
		{PrizeID: heavyID, Quantity: 3, Amount: 10000},
		{PrizeID: lightID, Quantity: 1, Amount: 50000},
	}

	const trials = 40000
	heavy := 0
	for i := 0; i < trials; i++ {
		id, err := allocator.Select(pool)
		if err != nil {
			t.Fatalf("select failed: %v", err)
		}
		if id == heavyID {
			heavy++
		}
	}

	// Expected ratio 3:1, i.e. 75% of draws hit the heavy tier. A 3%
	// tolerance is over ten standard deviations at this trial count.
	ratio := float64(heavy) / float64(trials)
	if ratio < 0.72 || ratio > 0.78 {
		t.Fatalf("heavy tier ratio %.4f outside [0.72, 0.78]", ratio)
	}
}

func TestSelectDoesNotMutatePool(t *testing.T) {
	allocator := NewPoolAllocator()

	pool := []models.PoolEntry{
		{PrizeID: uuid.New(), Quantity: 2, Amount: 10000},
		{PrizeID: uuid.New(), Quantity: 1, Amount: 50000},
	}
	before := make([]models.PoolEntry, len(pool))
	copy(before, pool)

	if _, err := allocator.Select(pool); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	for i := range pool {
		if pool[i] != before[i] {
			t.Fatalf("pool entry %d mutated: %+v != %+v", i, pool[i], before[i])
		}
	}
}
