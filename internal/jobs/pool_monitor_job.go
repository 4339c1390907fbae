package jobs

import (
	"context"
	"log"
	"time"

	"github.com/czdteam-copilot/LuckyDraw/internal/repository"

	"gorm.io/gorm"
)

// PoolMonitorJob periodically logs remaining stock so the operator can watch
// the event drain without opening the dashboard.
type PoolMonitorJob struct {
	repo *repository.Repository
}

func NewPoolMonitorJob(db *gorm.DB) *PoolMonitorJob {
	return &PoolMonitorJob{
		repo: repository.NewRepository(db),
	}
}

// Start begins the periodic pool status job
func (j *PoolMonitorJob) Start(interval time.Duration) {
	go func() {
		// Run immediately on start
		ctx := context.Background()
		j.logStatus(ctx)

		// Then run periodically
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			j.logStatus(ctx)
		}
	}()
}

func (j *PoolMonitorJob) logStatus(ctx context.Context) {
	remaining, err := j.repo.TotalRemaining(ctx)
	if err != nil {
		log.Printf("[PoolMonitor] status check failed: %v", err)
		return
	}

	if remaining == 0 {
		log.Println("[PoolMonitor] prize pool exhausted")
		return
	}

	log.Printf("[PoolMonitor] %d units remaining", remaining)
}
