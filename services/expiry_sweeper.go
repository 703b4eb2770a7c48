package services

import (
	"context"
	"time"

	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

const (
	CloseExpiredTask  = "close-expired"
	DefaultExpiryCron = "0 * * * *"

	sweepTimeout = time.Minute
)

// ExpirySweeper closes OPEN jobs whose expiry date has passed.
type ExpirySweeper struct {
	db  *gorm.DB
	now func() time.Time
}

func NewExpirySweeper(db *gorm.DB) *ExpirySweeper {
	return &ExpirySweeper{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// SweepOnce closes expired jobs in a single conditional update and returns
// how many were closed. DRAFT and CLOSED jobs are never touched and
// moderation status is left as is, so running it twice closes nothing new.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int64, error) {
	now := s.now()
	result := s.db.WithContext(ctx).Model(&models.Job{}).
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date < ?", models.JobStatusOpen, now).
		Updates(map[string]interface{}{
			"status":     models.JobStatusClosed,
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Run is the scheduled entry point.
func (s *ExpirySweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	closed, err := s.SweepOnce(ctx)
	if err != nil {
		utils.ErrorLogger.Errorf("Expiry sweep failed: %v", err)
		return
	}
	utils.InfoLogger.WithField("closed", closed).Info("expiry sweep finished")
}
