package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/draftshare/internal/repo"
)

// ShareCleanupJob hard-deletes share rows that no longer grant anything:
// revoked keys and keys expired for longer than the grace period. The grace
// keeps a just-expired share visible in the author's listing long enough to
// be extended.
type ShareCleanupJob struct {
	shares     *repo.ShareRepo
	graceHours int
}

func NewShareCleanupJob(shares *repo.ShareRepo, graceHours int) *ShareCleanupJob {
	return &ShareCleanupJob{shares: shares, graceHours: graceHours}
}

func (j *ShareCleanupJob) Name() string {
	return "share_cleanup"
}

func (j *ShareCleanupJob) Run(ctx context.Context) error {
	graceHours := j.graceHours
	if graceHours <= 0 {
		graceHours = 24
	}
	cutoff := time.Now().Add(-time.Duration(graceHours) * time.Hour).Unix()
	purged, err := j.shares.PurgeDead(ctx, cutoff)
	if err != nil {
		return err
	}
	if purged > 0 {
		logutil.GetLogger(ctx).Info("purged dead shares", zap.Int64("count", purged))
	}
	return nil
}
