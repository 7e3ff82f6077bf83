package schedule

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Job is a named unit of background work driven by the scheduler.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// CronScheduler runs jobs on standard five-field cron expressions. A job
// that is still running when its next tick fires is skipped, never
// overlapped.
type CronScheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

func NewCronScheduler() *CronScheduler {
	return &CronScheduler{
		cron: cron.New(cron.WithParser(
			cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		)),
	}
}

func (s *CronScheduler) AddJob(job Job, spec string) error {
	var busy atomic.Bool
	_, err := s.cron.AddFunc(spec, func() {
		logger := logutil.GetLogger(s.context()).With(zap.String("job", job.Name()))
		if !busy.CompareAndSwap(false, true) {
			logger.Info("previous run still active, skipping tick")
			return
		}
		defer busy.Store(false)

		start := time.Now()
		if err := job.Run(s.context()); err != nil {
			logger.Error("job run failed", zap.Error(err), zap.Duration("cost", time.Since(start)))
			return
		}
		logger.Info("job run done", zap.Duration("cost", time.Since(start)))
	})
	if err != nil {
		logutil.GetLogger(context.Background()).Error("register cron job failed",
			zap.String("job", job.Name()), zap.String("spec", spec), zap.Error(err))
		return err
	}
	logutil.GetLogger(context.Background()).Info("cron job registered",
		zap.String("job", job.Name()), zap.String("spec", spec))
	return nil
}

func (s *CronScheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight runs to return.
func (s *CronScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *CronScheduler) context() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}
