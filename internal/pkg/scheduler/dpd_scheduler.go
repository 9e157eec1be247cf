package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"collections-service/internal/pkg/logger"
)

const sweepTimeout = 4 * time.Minute

// DPDSweeper is the nightly repository operation the scheduler drives.
type DPDSweeper interface {
	SweepDPD(ctx context.Context, defaultThreshold int32) (int64, int64, error)
}

// DPDScheduler bumps days-past-due on open loans on a cron cadence and
// flags the ones that crossed the default threshold.
type DPDScheduler struct {
	sweeper   DPDSweeper
	cronSpec  string
	threshold int32
	cron      *cron.Cron
}

func NewDPDScheduler(sweeper DPDSweeper, cronSpec string, threshold int32) *DPDScheduler {
	return &DPDScheduler{
		sweeper:   sweeper,
		cronSpec:  cronSpec,
		threshold: threshold,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start registers the sweep and begins the cron loop. Returns an error only
// for an unparseable cron spec.
func (s *DPDScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronSpec, s.run)
	if err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("DPD scheduler started",
		slog.String("cronSpec", s.cronSpec),
		slog.Int("defaultThresholdDays", int(s.threshold)))
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *DPDScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("DPD scheduler stopped")
}

func (s *DPDScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	bumped, flagged, err := s.sweeper.SweepDPD(ctx, s.threshold)
	if err != nil {
		logger.CtxError(ctx, "DPD sweep failed", err)
		return
	}

	logger.CtxInfo(ctx, "DPD sweep finished",
		slog.Int64("recordsBumped", bumped),
		slog.Int64("recordsFlaggedDefaulted", flagged))
}
