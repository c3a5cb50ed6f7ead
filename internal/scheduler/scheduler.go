package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
	"github.com/mamadbah2/homy/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// ReportBuilder produces the household digest.
type ReportBuilder interface {
	BuildDailyReport(ctx context.Context, now time.Time) (models.DailyReport, error)
}

// Archive persists digests.
type Archive interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Notifier delivers the rendered digest.
type Notifier interface {
	NotifyHousehold(ctx context.Context, message string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	now      func() time.Time
	reports  ReportBuilder
	archive  Archive
	notifier Notifier
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance running in loc. archive and
// notifier are optional.
func NewScheduler(schedule string, loc *time.Location, reports ReportBuilder, archive Archive, notifier Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		now:      func() time.Time { return time.Now().In(loc) },
		reports:  reports,
		archive:  archive,
		notifier: notifier,
		logger:   logger,
	}
}

// Start registers the daily digest job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runJob); err != nil {
		return fmt.Errorf("schedule daily digest: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.RunDailyDigest(ctx); err != nil {
		s.logger.Error("daily digest failed", zap.Error(err))
	}
}

// RunDailyDigest builds the digest, archives it and sends it. Archive and
// delivery failures do not stop each other; both are reported.
func (s *Scheduler) RunDailyDigest(ctx context.Context) (models.DailyReport, error) {
	s.logger.Info("generating daily digest")

	report, err := s.reports.BuildDailyReport(ctx, s.now())
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("build daily report: %w", err)
	}

	var errs []error

	if s.archive != nil {
		if err := s.archive.SaveDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to archive daily report", zap.Error(err))
			errs = append(errs, fmt.Errorf("archive daily report: %w", err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyHousehold(ctx, reporting.FormatDigest(report)); err != nil {
			s.logger.Error("failed to send daily digest", zap.Error(err))
			errs = append(errs, fmt.Errorf("send daily digest: %w", err))
		} else {
			s.logger.Info("daily digest sent successfully")
		}
	}

	return report, errors.Join(errs...)
}
