// Package scheduler runs the periodic PNL snapshot job.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/config"
	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/repository/sheets"
	"github.com/mamadbah2/boutique/internal/service/pnl"
	"github.com/mamadbah2/boutique/internal/service/whatsapp"
)

const (
	runTimeout   = 2 * time.Minute
	periodDays   = 7
	sheetRange   = "PNL!A:G"
	sheetHeading = "PNL!A1:G1"
)

const snapshotRunsMetric = "boutique_pnl_snapshot_runs_total"

var sheetHeader = []interface{}{"Start", "End", "Orders", "Total Cost", "Total Selling", "Profit/Loss", "Generated At"}

// Reporter computes and stores a PNL snapshot for a date range.
type Reporter interface {
	SaveSnapshot(ctx context.Context, start, end models.Date) (models.PNLSnapshot, models.PNLReport, error)
}

// Scheduler runs the weekly PNL snapshot job.
type Scheduler struct {
	cron      *cron.Cron
	reporter  Reporter
	sheets    sheets.Repository
	messenger whatsapp.MessagingService
	cfg       config.Config
	location  *time.Location
	runs      *prometheus.CounterVec
	now       func() time.Time
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. sheetsRepo and messenger are
// optional; pass nil to skip the matching export.
func NewScheduler(cfg config.Config, reporter Reporter, sheetsRepo sheets.Repository, messenger whatsapp.MessagingService, registerer prometheus.Registerer, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: snapshotRunsMetric,
		Help: "Weekly PNL snapshot runs by result.",
	}, []string{"result"})
	if registerer != nil {
		if err := registerer.Register(runs); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return nil, fmt.Errorf("register scheduler metrics: %w", err)
			}
			existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, fmt.Errorf("register scheduler metrics: %s is registered with another type", snapshotRunsMetric)
			}
			runs = existing
		}
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		reporter:  reporter,
		sheets:    sheetsRepo,
		messenger: messenger,
		cfg:       cfg,
		location:  location,
		runs:      runs,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Start schedules the snapshot job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("schedule", s.cfg.Reporting.CronSchedule),
		zap.String("timezone", s.location.String()))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, func() {
		_ = s.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule pnl snapshot: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// RunOnce snapshots the trailing seven days ending today. Sheet and WhatsApp
// failures are logged and do not fail the run.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	end := models.DateOf(s.now().In(s.location))
	start := end.AddDays(-(periodDays - 1))
	s.logger.Info("generating pnl snapshot", zap.String("start", start.String()), zap.String("end", end.String()))

	snapshot, report, err := s.reporter.SaveSnapshot(ctx, start, end)
	if err != nil {
		s.runs.WithLabelValues("error").Inc()
		s.logger.Error("failed to generate pnl snapshot", zap.Error(err))
		return err
	}

	if s.sheets != nil {
		if err := s.exportToSheet(ctx, snapshot); err != nil {
			s.logger.Error("failed to export pnl snapshot to sheets", zap.Error(err))
		}
	}

	if s.messenger != nil && s.cfg.WhatsApp.ReportTo != "" {
		req := models.OutboundMessageRequest{
			To:      s.cfg.WhatsApp.ReportTo,
			Message: pnl.Digest(report),
		}
		if err := s.messenger.SendOutbound(ctx, req); err != nil {
			s.logger.Error("failed to send pnl digest", zap.Error(err))
		} else {
			s.logger.Info("pnl digest sent successfully")
		}
	}

	s.runs.WithLabelValues("success").Inc()
	return nil
}

func (s *Scheduler) exportToSheet(ctx context.Context, snapshot models.PNLSnapshot) error {
	existing, err := s.sheets.ReadRange(ctx, sheetHeading)
	if err != nil {
		return err
	}

	rows := [][]interface{}{pnl.SnapshotRow(snapshot)}
	if len(existing) == 0 {
		rows = append([][]interface{}{sheetHeader}, rows...)
	}
	return s.sheets.AppendRows(ctx, sheetRange, rows)
}
