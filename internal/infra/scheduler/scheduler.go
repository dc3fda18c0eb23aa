package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Spok95/gym-crm/internal/domain/attendance"
	"github.com/Spok95/gym-crm/internal/infra/metrics"
	"github.com/robfig/cron/v3"
)

// Scheduler дёргает ежедневный пересчёт абонементов по крону.
type Scheduler struct {
	cron     *cron.Cron
	sweeper  *attendance.Sweeper
	log      *slog.Logger
	schedule string
}

func New(sweeper *attendance.Sweeper, log *slog.Logger, schedule string) *Scheduler {
	cronLog := cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLog)))
	return &Scheduler{cron: c, sweeper: sweeper, log: log, schedule: schedule}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("sweep scheduled", "schedule", s.schedule)
	return nil
}

// Stop останавливает крон; возвращённый контекст закрывается,
// когда дорабатывают уже запущенные задачи.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	ctx := context.Background()
	start := time.Now()

	results, err := s.sweeper.Run(ctx, time.Now())
	if err != nil {
		s.log.Error("sweep failed", "err", err)
		return
	}

	for _, r := range results {
		metrics.SweepMembersTotal.WithLabelValues(string(r.Outcome)).Inc()
	}
	metrics.SweepRunsTotal.Inc()
	metrics.SweepDuration.Observe(time.Since(start).Seconds())
}
