package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/kickoffbot/internal/config"
	"github.com/omarshaarawi/kickoffbot/internal/service"
)

type Runner interface {
	Run(ctx context.Context) (service.Outcome, error)
}

// Scheduler triggers the daily notifier run inside a long-lived process.
type Scheduler struct {
	s      gocron.Scheduler
	runner Runner
	cfg    config.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(runner Runner, cfg config.Scheduler) (*Scheduler, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load location: %w", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		s:      s,
		runner: runner,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (s *Scheduler) Start() error {
	opts := []gocron.JobOption{
		gocron.WithName("daily-schedule"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if s.cfg.RunOnStart {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	job, err := s.s.NewJob(
		gocron.CronJob(s.cfg.Cron, false),
		gocron.NewTask(s.sendDailySchedule),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to create daily schedule job: %w", err)
	}

	s.s.Start()

	if next, err := job.NextRun(); err == nil {
		slog.Info("Daily schedule job registered", "cron", s.cfg.Cron, "next_run", next.Format(time.RFC3339))
	}
	return nil
}

func (s *Scheduler) Stop() error {
	s.cancel()
	return s.s.Shutdown()
}

func (s *Scheduler) sendDailySchedule() {
	outcome, err := s.runner.Run(s.ctx)
	if err != nil {
		slog.Error("Failed to send daily schedule", "error", err)
		return
	}
	slog.Info("Daily schedule run finished", "outcome", outcome.String())
}
