package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/sortbench/internal/config"
	"github.com/mamadbah2/sortbench/internal/domain/models"
)

// Runner is the benchmark run the scheduler triggers.
type Runner interface {
	Run(ctx context.Context) (models.RunSummary, error)
}

// Scheduler triggers benchmark runs on a cron schedule. A tick that fires while
// the previous run is still going is skipped.
type Scheduler struct {
	cron     *cron.Cron
	runner   Runner
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ScheduleConfig, runner Runner, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	cronLogger := zapCronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	s := &Scheduler{
		cron:     c,
		runner:   runner,
		schedule: cfg.CronSchedule,
		logger:   logger,
	}

	if _, err := c.AddFunc(cfg.CronSchedule, s.runBenchmark); err != nil {
		return nil, fmt.Errorf("schedule benchmark %q: %w", cfg.CronSchedule, err)
	}

	return s, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running benchmark to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runBenchmark() {
	s.logger.Info("scheduled benchmark starting")

	summary, err := s.runner.Run(context.Background())
	if err != nil {
		s.logger.Error("scheduled benchmark failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled benchmark finished",
		zap.String("run_id", summary.RunID),
		zap.Int("datasets", len(summary.Datasets)),
		zap.Int("skipped", len(summary.Skipped)))
}

// zapCronLogger adapts zap to the cron.Logger interface.
type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
