package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/sortbench/internal/config"
	"github.com/mamadbah2/sortbench/internal/domain/models"
	"github.com/mamadbah2/sortbench/internal/repository/mongodb"
	"github.com/mamadbah2/sortbench/internal/repository/sheets"
	"github.com/mamadbah2/sortbench/internal/service/experiment"
	"github.com/mamadbah2/sortbench/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/sortbench/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/sortbench/pkg/clients/whatsapp"
	"github.com/mamadbah2/sortbench/pkg/logger"
)

// app holds the wired components shared by every command.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	runner *experiment.Runner
	mongo  *mongodb.MongoDBRepository

	closers []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	baseLogger, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(baseLogger)

	a := &app{cfg: cfg, logger: baseLogger}
	a.closers = append(a.closers, func() { _ = baseLogger.Sync() })

	opts := []experiment.Option{
		experiment.WithRunHook("log-summary", func(_ context.Context, s models.RunSummary) error {
			baseLogger.Named("svc.reporting").Info("run summary", zap.String("report", reporting.SummarizeRun(s)))
			return nil
		}),
	}

	if cfg.MongoDB.Enabled() {
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		repo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("init mongodb repository: %w", err)
		}
		a.mongo = repo
		a.closers = append(a.closers, func() {
			if err := repo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		})
		opts = append(opts,
			experiment.WithSink("mongodb", repo),
			experiment.WithRunHook("mongodb", repo.SaveRunSummary))
		baseLogger.Info("mongodb result sink enabled", zap.String("db", cfg.MongoDB.DBName))
	}

	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			a.close()
			return nil, fmt.Errorf("init sheets repository: %w", err)
		}
		opts = append(opts, experiment.WithSink("sheets", sheets.NewMeasurementSink(repo, cfg.Sheets.Range)))
		baseLogger.Info("google sheets result sink enabled", zap.String("range", cfg.Sheets.Range))
	}

	if cfg.WhatsApp.Enabled() {
		notifier := whatsappsvc.NewNotificationService(
			whatsappclient.NewClient(cfg.WhatsApp),
			cfg.WhatsApp.Recipient,
			baseLogger.Named("svc.whatsapp"))
		opts = append(opts, experiment.WithRunHook("whatsapp", notifier.SendRunSummary))
		baseLogger.Info("whatsapp run notifications enabled")
	} else {
		baseLogger.Debug("whatsapp token missing, run notifications disabled")
	}

	a.runner = experiment.NewRunner(cfg.Benchmark, baseLogger.Named("svc.experiment"), opts...)
	return a, nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
