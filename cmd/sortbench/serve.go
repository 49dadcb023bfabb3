package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/sortbench/internal/scheduler"
	"github.com/mamadbah2/sortbench/internal/server/handlers"
	"github.com/mamadbah2/sortbench/internal/server/router"
)

var runOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and run the benchmark on BENCH_CRON_SCHEDULE",
	RunE:  serve,
}

func init() {
	serveCmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "run the benchmark once before serving")
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if runOnStart {
		if _, err := a.runner.Run(ctx); err != nil {
			a.logger.Error("initial benchmark aborted", zap.Error(err))
			return err
		}
	}

	if a.cfg.Schedule.CronSchedule != "" {
		sched, err := scheduler.NewScheduler(a.cfg.Schedule, a.runner, a.logger.Named("scheduler"))
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	} else {
		a.logger.Info("BENCH_CRON_SCHEDULE empty, scheduled runs disabled")
	}

	var history handlers.RunHistory = a.runner
	if a.mongo != nil {
		history = a.mongo
	}
	engine := router.New(handlers.NewBenchmarkHandler(history, a.logger.Named("handlers.benchmark")), a.logger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", zap.String("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.logger.Error("http server crashed", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("graceful shutdown failed", zap.Error(err))
	}
	return nil
}
