// Package experiment drives a benchmark run: for each configured dataset size it
// loads the dataset, times every algorithm on its own copy, records the
// measurements and, once all sizes are done, saves the largest loaded dataset
// in sorted order.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/sortbench/internal/benchmark"
	"github.com/mamadbah2/sortbench/internal/codec"
	"github.com/mamadbah2/sortbench/internal/config"
	"github.com/mamadbah2/sortbench/internal/domain/models"
	"github.com/mamadbah2/sortbench/internal/repository/resultslog"
	"github.com/mamadbah2/sortbench/internal/sorting"
)

// ResultSink receives the measurements of each dataset size as soon as they are taken.
type ResultSink interface {
	Append(ctx context.Context, measurements []models.Measurement) error
}

// RunHook is called with the summary of every finished run.
type RunHook func(ctx context.Context, summary models.RunSummary) error

type namedSink struct {
	name string
	sink ResultSink
}

type namedHook struct {
	name string
	hook RunHook
}

// Runner executes benchmark runs. Runs never overlap: a second Run call waits
// for the first to finish.
type Runner struct {
	cfg        config.BenchmarkConfig
	algorithms []sorting.Algorithm
	sinks      []namedSink
	hooks      []namedHook
	logger     *zap.Logger

	load    func(path string) ([]models.Service, error)
	save    func(path string, services []models.Service) error
	measure func(fn sorting.Func, data []models.Service) float64
	now     func() time.Time
	newID   func() string

	runMu sync.Mutex

	mu     sync.RWMutex
	latest *models.RunSummary
}

// Option customises a Runner.
type Option func(*Runner)

// WithSink forwards measurements to sink in addition to the results log. Sink
// failures are logged and never stop the run.
func WithSink(name string, sink ResultSink) Option {
	return func(r *Runner) { r.sinks = append(r.sinks, namedSink{name: name, sink: sink}) }
}

// WithRunHook registers hook to be called after each run.
func WithRunHook(name string, hook RunHook) Option {
	return func(r *Runner) { r.hooks = append(r.hooks, namedHook{name: name, hook: hook}) }
}

// WithAlgorithms replaces the default algorithm set.
func WithAlgorithms(algorithms []sorting.Algorithm) Option {
	return func(r *Runner) { r.algorithms = algorithms }
}

// NewRunner builds a runner for cfg.
func NewRunner(cfg config.BenchmarkConfig, logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		cfg:        cfg,
		algorithms: sorting.All(),
		logger:     logger,
		load:       codec.LoadServices,
		save:       codec.SaveServices,
		measure:    benchmark.Measure,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Latest returns the summary of the most recent successful run.
func (r *Runner) Latest() (models.RunSummary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return models.RunSummary{}, false
	}
	return *r.latest, true
}

// LatestRun is Latest for callers that look runs up by context, returning nil
// before the first run completes.
func (r *Runner) LatestRun(context.Context) (*models.RunSummary, error) {
	summary, ok := r.Latest()
	if !ok {
		return nil, nil
	}
	return &summary, nil
}

// Run performs one full pass over the configured dataset sizes. The only error
// it returns is a failure to create the results log; every per-dataset problem
// is logged and recorded in the summary instead.
func (r *Runner) Run(ctx context.Context) (models.RunSummary, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	summary := models.RunSummary{
		RunID:     r.newID(),
		StartedAt: r.now().UTC(),
	}
	logger := r.logger.With(zap.String("run_id", summary.RunID))

	resultsLog, err := resultslog.Create(r.cfg.TimingResultsPath)
	if err != nil {
		logger.Error("cannot open results log", zap.String("path", r.cfg.TimingResultsPath), zap.Error(err))
		return summary, err
	}
	logger.Info("results log opened", zap.String("path", resultsLog.Path()))

	defer func() {
		if err := resultsLog.Close(); err != nil {
			logger.Error("failed to close results log", zap.Error(err))
			return
		}
		logger.Info("results log closed", zap.String("path", resultsLog.Path()))
	}()

	var last []models.Service

	for _, size := range r.cfg.DatasetSizes {
		path := r.cfg.DatasetPath(size)
		logger.Info("processing dataset", zap.String("path", path), zap.Int("size", size))

		data, err := r.load(path)
		if err != nil {
			reason := skipReason(err)
			logger.Warn("skipping dataset", zap.Int("size", size), zap.String("path", path), zap.String("reason", reason), zap.Error(err))
			summary.Skipped = append(summary.Skipped, models.SkippedDataset{Size: size, Path: path, Reason: reason})
			continue
		}

		effective := len(data)
		if effective != size {
			logger.Warn("dataset size mismatch", zap.String("path", path), zap.Int("expected", size), zap.Int("loaded", effective))
		}
		logger.Info("dataset loaded", zap.Int("records", effective))

		measurements := r.runAlgorithms(summary.RunID, effective, data, logger)
		r.record(ctx, resultsLog, measurements, logger)

		summary.Datasets = append(summary.Datasets, models.DatasetResult{
			ExpectedSize: size,
			ActualSize:   effective,
			Path:         path,
			Measurements: measurements,
		})
		last = data
	}

	summary.OutputPath = r.finalize(last, logger)
	summary.FinishedAt = r.now().UTC()

	r.mu.Lock()
	stored := summary
	r.latest = &stored
	r.mu.Unlock()

	for _, h := range r.hooks {
		if err := h.hook(ctx, summary); err != nil {
			logger.Error("run hook failed", zap.String("hook", h.name), zap.Error(err))
		}
	}

	return summary, nil
}

func (r *Runner) runAlgorithms(runID string, size int, data []models.Service, logger *zap.Logger) []models.Measurement {
	measurements := make([]models.Measurement, 0, len(r.algorithms))
	for _, algo := range r.algorithms {
		ms := r.measure(algo.Sort, data)
		logger.Info("sort finished",
			zap.String("algorithm", algo.Key),
			zap.Int("size", size),
			zap.String("elapsed_ms", fmt.Sprintf("%.4f", ms)))

		measurements = append(measurements, models.Measurement{
			RunID:        runID,
			DatasetSize:  size,
			Algorithm:    algo.Label,
			Milliseconds: ms,
			RecordedAt:   r.now().UTC(),
		})
	}
	return measurements
}

func (r *Runner) record(ctx context.Context, resultsLog *resultslog.Log, measurements []models.Measurement, logger *zap.Logger) {
	if err := resultsLog.Append(ctx, measurements); err != nil {
		logger.Error("failed to append to results log", zap.Error(err))
	}
	for _, s := range r.sinks {
		if err := s.sink.Append(ctx, measurements); err != nil {
			logger.Error("result sink failed", zap.String("sink", s.name), zap.Error(err))
		}
	}
}

// finalize sorts the last loaded dataset with the baseline sort and saves it.
// It returns the output path, or "" when nothing was written.
func (r *Runner) finalize(last []models.Service, logger *zap.Logger) string {
	if len(last) == 0 {
		logger.Warn("no dataset was loaded, sorted output not produced")
		return ""
	}

	sorted := slices.Clone(last)
	sorting.Library(sorted)

	path := r.cfg.SortedOutputPath(len(sorted))
	logger.Info("saving sorted output", zap.String("path", path), zap.Int("records", len(sorted)))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create output directory", zap.String("dir", dir), zap.Error(err))
			return ""
		}
	}
	if err := r.save(path, sorted); err != nil {
		logger.Error("failed to save sorted output", zap.String("path", path), zap.Error(err))
		return ""
	}

	logger.Info("sorted output saved", zap.String("path", path))
	return path
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, codec.ErrOpenDataset):
		return "open failed"
	case errors.Is(err, codec.ErrEmptyDataset):
		return "empty or header only"
	default:
		return "read failed"
	}
}
