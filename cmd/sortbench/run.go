package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark once over every configured dataset size",
	RunE:  runBenchmark,
}

func runBenchmark(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	summary, err := a.runner.Run(ctx)
	if err != nil {
		a.logger.Error("benchmark aborted", zap.Error(err))
		return err
	}

	a.logger.Info("benchmark finished",
		zap.String("run_id", summary.RunID),
		zap.Int("datasets", len(summary.Datasets)),
		zap.Int("skipped", len(summary.Skipped)),
		zap.String("output", summary.OutputPath))
	return nil
}
