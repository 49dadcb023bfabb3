package main

import (
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "sortbench",
	Short: "Benchmark bubble, insertion and shaker sort against the library sort",
	Long: `sortbench loads service datasets of increasing size, times bubble,
insertion and shaker sort against the standard library sort on identical
copies, appends the timings to a CSV results log and saves the largest
dataset in sorted order.`,
	SilenceUsage: true,
	RunE:         runBenchmark,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env if present)")
	rootCmd.AddCommand(runCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
