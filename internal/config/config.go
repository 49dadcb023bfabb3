package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatasetSizes are the nominal record counts of the bundled datasets.
var DefaultDatasetSizes = []int{
	100, 8100, 16100, 24100, 32100, 40100, 48100,
	56100, 64100, 72100, 80100, 88100, 96100,
}

// Config represents the full application configuration surface.
type Config struct {
	Benchmark BenchmarkConfig
	Log       LogConfig
	Server    ServerConfig
	Schedule  ScheduleConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
}

// BenchmarkConfig describes where datasets come from and where results go.
type BenchmarkConfig struct {
	DatasetSizes      []int
	DatasetsDir       string
	DatasetPattern    string
	TimingResultsPath string
	SortedOutputBase  string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// ScheduleConfig holds scheduler-related settings. An empty CronSchedule
// disables scheduled runs.
type ScheduleConfig struct {
	CronSchedule string
	Timezone     string
}

// MongoDBConfig holds settings for MongoDB. An empty URI disables the sink.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration required to append results to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// WhatsAppConfig contains credentials for sending run summaries through the
// Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	Recipient     string
}

// Enabled reports whether the MongoDB sink is configured.
func (c MongoDBConfig) Enabled() bool { return c.URI != "" }

// Enabled reports whether the Google Sheets sink is configured.
func (c SheetsConfig) Enabled() bool { return c.SpreadsheetID != "" }

// Enabled reports whether run summaries should be sent.
func (c WhatsAppConfig) Enabled() bool { return c.AccessToken != "" }

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	sizes := DefaultDatasetSizes
	if raw := os.Getenv("BENCH_DATASET_SIZES"); raw != "" {
		parsed, err := ParseSizes(raw)
		if err != nil {
			return nil, fmt.Errorf("BENCH_DATASET_SIZES: %w", err)
		}
		sizes = parsed
	}

	cfg := &Config{
		Benchmark: BenchmarkConfig{
			DatasetSizes:      sizes,
			DatasetsDir:       getenvWithDefault("BENCH_DATASETS_DIR", "datasets"),
			DatasetPattern:    getenvWithDefault("BENCH_DATASET_PATTERN", "it_services_dataset_diverse_"),
			TimingResultsPath: getenvWithDefault("BENCH_TIMING_RESULTS_PATH", "results/timing_results_bvg_all.csv"),
			SortedOutputBase:  getenvWithDefault("BENCH_SORTED_OUTPUT_BASE", "results/sorted_services"),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", "json"),
		},
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Schedule: ScheduleConfig{
			CronSchedule: os.Getenv("BENCH_CRON_SCHEDULE"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "sortbench"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_RESULTS_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RESULTS_RANGE", "Timings!A:D"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			Recipient:     os.Getenv("WHATSAPP_REPORT_RECIPIENT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if len(c.Benchmark.DatasetSizes) == 0 {
		return errors.New("at least one dataset size must be configured")
	}
	for _, size := range c.Benchmark.DatasetSizes {
		if size <= 0 {
			return fmt.Errorf("dataset size %d must be positive", size)
		}
	}

	switch {
	case c.Benchmark.DatasetsDir == "":
		return errors.New("BENCH_DATASETS_DIR must not be empty")
	case c.Benchmark.DatasetPattern == "":
		return errors.New("BENCH_DATASET_PATTERN must not be empty")
	case c.Benchmark.TimingResultsPath == "":
		return errors.New("BENCH_TIMING_RESULTS_PATH must not be empty")
	case c.Benchmark.SortedOutputBase == "":
		return errors.New("BENCH_SORTED_OUTPUT_BASE must not be empty")
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Schedule.Timezone, err)
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty when MONGODB_URI is set")
	}

	if c.Sheets.Enabled() {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided with GOOGLE_SHEET_RESULTS_ID")
		}
		if c.Sheets.Range == "" {
			return errors.New("GOOGLE_SHEET_RESULTS_RANGE must not be empty")
		}
	} else if c.Sheets.CredentialsPath != "" {
		return errors.New("GOOGLE_SHEET_RESULTS_ID must be provided with GOOGLE_SHEETS_CREDENTIALS_PATH")
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.WhatsApp.Recipient == "":
			return errors.New("WHATSAPP_REPORT_RECIPIENT must be provided")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	return nil
}

// DatasetPath returns the input file for a nominal dataset size.
func (c BenchmarkConfig) DatasetPath(size int) string {
	return filepath.Join(c.DatasetsDir, fmt.Sprintf("%s%d.csv", c.DatasetPattern, size))
}

// SortedOutputPath returns the sorted output file for a dataset of count records.
func (c BenchmarkConfig) SortedOutputPath(count int) string {
	return fmt.Sprintf("%s_%d_std_sort.csv", c.SortedOutputBase, count)
}

// ParseSizes parses a comma separated list of positive dataset sizes.
func ParseSizes(raw string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid dataset size %q: %w", part, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("dataset size %d must be positive", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.New("no dataset sizes listed")
	}
	return sizes, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
