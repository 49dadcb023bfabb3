package models

import "time"

// DatasetResult groups the measurements taken for a single dataset file.
type DatasetResult struct {
	ExpectedSize int           `bson:"expected_size" json:"expected_size"`
	ActualSize   int           `bson:"actual_size" json:"actual_size"`
	Path         string        `bson:"path" json:"path"`
	Measurements []Measurement `bson:"measurements" json:"measurements"`
}

// SkippedDataset records a dataset size that produced no measurements.
type SkippedDataset struct {
	Size   int    `bson:"size" json:"size"`
	Path   string `bson:"path" json:"path"`
	Reason string `bson:"reason" json:"reason"`
}

// RunSummary is the outcome of one pass over every configured dataset size.
type RunSummary struct {
	RunID      string           `bson:"run_id" json:"run_id"`
	StartedAt  time.Time        `bson:"started_at" json:"started_at"`
	FinishedAt time.Time        `bson:"finished_at" json:"finished_at"`
	Datasets   []DatasetResult  `bson:"datasets" json:"datasets"`
	Skipped    []SkippedDataset `bson:"skipped" json:"skipped"`
	OutputPath string           `bson:"output_path,omitempty" json:"output_path,omitempty"`
}

// Measurements flattens every dataset's measurements in run order.
func (r RunSummary) Measurements() []Measurement {
	var out []Measurement
	for _, ds := range r.Datasets {
		out = append(out, ds.Measurements...)
	}
	return out
}
