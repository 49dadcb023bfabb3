package models

import "time"

// Measurement is one timed sort of one dataset by one algorithm.
type Measurement struct {
	RunID        string    `bson:"run_id" json:"run_id"`
	DatasetSize  int       `bson:"dataset_size" json:"dataset_size"`
	Algorithm    string    `bson:"algorithm" json:"algorithm"`
	Milliseconds float64   `bson:"milliseconds" json:"milliseconds"`
	RecordedAt   time.Time `bson:"recorded_at" json:"recorded_at"`
}
