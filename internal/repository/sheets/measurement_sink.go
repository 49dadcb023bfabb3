package sheets

import (
	"context"
	"strconv"

	"github.com/mamadbah2/sortbench/internal/domain/models"
)

// MeasurementSink turns measurements into spreadsheet rows:
// run id, dataset size, algorithm, milliseconds.
type MeasurementSink struct {
	repo       Repository
	sheetRange string
}

// NewMeasurementSink binds repo to the range rows are appended to.
func NewMeasurementSink(repo Repository, sheetRange string) *MeasurementSink {
	return &MeasurementSink{repo: repo, sheetRange: sheetRange}
}

// Append writes one row per measurement.
func (s *MeasurementSink) Append(ctx context.Context, measurements []models.Measurement) error {
	rows := make([][]interface{}, 0, len(measurements))
	for _, m := range measurements {
		rows = append(rows, []interface{}{
			m.RunID,
			m.DatasetSize,
			m.Algorithm,
			strconv.FormatFloat(m.Milliseconds, 'f', 4, 64),
		})
	}
	return s.repo.WriteRows(ctx, s.sheetRange, rows)
}
