package reporting

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/sortbench/internal/domain/models"
)

const timeLayout = "2006-01-02 15:04:05 MST"

// FastestPerDataset returns the fastest measurement of each dataset, in run order.
func FastestPerDataset(summary models.RunSummary) []models.Measurement {
	var out []models.Measurement
	for _, ds := range summary.Datasets {
		if best, ok := fastest(ds); ok {
			out = append(out, best)
		}
	}
	return out
}

func fastest(ds models.DatasetResult) (models.Measurement, bool) {
	if len(ds.Measurements) == 0 {
		return models.Measurement{}, false
	}
	best := ds.Measurements[0]
	for _, m := range ds.Measurements[1:] {
		if m.Milliseconds < best.Milliseconds {
			best = m
		}
	}
	return best, true
}

// SummarizeRun renders a plain text report of a run suitable for chat delivery.
func SummarizeRun(summary models.RunSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sort benchmark %s\n", summary.RunID)
	fmt.Fprintf(&b, "Started %s, finished %s\n", summary.StartedAt.Format(timeLayout), summary.FinishedAt.Format(timeLayout))

	if len(summary.Datasets) == 0 {
		b.WriteString("No dataset could be loaded.\n")
	}

	for _, ds := range summary.Datasets {
		fmt.Fprintf(&b, "\n%d records", ds.ActualSize)
		if ds.ActualSize != ds.ExpectedSize {
			fmt.Fprintf(&b, " (expected %d)", ds.ExpectedSize)
		}
		b.WriteString(":\n")
		for _, m := range ds.Measurements {
			fmt.Fprintf(&b, "- %s: %.4f ms\n", m.Algorithm, m.Milliseconds)
		}
		if best, ok := fastest(ds); ok {
			fmt.Fprintf(&b, "Fastest: %s\n", best.Algorithm)
		}
	}

	if len(summary.Skipped) > 0 {
		b.WriteString("\nSkipped:\n")
		for _, s := range summary.Skipped {
			fmt.Fprintf(&b, "- %d (%s): %s\n", s.Size, s.Path, s.Reason)
		}
	}

	if summary.OutputPath != "" {
		fmt.Fprintf(&b, "\nSorted output: %s\n", summary.OutputPath)
	}

	return strings.TrimRight(b.String(), "\n")
}
