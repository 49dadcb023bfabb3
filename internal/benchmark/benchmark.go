// Package benchmark times sort routines against private copies of a dataset.
package benchmark

import (
	"slices"
	"time"

	"github.com/mamadbah2/sortbench/internal/domain/models"
	"github.com/mamadbah2/sortbench/internal/sorting"
)

// Measure copies data, sorts the copy with fn and returns the elapsed
// wall-clock time of the sort call alone, in milliseconds. data is never modified.
func Measure(fn sorting.Func, data []models.Service) float64 {
	_, ms := sortCopy(time.Now, fn, data)
	return ms
}

// Sort is Measure that also hands back the sorted copy.
func Sort(fn sorting.Func, data []models.Service) ([]models.Service, float64) {
	return sortCopy(time.Now, fn, data)
}

func sortCopy(now func() time.Time, fn sorting.Func, data []models.Service) ([]models.Service, float64) {
	working := slices.Clone(data)

	start := now()
	fn(working)
	elapsed := now().Sub(start)

	return working, float64(elapsed.Nanoseconds()) / float64(time.Millisecond)
}
