// Package sorting holds the in-place sorts compared by the benchmark. Every
// routine orders services ascending by models.Compare.
package sorting

import (
	"fmt"
	"slices"

	"github.com/mamadbah2/sortbench/internal/domain/models"
)

// Func sorts services in place, ascending.
type Func func([]models.Service)

// Algorithm pairs a sort routine with the names used to select and report it.
type Algorithm struct {
	Key   string // CLI and HTTP identifier
	Label string // written to the results log
	Sort  Func
}

// greater is the single comparison every hand-written sort goes through.
var greater = func(a, b models.Service) bool { return a.Greater(b) }

// Bubble swaps adjacent out-of-order elements and stops after a pass without swaps.
func Bubble(arr []models.Service) {
	n := len(arr)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if greater(arr[j], arr[j+1]) {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

// Insertion grows a sorted prefix, shifting each new element left past every
// element strictly greater than it.
func Insertion(arr []models.Service) {
	for i := 1; i < len(arr); i++ {
		key := arr[i]
		j := i - 1
		for j >= 0 && greater(arr[j], key) {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}

// Shaker is a bidirectional bubble sort. The forward pass carries the maximum of
// the window to its right edge, the backward pass carries the minimum to its left.
func Shaker(arr []models.Service) {
	start, end := 0, len(arr)-1

	for swapped := true; swapped; {
		swapped = false
		for i := start; i < end; i++ {
			if greater(arr[i], arr[i+1]) {
				arr[i], arr[i+1] = arr[i+1], arr[i]
				swapped = true
			}
		}
		if !swapped {
			return
		}

		swapped = false
		end--
		for i := end - 1; i >= start; i-- {
			if greater(arr[i], arr[i+1]) {
				arr[i], arr[i+1] = arr[i+1], arr[i]
				swapped = true
			}
		}
		start++
	}
}

// Library is the baseline: the standard library's pattern-defeating quicksort.
func Library(arr []models.Service) {
	slices.SortFunc(arr, models.Compare)
}

var algorithms = []Algorithm{
	{Key: "bubble", Label: "Сортировка пузырьком", Sort: Bubble},
	{Key: "insertion", Label: "Сортировка вставками", Sort: Insertion},
	{Key: "shaker", Label: "Шейкер-сортировка", Sort: Shaker},
	{Key: "library", Label: "std::sort", Sort: Library},
}

// All returns the benchmarked algorithms in execution order, baseline last.
func All() []Algorithm {
	return slices.Clone(algorithms)
}

// Lookup finds an algorithm by key.
func Lookup(key string) (Algorithm, error) {
	for _, a := range algorithms {
		if a.Key == key {
			return a, nil
		}
	}
	return Algorithm{}, fmt.Errorf("unknown sort algorithm %q", key)
}

// IsSorted reports whether arr is non-decreasing under models.Compare.
func IsSorted(arr []models.Service) bool {
	return slices.IsSortedFunc(arr, models.Compare)
}
