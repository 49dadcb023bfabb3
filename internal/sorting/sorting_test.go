package sorting

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/sortbench/internal/domain/models"
)

func randomServices(rng *rand.Rand, n int) []models.Service {
	names := []string{"Audit", "Backup", "CRM", "DevOps", "Email"}
	out := make([]models.Service, n)
	for i := range out {
		out[i] = models.Service{
			Name:       names[rng.Intn(len(names))],
			Cost:       float64(rng.Intn(20)) * 50,
			Duration:   rng.Intn(30) - 2,
			Prepayment: float64(rng.Intn(4)) * 10,
		}
	}
	return out
}

func counts(arr []models.Service) map[models.Service]int {
	m := make(map[models.Service]int, len(arr))
	for _, s := range arr {
		m[s]++
	}
	return m
}

func TestAll_Order(t *testing.T) {
	var keys []string
	for _, a := range All() {
		keys = append(keys, a.Key)
		require.NotNil(t, a.Sort)
		require.NotEmpty(t, a.Label)
	}
	assert.Equal(t, []string{"bubble", "insertion", "shaker", "library"}, keys)
}

func TestLookup(t *testing.T) {
	a, err := Lookup("shaker")
	require.NoError(t, err)
	assert.Equal(t, "Шейкер-сортировка", a.Label)

	_, err = Lookup("quick")
	assert.Error(t, err)
}

func TestSorts_SortedPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, size := range []int{0, 1, 2, 3, 10, 57, 200} {
		input := randomServices(rng, size)
		for _, algo := range All() {
			got := slices.Clone(input)
			algo.Sort(got)

			assert.Len(t, got, len(input), "%s size %d", algo.Key, size)
			assert.True(t, IsSorted(got), "%s size %d not sorted", algo.Key, size)
			assert.Equal(t, counts(input), counts(got), "%s size %d is not a permutation", algo.Key, size)
		}
	}
}

func TestSorts_AgreeWithLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	input := randomServices(rng, 300)

	want := slices.Clone(input)
	Library(want)

	for _, algo := range All() {
		got := slices.Clone(input)
		algo.Sort(got)
		// cmp picks up Service.Equal, so only the ordering key is compared.
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s disagrees with library sort (-want +got):\n%s", algo.Key, diff)
		}
	}
}

func TestSorts_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sorted := randomServices(rng, 120)
	Library(sorted)

	for _, algo := range All() {
		got := slices.Clone(sorted)
		algo.Sort(got)
		if diff := cmp.Diff(sorted, got); diff != "" {
			t.Errorf("%s changed a sorted input (-want +got):\n%s", algo.Key, diff)
		}
	}
}

func TestHandWrittenSorts_KeepEqualKeysInPlace(t *testing.T) {
	input := []models.Service{
		{Name: "A", Cost: 1, Duration: 1},
		{Name: "A", Cost: 1, Duration: 2},
		{Name: "A", Cost: 1, Duration: 3},
	}
	for _, fn := range []Func{Bubble, Insertion, Shaker} {
		got := slices.Clone(input)
		fn(got)
		assert.Equal(t, input, got)
	}
}

func TestSorts_Scenario(t *testing.T) {
	input := []models.Service{
		{Name: "B", Cost: 10, Duration: 5, Prepayment: 2},
		{Name: "A", Cost: 10, Duration: 5, Prepayment: 2},
		{Name: "C", Cost: 5, Duration: 1, Prepayment: 1},
	}
	want := []models.Service{
		{Name: "C", Cost: 5, Duration: 1, Prepayment: 1},
		{Name: "A", Cost: 10, Duration: 5, Prepayment: 2},
		{Name: "B", Cost: 10, Duration: 5, Prepayment: 2},
	}

	for _, algo := range All() {
		got := slices.Clone(input)
		algo.Sort(got)
		assert.Equal(t, want, got, algo.Key)
	}
}

func TestSorts_EmptyAndSingle(t *testing.T) {
	for _, algo := range All() {
		var empty []models.Service
		assert.NotPanics(t, func() { algo.Sort(empty) })
		assert.Empty(t, empty)

		single := []models.Service{{Name: "only", Cost: 1}}
		algo.Sort(single)
		assert.Equal(t, []models.Service{{Name: "only", Cost: 1}}, single)
	}
}

func TestSorts_ReverseInput(t *testing.T) {
	input := make([]models.Service, 50)
	for i := range input {
		input[i] = models.Service{Name: "svc", Cost: float64(len(input) - i)}
	}
	for _, algo := range All() {
		got := slices.Clone(input)
		algo.Sort(got)
		assert.Equal(t, 1.0, got[0].Cost, algo.Key)
		assert.Equal(t, 50.0, got[len(got)-1].Cost, algo.Key)
		assert.True(t, IsSorted(got), algo.Key)
	}
}

// countComparisons swaps in a counting comparison for the duration of the test.
func countComparisons(t *testing.T) *int {
	t.Helper()
	n := 0
	prev := greater
	greater = func(a, b models.Service) bool {
		n++
		return prev(a, b)
	}
	t.Cleanup(func() { greater = prev })
	return &n
}

func TestBubbleAndShaker_StopAfterCleanPass(t *testing.T) {
	const size = 10000
	sorted := make([]models.Service, size)
	for i := range sorted {
		sorted[i] = models.Service{Name: "svc", Cost: float64(i)}
	}

	for name, fn := range map[string]Func{"bubble": Bubble, "shaker": Shaker, "insertion": Insertion} {
		n := countComparisons(t)
		fn(slices.Clone(sorted))
		assert.Equal(t, size-1, *n, "%s should make a single pass over sorted input", name)
	}
}

func TestShaker_BackwardPassCounts(t *testing.T) {
	// One small element at the end: a forward pass, a backward pass that moves
	// it home, then a clean forward pass.
	input := []models.Service{{Cost: 2}, {Cost: 3}, {Cost: 4}, {Cost: 5}, {Cost: 1}}
	n := countComparisons(t)
	Shaker(input)

	assert.True(t, IsSorted(input))
	assert.Equal(t, 4+3+2, *n)
}
