package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_KeyPriority(t *testing.T) {
	cheap := Service{Name: "Z", Cost: 5, Prepayment: 9}
	pricey := Service{Name: "A", Cost: 10, Prepayment: 1}
	assert.Equal(t, -1, Compare(cheap, pricey), "cost is the primary key")
	assert.Equal(t, 1, Compare(pricey, cheap))

	lowPre := Service{Name: "Z", Cost: 10, Prepayment: 1}
	highPre := Service{Name: "A", Cost: 10, Prepayment: 2}
	assert.True(t, lowPre.Less(highPre), "prepayment breaks cost ties")

	a := Service{Name: "A", Cost: 10, Prepayment: 2}
	b := Service{Name: "B", Cost: 10, Prepayment: 2}
	assert.True(t, a.Less(b), "name breaks remaining ties")
	assert.True(t, b.Greater(a))
}

func TestEqual_IgnoresDuration(t *testing.T) {
	a := Service{Name: "Support", Cost: 10, Duration: 1, Prepayment: 2}
	b := Service{Name: "Support", Cost: 10, Duration: 99, Prepayment: 2}

	assert.True(t, a.Equal(b))
	assert.False(t, a.NotEqual(b))
	assert.False(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, a.LessOrEqual(b))
	assert.True(t, a.GreaterOrEqual(b))
}

func TestCompare_NoEpsilon(t *testing.T) {
	x, y := 0.1, 0.2
	a := Service{Name: "x", Cost: x + y}
	b := Service{Name: "x", Cost: 0.3}
	assert.False(t, a.Equal(b), "0.1+0.2 and 0.3 differ in their stored bits")
	assert.True(t, b.Less(a))
}

func TestOrderLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	names := []string{"A", "B", "C"}
	gen := func() Service {
		return Service{
			Name:       names[rng.Intn(len(names))],
			Cost:       float64(rng.Intn(3)),
			Duration:   rng.Intn(5),
			Prepayment: float64(rng.Intn(3)),
		}
	}

	for i := 0; i < 500; i++ {
		a, b, c := gen(), gen(), gen()

		assert.False(t, a.Less(a), "strict less is irreflexive")
		if a.Less(b) {
			assert.False(t, b.Less(a))
		}
		if a.Less(b) && b.Less(c) {
			assert.True(t, a.Less(c), "transitivity for %v %v %v", a, b, c)
		}
		assert.Equal(t, a.Equal(b), !a.Less(b) && !b.Less(a))
		assert.Equal(t, a.Greater(b), b.Less(a))
		assert.Equal(t, a.LessOrEqual(b), !b.Less(a))
		assert.Equal(t, a.GreaterOrEqual(b), !a.Less(b))
		assert.Equal(t, Compare(a, b), -Compare(b, a))
	}
}
