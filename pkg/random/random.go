package random

import (
	"math/rand"
	"time"
)

// Source wraps a seeded math/rand generator so a synthetic data run is
// reproducible for a given seed.
type Source struct {
	rnd *rand.Rand
}

// New creates a new seeded Source
func New(seed int64) *Source {
	return &Source{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns a random element from items
func (s *Source) Pick(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[s.rnd.Intn(len(items))]
}

// Weighted returns an index into weights, chosen with probability
// proportional to the weight at that index. Weights do not need to sum
// to 1.
func (s *Source) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}

	target := s.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// IntBetween returns a random int in [lo, hi] inclusive
func (s *Source) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rnd.Intn(hi-lo+1)
}

// Chance returns true with probability p (0.0 to 1.0)
func (s *Source) Chance(p float64) bool {
	return s.rnd.Float64() < p
}

// DateBetween returns a random calendar day between 1 January of
// startYear and 31 December of endYear, inclusive.
func (s *Source) DateBetween(startYear, endYear int) time.Time {
	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, s.rnd.Intn(days+1))
}
