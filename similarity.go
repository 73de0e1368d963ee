package ai

import (
	"fmt"
	"math"
	"slices"
)

// CosineSimilarity compares two embedding vectors of equal length. The
// result is in [-1, 1].
func CosineSimilarity(a, b []float32) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0, fmt.Errorf("%w: zero vector", ErrInvalidArgument)
	}
	return dot(a, b) / (na * nb), nil
}

// Match is one candidate scored against a query vector.
type Match struct {
	Index int
	Score float64
}

// RankBySimilarity scores every candidate against query and returns them
// best first. Equal scores keep candidate order.
func RankBySimilarity(query []float32, candidates [][]float32) ([]Match, error) {
	out := make([]Match, 0, len(candidates))
	for i, c := range candidates {
		score, err := CosineSimilarity(query, c)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		out = append(out, Match{Index: i, Score: score})
	}
	slices.SortStableFunc(out, func(x, y Match) int {
		switch {
		case x.Score > y.Score:
			return -1
		case x.Score < y.Score:
			return 1
		}
		return 0
	})
	return out, nil
}

func checkPair(a, b []float32) error {
	if len(a) == 0 || len(b) == 0 {
		return fmt.Errorf("%w: vectors must be non-empty", ErrInvalidArgument)
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: vector length mismatch: %d != %d", ErrInvalidArgument, len(a), len(b))
	}
	return nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}
