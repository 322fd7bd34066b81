// Package stats turns a batch of final bankrolls into the figures the sweep reports:
// nearest-rank percentiles, ruin and positive fractions, histogram bins, and a Pareto tail fit.
package stats

import (
	"fmt"
	"math"
	"slices"

	"github.com/osse101/RuinSim_Go/internal/domain"
)

// Percentiles reported for every probability
const (
	Median       = 0.50
	Percentile90 = 0.90
	Percentile99 = 0.99
)

// Summary holds the aggregate statistics of one batch
type Summary struct {
	FractionPositive float64
	FractionRuined   float64
	Average          float64
	P50              float64
	P90              float64
	P99              float64
	Sorted           []float64
}

// Summarize computes the aggregate statistics of a batch.
// The input is not modified; Summary.Sorted is an ascending copy.
func Summarize(bankrolls []float64, startingBankroll float64) (Summary, error) {
	n := len(bankrolls)
	if n == 0 {
		return Summary{}, fmt.Errorf("%w: cannot summarize zero bankrolls", domain.ErrEmptyBatch)
	}

	sorted := slices.Clone(bankrolls)
	slices.Sort(sorted)

	var positive, ruined int
	var sum float64
	for _, b := range sorted {
		if b > startingBankroll {
			positive++
		}
		if b == 0 {
			ruined++
		}
		sum += b
	}

	return Summary{
		FractionPositive: float64(positive) / float64(n),
		FractionRuined:   float64(ruined) / float64(n),
		Average:          sum / float64(n),
		P50:              Percentile(sorted, Median),
		P90:              Percentile(sorted, Percentile90),
		P99:              Percentile(sorted, Percentile99),
		Sorted:           sorted,
	}, nil
}

// Percentile returns the nearest-rank value at index floor(q*(n-1)) of ascending data.
// Returns 0 for empty input.
func Percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Floor(q * float64(n-1)))
	idx = max(0, min(idx, n-1))
	return sorted[idx]
}

// Result builds the ProbabilityResult for win probability p
func Result(p float64, bankrolls []float64, startingBankroll float64) (domain.ProbabilityResult, error) {
	s, err := Summarize(bankrolls, startingBankroll)
	if err != nil {
		return domain.ProbabilityResult{}, fmt.Errorf("p=%.2f: %w", p, err)
	}
	return domain.ProbabilityResult{
		P:                p,
		Variance:         domain.Variance(p),
		FractionPositive: s.FractionPositive,
		FractionRuined:   s.FractionRuined,
		P50:              s.P50,
		P90:              s.P90,
		P99:              s.P99,
		Average:          s.Average,
		FinalBankrolls:   s.Sorted,
	}, nil
}
