package domain

import (
	"fmt"
	"time"
)

// SimulationConfig is the immutable input to a sweep.
// Exactly one of FlatBetAmount / KellyFractionPercent is meaningful, chosen by Strategy.
type SimulationConfig struct {
	MaxGames              int      `json:"max_games"`
	PlayersPerProbability int      `json:"players_per_probability"`
	StartingBankroll      float64  `json:"starting_bankroll"`
	Strategy              Strategy `json:"strategy"`
	FlatBetAmount         float64  `json:"flat_bet_amount,omitempty"`        // used iff Strategy == flat
	KellyFractionPercent  float64  `json:"kelly_fraction_percent,omitempty"` // used iff Strategy == kelly
	Seed                  uint64   `json:"seed"`                             // root of every random stream in the sweep
}

// Validate checks the engine preconditions. Boundary code substitutes defaults
// before a config gets here, so a failure means a programming error upstream.
func (c SimulationConfig) Validate() error {
	switch {
	case c.MaxGames < 0:
		return fmt.Errorf("%w: max games must not be negative", ErrInvalidConfig)
	case c.PlayersPerProbability < 1:
		return fmt.Errorf("%w: players per probability must be at least 1", ErrInvalidConfig)
	case c.StartingBankroll < 0:
		return fmt.Errorf("%w: starting bankroll must not be negative", ErrInvalidConfig)
	case !c.Strategy.Valid():
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Strategy)
	case c.Strategy == StrategyFlatBet && c.FlatBetAmount <= 0:
		return fmt.Errorf("%w: flat bet amount must be positive", ErrInvalidConfig)
	case c.Strategy == StrategyKellyFraction && (c.KellyFractionPercent < MinKellyFractionPercent || c.KellyFractionPercent > MaxKellyFractionPercent):
		return fmt.Errorf("%w: kelly fraction must be within [%d,%d]", ErrInvalidConfig, MinKellyFractionPercent, MaxKellyFractionPercent)
	}
	return nil
}

// WorstCaseSteps is the most player-steps a sweep of c can take: every player
// at every probability playing all MaxGames rounds
func (c SimulationConfig) WorstCaseSteps() int64 {
	return int64(c.PlayersPerProbability) * int64(c.MaxGames) * ProbabilitySteps
}

// StrategyLabel returns the human-readable strategy name shown next to results
func (c SimulationConfig) StrategyLabel() string {
	switch c.Strategy {
	case StrategyBoldPlay:
		return "Bold Play (Bet All)"
	case StrategyFlatBet:
		return fmt.Sprintf("Flat $%g Bet", c.FlatBetAmount)
	case StrategyKellyFraction:
		return fmt.Sprintf("Kelly (%g%% of bankroll)", c.KellyFractionPercent)
	}
	return string(c.Strategy)
}

// ProbabilityResult holds the aggregate statistics for one win probability
type ProbabilityResult struct {
	P                float64   `json:"p"`
	Variance         float64   `json:"variance"`          // 4p(1-p)
	FractionPositive float64   `json:"fraction_positive"` // ended strictly above the starting bankroll
	FractionRuined   float64   `json:"fraction_ruined"`   // ended at exactly zero
	P50              float64   `json:"p50"`
	P90              float64   `json:"p90"`
	P99              float64   `json:"p99"`
	Average          float64   `json:"average"`
	FinalBankrolls   []float64 `json:"final_bankrolls"` // ascending
}

// SweepResult is one ProbabilityResult per swept p, ordered by ascending p
type SweepResult struct {
	ID        string              `json:"id"`
	Config    SimulationConfig    `json:"config"`
	Label     string              `json:"label"`
	Results   []ProbabilityResult `json:"results"`
	CreatedAt time.Time           `json:"created_at"`
	Duration  time.Duration       `json:"duration_ns"`
}

// At returns the result at the given sweep index
func (s *SweepResult) At(index int) (*ProbabilityResult, error) {
	if index < 0 || index >= len(s.Results) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(s.Results))
	}
	return &s.Results[index], nil
}

// HistogramBins pairs range labels with the number of bankrolls in each range
type HistogramBins struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// Total returns the sum of all bin counts
func (h HistogramBins) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// ParetoFit is a maximum-likelihood Pareto Type-I fit to the positive bankrolls.
// When Defined is false, Alpha and Xm are zero and every density sample is zero.
type ParetoFit struct {
	Defined bool      `json:"defined"`
	Alpha   float64   `json:"alpha"`
	Xm      float64   `json:"xm"`
	Samples int       `json:"samples"` // positive bankrolls used for the fit
	Density []float64 `json:"density"` // expected count at each bin midpoint
}

// Distribution is the histogram view of one ProbabilityResult with its Pareto overlay
type Distribution struct {
	P         float64       `json:"p"`
	Variance  float64       `json:"variance"`
	Histogram HistogramBins `json:"histogram"`
	Pareto    ParetoFit     `json:"pareto"`
}
