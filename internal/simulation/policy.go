package simulation

import (
	"fmt"
	"math"

	"github.com/osse101/RuinSim_Go/internal/domain"
)

// Policy decides the next wager from the current bankroll.
// The set of policies is closed: BoldPlay, FlatBet and KellyFraction.
type Policy interface {
	Bet(bankroll float64) float64
	Strategy() domain.Strategy
	sealed()
}

// BoldPlay stakes the whole bankroll every round
type BoldPlay struct{}

// FlatBet stakes a fixed amount, or whatever is left when the bankroll is smaller
type FlatBet struct {
	Amount float64
}

// KellyFraction stakes a fixed percentage of the current bankroll, never less than 1.
// The percentage is applied regardless of the sign of the expected value.
type KellyFraction struct {
	Percent float64
}

func (BoldPlay) Bet(bankroll float64) float64 { return bankroll }

func (f FlatBet) Bet(bankroll float64) float64 { return math.Min(f.Amount, bankroll) }

func (k KellyFraction) Bet(bankroll float64) float64 {
	target := k.Percent / 100 * bankroll
	bet := math.Max(1, math.Floor(target))
	return math.Min(bet, bankroll)
}

func (BoldPlay) Strategy() domain.Strategy      { return domain.StrategyBoldPlay }
func (FlatBet) Strategy() domain.Strategy       { return domain.StrategyFlatBet }
func (KellyFraction) Strategy() domain.Strategy { return domain.StrategyKellyFraction }

func (BoldPlay) sealed()      {}
func (FlatBet) sealed()       {}
func (KellyFraction) sealed() {}

// NewPolicy selects the policy named by cfg.Strategy with its active parameter
func NewPolicy(cfg domain.SimulationConfig) (Policy, error) {
	switch cfg.Strategy {
	case domain.StrategyBoldPlay:
		return BoldPlay{}, nil
	case domain.StrategyFlatBet:
		return FlatBet{Amount: cfg.FlatBetAmount}, nil
	case domain.StrategyKellyFraction:
		return KellyFraction{Percent: cfg.KellyFractionPercent}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, cfg.Strategy)
}

// MaxBankroll is the bankroll reached by winning every one of maxGames rounds.
// Every bet size grows with the bankroll, so no outcome can exceed it.
func MaxBankroll(policy Policy, startingBankroll float64, maxGames int) float64 {
	bankroll := startingBankroll
	for i := 0; i < maxGames && bankroll > 0; i++ {
		bet := policy.Bet(bankroll)
		if bet <= 0 {
			break
		}
		bankroll += bet
	}
	return bankroll
}
