package simulation

import (
	"github.com/osse101/RuinSim_Go/internal/rng"
)

// SimulatePlayer plays one gambler until ruin or maxGames rounds and returns the final bankroll.
// The result is never negative.
func SimulatePlayer(src rng.Source, p float64, maxGames int, policy Policy, startingBankroll float64) float64 {
	bankroll := startingBankroll
	for games := 0; games < maxGames && bankroll > 0; games++ {
		bet := policy.Bet(bankroll)
		if bet <= 0 {
			break
		}
		if rng.Bernoulli(src, p) {
			bankroll += bet
		} else {
			bankroll -= bet
		}
	}
	return max(bankroll, 0)
}
