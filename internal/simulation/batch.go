package simulation

import (
	"context"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/rng"
)

// RunBatch simulates cfg.PlayersPerProbability independent players at win probability p.
// Bankrolls are returned in simulation order, unsorted. The context is polled
// between players so an abandoned sweep stops promptly.
func RunBatch(ctx context.Context, src rng.Source, p float64, policy Policy, cfg domain.SimulationConfig) ([]float64, error) {
	bankrolls := make([]float64, cfg.PlayersPerProbability)
	for i := range bankrolls {
		if i%batchCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		bankrolls[i] = SimulatePlayer(src, p, cfg.MaxGames, policy, cfg.StartingBankroll)
	}
	return bankrolls, nil
}
