package simulation

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/logger"
	"github.com/osse101/RuinSim_Go/internal/metrics"
	"github.com/osse101/RuinSim_Go/internal/rng"
	"github.com/osse101/RuinSim_Go/internal/stats"
	"github.com/osse101/RuinSim_Go/internal/worker"
)

// Service runs probability sweeps and serves the cached results
type Service interface {
	RunSweep(ctx context.Context, cfg domain.SimulationConfig) (*domain.SweepResult, error)
	GetSweep(ctx context.Context, id string) (*domain.SweepResult, error)
	Distribution(ctx context.Context, id string, index int) (*domain.Distribution, error)
}

// SourceFactory returns the random source for one probability index of a sweep
type SourceFactory func(seed, stream uint64) rng.Source

type service struct {
	workers   int
	store     *ResultStore
	newSource SourceFactory
}

// NewService creates a sweep service. workers < 1 means one per CPU.
// A nil store disables caching, so GetSweep and Distribution always miss.
func NewService(workers int, store *ResultStore) Service {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &service{
		workers:   workers,
		store:     store,
		newSource: rng.NewStream,
	}
}

// ProbabilityGrid returns the swept win probabilities 0.01 through 0.49 in ascending order
func ProbabilityGrid() []float64 {
	grid := make([]float64, domain.ProbabilitySteps)
	for i := range grid {
		grid[i] = float64(i+1) / domain.ProbabilityDenominator
	}
	return grid
}

// RunSweep simulates every probability on the grid and aggregates each batch.
// Each index draws from its own stream of cfg.Seed, so the result does not
// depend on the number of workers.
func (s *service) RunSweep(ctx context.Context, cfg domain.SimulationConfig) (*domain.SweepResult, error) {
	log := logger.FromContext(ctx)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := NewPolicy(cfg)
	if err != nil {
		return nil, err
	}

	strategy := string(cfg.Strategy)
	log.Info(LogMsgSweepStarted,
		"strategy", strategy,
		"players", cfg.PlayersPerProbability,
		"max_games", cfg.MaxGames,
		"seed", cfg.Seed)

	metrics.SweepsInFlight.Inc()
	defer metrics.SweepsInFlight.Dec()

	start := time.Now()
	results, err := s.runGrid(ctx, cfg, policy)
	if err != nil {
		metrics.RecordSweepError(strategy)
		log.Warn(LogMsgSweepFailed, "strategy", strategy, "error", err)
		return nil, err
	}
	elapsed := time.Since(start)

	sweep := &domain.SweepResult{
		ID:        uuid.NewString(),
		Config:    cfg,
		Label:     cfg.StrategyLabel(),
		Results:   results,
		CreatedAt: start,
		Duration:  elapsed,
	}
	if s.store != nil {
		s.store.Add(sweep)
	}

	metrics.RecordSweep(strategy, cfg.PlayersPerProbability*domain.ProbabilitySteps, elapsed)
	log.Info(LogMsgSweepCompleted,
		"sweep_id", sweep.ID,
		"strategy", strategy,
		"duration", elapsed)

	return sweep, nil
}

// runGrid fans one job per probability out to a pool sized for this sweep and
// joins them before returning the results in grid order.
func (s *service) runGrid(ctx context.Context, cfg domain.SimulationConfig, policy Policy) ([]domain.ProbabilityResult, error) {
	grid := ProbabilityGrid()
	results := make([]domain.ProbabilityResult, len(grid))
	errs := make([]error, len(grid))

	pool := worker.NewPool(min(s.workers, len(grid)), len(grid))
	pool.Start(ctx)
	defer pool.Stop()

	var wg sync.WaitGroup
	for i, p := range grid {
		wg.Add(1)
		job := worker.JobFunc(func(ctx context.Context) error {
			defer wg.Done()
			results[i], errs[i] = s.runProbability(ctx, cfg, policy, uint64(i), p)
			if ctx.Err() != nil {
				// reported once by runGrid
				return nil
			}
			return errs[i]
		})
		if err := pool.Enqueue(ctx, job); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sweep abandoned: %w", err)
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *service) runProbability(ctx context.Context, cfg domain.SimulationConfig, policy Policy, index uint64, p float64) (domain.ProbabilityResult, error) {
	src := s.newSource(cfg.Seed, index)
	bankrolls, err := RunBatch(ctx, src, p, policy, cfg)
	if err != nil {
		return domain.ProbabilityResult{}, err
	}
	result, err := stats.Result(p, bankrolls, cfg.StartingBankroll)
	if err != nil {
		return domain.ProbabilityResult{}, err
	}
	logger.FromContext(ctx).Debug(LogMsgBatchCompleted,
		"p", p,
		"fraction_ruined", result.FractionRuined,
		"average", result.Average)
	return result, nil
}

// GetSweep returns a cached sweep
func (s *service) GetSweep(_ context.Context, id string) (*domain.SweepResult, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSweepNotFound, id)
	}
	sweep, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSweepNotFound, id)
	}
	return sweep, nil
}

// Distribution computes the histogram and Pareto overlay for one probability of a cached sweep
func (s *service) Distribution(ctx context.Context, id string, index int) (*domain.Distribution, error) {
	sweep, err := s.GetSweep(ctx, id)
	if err != nil {
		return nil, err
	}
	result, err := sweep.At(index)
	if err != nil {
		return nil, err
	}
	dist := stats.Distribution(*result, sweep.Config.PlayersPerProbability)
	return &dist, nil
}
