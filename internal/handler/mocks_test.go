package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/preset"
)

// MockSimulationService mocks simulation.Service
type MockSimulationService struct {
	mock.Mock
}

func (m *MockSimulationService) RunSweep(ctx context.Context, cfg domain.SimulationConfig) (*domain.SweepResult, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SweepResult), args.Error(1)
}

func (m *MockSimulationService) GetSweep(ctx context.Context, id string) (*domain.SweepResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SweepResult), args.Error(1)
}

func (m *MockSimulationService) Distribution(ctx context.Context, id string, index int) (*domain.Distribution, error) {
	args := m.Called(ctx, id, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Distribution), args.Error(1)
}

// MockPresetCatalog mocks PresetCatalog
type MockPresetCatalog struct {
	mock.Mock
}

func (m *MockPresetCatalog) Get(name string) (preset.Def, error) {
	args := m.Called(name)
	return args.Get(0).(preset.Def), args.Error(1)
}

func (m *MockPresetCatalog) List() []preset.Def {
	args := m.Called()
	return args.Get(0).([]preset.Def)
}

// MockSweepBudget mocks SweepBudget
type MockSweepBudget struct {
	mock.Mock
}

func (m *MockSweepBudget) ChargeSweep(ctx context.Context, steps int64) bool {
	args := m.Called(ctx, steps)
	return args.Bool(0)
}

// withURLParam attaches a chi route context carrying one URL parameter
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleSweep() *domain.SweepResult {
	return &domain.SweepResult{
		ID: "sweep-1",
		Config: domain.SimulationConfig{
			MaxGames:              10,
			PlayersPerProbability: 2,
			StartingBankroll:      100,
			Strategy:              domain.StrategyFlatBet,
			FlatBetAmount:         5,
			Seed:                  7,
		},
		Label: "Flat bet of 5",
		Results: []domain.ProbabilityResult{
			{P: 0.01, Variance: 0.0396, FractionRuined: 0, P50: 50, P90: 50, P99: 50, Average: 50, FinalBankrolls: []float64{50, 50}},
			{P: 0.02, Variance: 0.0784, FractionRuined: 0, P50: 60, P90: 70, P99: 70, Average: 65, FinalBankrolls: []float64{60, 70}},
		},
	}
}
