package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/form"
	"github.com/osse101/RuinSim_Go/internal/metrics"
	"github.com/osse101/RuinSim_Go/internal/preset"
)

func newTestHandler() (*SweepHandler, *MockSimulationService, *MockPresetCatalog) {
	svc := &MockSimulationService{}
	catalog := &MockPresetCatalog{}
	return NewSweepHandler(svc, catalog, form.Limits{MaxGames: 5000, MaxPlayers: 5000}, nil), svc, catalog
}

func decodeSweepResponse(t *testing.T, body string) SweepResponse {
	t.Helper()
	var resp SweepResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestHandleCreateSweep(t *testing.T) {
	t.Run("Success with defaults", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("RunSweep", mock.Anything, mock.MatchedBy(func(cfg domain.SimulationConfig) bool {
			return cfg.Strategy == domain.StrategyKellyFraction &&
				cfg.StartingBankroll == domain.DefaultStartingBankroll &&
				cfg.MaxGames == 300 &&
				cfg.KellyFractionPercent == 25 &&
				cfg.Seed == 42
		})).Return(sampleSweep(), nil)

		body := `{"strategy":"kelly","max_games":300,"kelly_fraction_percent":"25","seed":42}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.HandleCreateSweep(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeSweepResponse(t, w.Body.String())
		require.NotNil(t, resp.Sweep)
		assert.Equal(t, "sweep-1", resp.Sweep.ID)
		assert.Empty(t, resp.Corrections)
		for _, r := range resp.Sweep.Results {
			assert.Nil(t, r.FinalBankrolls)
		}
		svc.AssertExpectations(t)
	})

	t.Run("Invalid fields are corrected and reported", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("RunSweep", mock.Anything, mock.MatchedBy(func(cfg domain.SimulationConfig) bool {
			return cfg.StartingBankroll == domain.DefaultStartingBankroll &&
				cfg.MaxGames == 5000 &&
				cfg.Strategy == domain.DefaultStrategy
		})).Return(sampleSweep(), nil)

		before := testutil.ToFloat64(metrics.FormCorrections.WithLabelValues(form.FieldStartingBankroll))

		body := `{"starting_bankroll":"lots","max_games":999999,"strategy":"martingale","seed":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.HandleCreateSweep(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeSweepResponse(t, w.Body.String())
		require.Len(t, resp.Corrections, 3)
		assert.Equal(t, form.FieldStartingBankroll, resp.Corrections[0].Field)
		assert.Equal(t, form.ReasonInvalid, resp.Corrections[0].Reason)
		assert.Equal(t, form.FieldMaxGames, resp.Corrections[1].Field)
		assert.Equal(t, form.ReasonAboveMaximum, resp.Corrections[1].Reason)
		assert.Equal(t, form.FieldStrategy, resp.Corrections[2].Field)

		after := testutil.ToFloat64(metrics.FormCorrections.WithLabelValues(form.FieldStartingBankroll))
		assert.Equal(t, before+1, after)
	})

	t.Run("Preset fills blank fields", func(t *testing.T) {
		h, svc, catalog := newTestHandler()
		seed := uint64(99)
		catalog.On("Get", "quick").Return(preset.Def{
			Name:                  "quick",
			Strategy:              "bold",
			MaxGames:              200,
			PlayersPerProbability: 200,
			Seed:                  &seed,
		}, nil)
		svc.On("RunSweep", mock.Anything, mock.MatchedBy(func(cfg domain.SimulationConfig) bool {
			return cfg.Strategy == domain.StrategyBoldPlay &&
				cfg.MaxGames == 200 &&
				cfg.PlayersPerProbability == 50 &&
				cfg.Seed == 99
		})).Return(sampleSweep(), nil)

		body := `{"preset":"quick","players_per_probability":50}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.HandleCreateSweep(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
		catalog.AssertExpectations(t)
	})

	t.Run("Unknown preset", func(t *testing.T) {
		h, svc, catalog := newTestHandler()
		catalog.On("Get", "nope").Return(preset.Def{}, domain.ErrPresetNotFound)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(`{"preset":"nope"}`))
		w := httptest.NewRecorder()

		h.HandleCreateSweep(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgPresetNotFoundError)
		svc.AssertNotCalled(t, "RunSweep", mock.Anything, mock.Anything)
	})

	t.Run("Malformed body", func(t *testing.T) {
		h, _, _ := newTestHandler()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(`{"seed":`))
		w := httptest.NewRecorder()

		h.HandleCreateSweep(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	})

	t.Run("Preset name too long", func(t *testing.T) {
		h, _, _ := newTestHandler()
		body := `{"preset":"` + strings.Repeat("a", 65) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.HandleCreateSweep(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"preset"`)
	})

	t.Run("Budget charged with worst-case steps", func(t *testing.T) {
		svc := &MockSimulationService{}
		budget := &MockSweepBudget{}
		h := NewSweepHandler(svc, &MockPresetCatalog{}, form.Limits{}, budget)
		budget.On("ChargeSweep", mock.Anything, int64(10*20*domain.ProbabilitySteps)).Return(true)
		svc.On("RunSweep", mock.Anything, mock.Anything).Return(sampleSweep(), nil)

		body := `{"players_per_probability":10,"max_games":20,"seed":1}`
		w := httptest.NewRecorder()
		h.HandleCreateSweep(w, httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		budget.AssertExpectations(t)
	})

	t.Run("Budget exhausted", func(t *testing.T) {
		svc := &MockSimulationService{}
		budget := &MockSweepBudget{}
		h := NewSweepHandler(svc, &MockPresetCatalog{}, form.Limits{}, budget)
		budget.On("ChargeSweep", mock.Anything, mock.Anything).Return(false)

		before := testutil.ToFloat64(metrics.SweepsThrottled)

		w := httptest.NewRecorder()
		h.HandleCreateSweep(w, httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(`{"seed":1}`)))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgSweepBudgetExceeded)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.SweepsThrottled))
		svc.AssertNotCalled(t, "RunSweep", mock.Anything, mock.Anything)
	})

	t.Run("Cancelled sweep", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("RunSweep", mock.Anything, mock.Anything).Return(nil, context.Canceled)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(`{}`))
		w := httptest.NewRecorder()

		h.HandleCreateSweep(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Internal errors are not leaked", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("RunSweep", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(`{}`))
		w := httptest.NewRecorder()

		h.HandleCreateSweep(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}

func TestHandleGetSweep(t *testing.T) {
	t.Run("Found with bankrolls", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("GetSweep", mock.Anything, "sweep-1").Return(sampleSweep(), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/sweep-1?include_bankrolls=true", nil)
		req = withURLParam(req, "id", "sweep-1")
		w := httptest.NewRecorder()

		h.HandleGetSweep(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeSweepResponse(t, w.Body.String())
		require.Len(t, resp.Sweep.Results, 2)
		assert.Equal(t, []float64{60, 70}, resp.Sweep.Results[1].FinalBankrolls)
	})

	t.Run("Bankrolls stripped without modifying the cached sweep", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		cached := sampleSweep()
		svc.On("GetSweep", mock.Anything, "sweep-1").Return(cached, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/sweep-1", nil), "id", "sweep-1")
		w := httptest.NewRecorder()

		h.HandleGetSweep(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `"final_bankrolls":[`)
		assert.Len(t, cached.Results[0].FinalBankrolls, 2)
	})

	t.Run("Not found", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("GetSweep", mock.Anything, "gone").Return(nil, domain.ErrSweepNotFound)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/gone", nil), "id", "gone")
		w := httptest.NewRecorder()

		h.HandleGetSweep(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgSweepNotFoundError)
	})

	t.Run("Missing id", func(t *testing.T) {
		h, _, _ := newTestHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/", nil)
		w := httptest.NewRecorder()

		h.HandleGetSweep(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetDistribution(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("Distribution", mock.Anything, "sweep-1", 1).Return(&domain.Distribution{P: 0.02, Variance: 0.0784}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/sweep-1/distribution?index=1", nil)
		req = withURLParam(req, "id", "sweep-1")
		w := httptest.NewRecorder()

		h.HandleGetDistribution(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"p":0.02`)
	})

	t.Run("Index out of range", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("Distribution", mock.Anything, "sweep-1", 49).Return(nil, domain.ErrIndexOutOfRange)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/sweep-1/distribution?index=49", nil)
		req = withURLParam(req, "id", "sweep-1")
		w := httptest.NewRecorder()

		h.HandleGetDistribution(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgIndexOutOfRangeError)
	})

	t.Run("Missing index", func(t *testing.T) {
		h, _, _ := newTestHandler()
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/sweep-1/distribution", nil), "id", "sweep-1")
		w := httptest.NewRecorder()

		h.HandleGetDistribution(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing index query parameter")
	})

	t.Run("Non-numeric index", func(t *testing.T) {
		h, _, _ := newTestHandler()
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/sweep-1/distribution?index=x", nil), "id", "sweep-1")
		w := httptest.NewRecorder()

		h.HandleGetDistribution(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid index query parameter")
	})
}

func TestHandleGetReport(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("GetSweep", mock.Anything, "sweep-1").Return(sampleSweep(), nil)

		before := testutil.ToFloat64(metrics.ReportsRendered.WithLabelValues("csv"))

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/sweep-1/report?format=csv", nil), "id", "sweep-1")
		w := httptest.NewRecorder()

		h.HandleGetReport(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.True(t, strings.HasPrefix(w.Body.String(), "p,variance,"))
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.ReportsRendered.WithLabelValues("csv")))
	})

	t.Run("Markdown by default", func(t *testing.T) {
		h, svc, _ := newTestHandler()
		svc.On("GetSweep", mock.Anything, "sweep-1").Return(sampleSweep(), nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/sweep-1/report", nil), "id", "sweep-1")
		w := httptest.NewRecorder()

		h.HandleGetReport(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
		assert.Contains(t, w.Body.String(), "|")
	})

	t.Run("Unsupported format", func(t *testing.T) {
		h, svc, _ := newTestHandler()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/sweeps/sweep-1/report?format=pdf", nil), "id", "sweep-1")
		w := httptest.NewRecorder()

		h.HandleGetReport(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUnsupportedFormatError)
		svc.AssertNotCalled(t, "GetSweep", mock.Anything, mock.Anything)
	})
}

func TestHandleListPresets(t *testing.T) {
	catalog := &MockPresetCatalog{}
	catalog.On("List").Return([]preset.Def{{Name: "bold", Strategy: "bold"}, {Name: "default", Strategy: "flat"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil)
	w := httptest.NewRecorder()

	HandleListPresets(catalog).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp PresetsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Presets, 2)
	assert.Equal(t, "bold", resp.Presets[0].Name)
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"nil", nil, http.StatusInternalServerError},
		{"invalid config", domain.ErrInvalidConfig, http.StatusBadRequest},
		{"unknown strategy", domain.ErrUnknownStrategy, http.StatusBadRequest},
		{"unsupported format", domain.ErrUnsupportedFormat, http.StatusBadRequest},
		{"sweep not found", domain.ErrSweepNotFound, http.StatusNotFound},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, msg)
		})
	}
}
