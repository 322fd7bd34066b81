package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/form"
	"github.com/osse101/RuinSim_Go/internal/logger"
	"github.com/osse101/RuinSim_Go/internal/metrics"
	"github.com/osse101/RuinSim_Go/internal/report"
	"github.com/osse101/RuinSim_Go/internal/simulation"
)

// SweepBudget meters sweep work per client. ChargeSweep reports whether the
// caller may start a sweep costing steps worst-case player-steps.
type SweepBudget interface {
	ChargeSweep(ctx context.Context, steps int64) bool
}

// SweepHandler serves probability sweeps
type SweepHandler struct {
	service simulation.Service
	presets PresetCatalog
	limits  form.Limits
	budget  SweepBudget
}

// NewSweepHandler creates a sweep handler. limits cap the size of a single sweep;
// budget caps the total a client may request over time and may be nil.
func NewSweepHandler(service simulation.Service, presets PresetCatalog, limits form.Limits, budget SweepBudget) *SweepHandler {
	return &SweepHandler{
		service: service,
		presets: presets,
		limits:  limits,
		budget:  budget,
	}
}

// CreateSweepRequest carries raw form values. Any blank field falls back to the
// named preset, then to the built-in default.
type CreateSweepRequest struct {
	Preset string `json:"preset,omitempty" validate:"omitempty,max=64,printascii"`
	form.Values
}

// SweepResponse wraps a sweep with the corrections applied to its input
type SweepResponse struct {
	Sweep       *domain.SweepResult `json:"sweep"`
	Corrections []form.Correction   `json:"corrections,omitempty"`
}

// HandleCreateSweep runs a full sweep synchronously
// @Summary Run a sweep
// @Description Simulates every win probability from 0.01 to 0.49. Invalid fields are replaced by defaults and reported in corrections.
// @Tags sweeps
// @Accept json
// @Produce json
// @Param request body CreateSweepRequest true "Simulation settings"
// @Param include_bankrolls query bool false "Include every final bankroll"
// @Success 201 {object} SweepResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/v1/sweeps [post]
func (h *SweepHandler) HandleCreateSweep(w http.ResponseWriter, r *http.Request) {
	var req CreateSweepRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCreateSweep); err != nil {
		return
	}

	values := req.Values
	if req.Preset != "" {
		def, err := h.presets.Get(req.Preset)
		if err != nil {
			respondServiceError(w, r, OpCreateSweep, err)
			return
		}
		values = values.Merge(def.Values())
	}

	cfg, corrections := form.ParseWithLimits(values, h.limits)
	recordCorrections(r, corrections)

	if h.budget != nil && !h.budget.ChargeSweep(r.Context(), cfg.WorstCaseSteps()) {
		metrics.SweepsThrottled.Inc()
		logger.FromContext(r.Context()).Warn(LogMsgSweepThrottled,
			"players", cfg.PlayersPerProbability,
			"max_games", cfg.MaxGames)
		respondError(w, http.StatusTooManyRequests, ErrMsgSweepBudgetExceeded)
		return
	}

	sweep, err := h.service.RunSweep(r.Context(), cfg)
	if err != nil {
		respondServiceError(w, r, OpCreateSweep, err)
		return
	}

	respondJSON(w, http.StatusCreated, SweepResponse{
		Sweep:       presentSweep(sweep, GetBoolQueryParam(r, "include_bankrolls")),
		Corrections: corrections,
	})
}

// HandleGetSweep returns a cached sweep
// @Summary Get a sweep
// @Tags sweeps
// @Produce json
// @Param id path string true "Sweep ID"
// @Param include_bankrolls query bool false "Include every final bankroll"
// @Success 200 {object} SweepResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sweeps/{id} [get]
func (h *SweepHandler) HandleGetSweep(w http.ResponseWriter, r *http.Request) {
	sweep, ok := h.lookup(w, r, OpGetSweep)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, SweepResponse{
		Sweep: presentSweep(sweep, GetBoolQueryParam(r, "include_bankrolls")),
	})
}

// HandleGetDistribution returns the histogram and Pareto overlay for one probability
// @Summary Distribution of final bankrolls
// @Tags sweeps
// @Produce json
// @Param id path string true "Sweep ID"
// @Param index query int true "Probability index, 0 (p=0.01) to 48 (p=0.49)"
// @Success 200 {object} domain.Distribution
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sweeps/{id}/distribution [get]
func (h *SweepHandler) HandleGetDistribution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingSweepID)
		return
	}
	index, ok := GetIntQueryParam(r, w, "index")
	if !ok {
		return
	}

	dist, err := h.service.Distribution(r.Context(), id, index)
	if err != nil {
		respondServiceError(w, r, OpGetDistribution, err)
		return
	}

	respondJSON(w, http.StatusOK, dist)
}

// HandleGetReport renders a cached sweep as CSV or Markdown
// @Summary Sweep report
// @Tags sweeps
// @Produce plain
// @Param id path string true "Sweep ID"
// @Param format query string false "csv or markdown" default(markdown)
// @Success 200 {string} string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sweeps/{id}/report [get]
func (h *SweepHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(GetOptionalQueryParam(r, "format", string(report.FormatMarkdown)))
	if err != nil {
		respondServiceError(w, r, OpGetReport, err)
		return
	}

	sweep, ok := h.lookup(w, r, OpGetReport)
	if !ok {
		return
	}

	body, err := report.Render(format, sweep)
	if err != nil {
		respondServiceError(w, r, OpGetReport, err)
		return
	}

	metrics.ReportsRendered.WithLabelValues(string(format)).Inc()
	respondText(w, http.StatusOK, format.ContentType(), body)
}

func (h *SweepHandler) lookup(w http.ResponseWriter, r *http.Request, opName string) (*domain.SweepResult, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingSweepID)
		return nil, false
	}
	sweep, err := h.service.GetSweep(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return nil, false
	}
	return sweep, true
}

// presentSweep drops the raw bankroll lists unless asked for; they dominate the payload.
// The cached sweep is never modified.
func presentSweep(sweep *domain.SweepResult, includeBankrolls bool) *domain.SweepResult {
	if includeBankrolls {
		return sweep
	}
	out := *sweep
	out.Results = make([]domain.ProbabilityResult, len(sweep.Results))
	for i, r := range sweep.Results {
		r.FinalBankrolls = nil
		out.Results[i] = r
	}
	return &out
}

func recordCorrections(r *http.Request, corrections []form.Correction) {
	log := logger.FromContext(r.Context())
	for _, c := range corrections {
		metrics.FormCorrections.WithLabelValues(c.Field).Inc()
		log.Warn(LogMsgFormCorrected,
			"field", c.Field,
			"input", c.Input,
			"value", c.Value,
			"reason", c.Reason)
	}
}
