package handler

import (
	"net/http"

	"github.com/osse101/RuinSim_Go/internal/preset"
)

// PresetCatalog is the read side of the presets file
type PresetCatalog interface {
	Get(name string) (preset.Def, error)
	List() []preset.Def
}

// PresetsResponse lists the available presets
type PresetsResponse struct {
	Presets []preset.Def `json:"presets"`
}

// HandleListPresets returns every named preset
// @Summary List presets
// @Description Named simulation settings that a sweep request can start from
// @Tags sweeps
// @Produce json
// @Success 200 {object} PresetsResponse
// @Router /api/v1/presets [get]
func HandleListPresets(catalog PresetCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, PresetsResponse{Presets: catalog.List()})
	}
}
