package form

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/rng"
)

// Correction records one field whose input was replaced
type Correction struct {
	Field  string `json:"field"`
	Input  string `json:"input"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Limits caps simulation size. Zero means no cap.
type Limits struct {
	MaxGames   int
	MaxPlayers int
}

type parser struct {
	corrections []Correction
}

// Parse converts v into a config with no size caps
func Parse(v Values) (domain.SimulationConfig, []Correction) {
	return ParseWithLimits(v, Limits{})
}

// ParseWithLimits converts v into a config that always passes domain validation.
// Blank fields take their default silently; unparseable or out-of-range fields
// are replaced and reported.
func ParseWithLimits(v Values, limits Limits) (domain.SimulationConfig, []Correction) {
	p := &parser{}

	cfg := domain.SimulationConfig{
		StartingBankroll:      p.number(FieldStartingBankroll, v.StartingBankroll, domain.DefaultStartingBankroll, domain.MinStartingBankroll, 0),
		MaxGames:              int(p.number(FieldMaxGames, v.MaxGames, domain.DefaultMaxGames, 1, float64(limits.MaxGames))),
		PlayersPerProbability: int(p.number(FieldPlayersPerProbability, v.PlayersPerProbability, domain.DefaultPlayersPerProbability, 1, float64(limits.MaxPlayers))),
		Strategy:              p.strategy(v.Strategy),
		FlatBetAmount:         p.number(FieldFlatBetAmount, v.FlatBetAmount, domain.DefaultFlatBetAmount, domain.MinFlatBetAmount, 0),
		KellyFractionPercent:  p.number(FieldKellyFractionPercent, v.KellyFractionPercent, domain.DefaultKellyFractionPercent, domain.MinKellyFractionPercent, domain.MaxKellyFractionPercent),
		Seed:                  p.seed(v.Seed),
	}

	return cfg, p.corrections
}

func (p *parser) correct(field string, input Field, value, reason string) {
	p.corrections = append(p.corrections, Correction{
		Field:  field,
		Input:  string(input),
		Value:  value,
		Reason: reason,
	})
}

// leadingInteger matches the integer prefix of a field, so "12.7" reads as 12
// and "3abc" as 3.
var leadingInteger = regexp.MustCompile(`^[+-]?\d+`)

// number parses the leading integer of a field.
// Zero or less falls back to the default for fields listed in defaultsWhenNonPositive.
func (p *parser) number(field string, input Field, def, lo, hi float64) float64 {
	if input.Empty() {
		return def
	}

	digits := leadingInteger.FindString(strings.TrimSpace(string(input)))
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		p.correct(field, input, formatNumber(def), ReasonInvalid)
		return def
	}

	switch {
	case n <= 0 && defaultsWhenNonPositive[field]:
		p.correct(field, input, formatNumber(def), ReasonInvalid)
		return def
	case n < lo:
		p.correct(field, input, formatNumber(lo), ReasonBelowMinimum)
		return lo
	case hi > 0 && n > hi:
		p.correct(field, input, formatNumber(hi), ReasonAboveMaximum)
		return hi
	}
	return n
}

func (p *parser) strategy(input Field) domain.Strategy {
	if input.Empty() {
		return domain.DefaultStrategy
	}
	s, err := domain.ParseStrategy(string(input))
	if err != nil {
		p.correct(FieldStrategy, input, string(domain.DefaultStrategy), ReasonInvalid)
		return domain.DefaultStrategy
	}
	return s
}

func (p *parser) seed(input Field) uint64 {
	if input.Empty() {
		return rng.NewSeed()
	}
	seed, err := strconv.ParseUint(strings.TrimSpace(string(input)), 10, 64)
	if err != nil {
		seed = rng.NewSeed()
		p.correct(FieldSeed, input, strconv.FormatUint(seed, 10), ReasonInvalid)
	}
	return seed
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
