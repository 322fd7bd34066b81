package domain

import (
	"fmt"
	"strings"
)

// Strategy identifies the betting policy a simulated player follows
type Strategy string

// Strategy values
const (
	StrategyBoldPlay      Strategy = "bold"  // bet the entire bankroll
	StrategyFlatBet       Strategy = "flat"  // bet a fixed amount
	StrategyKellyFraction Strategy = "kelly" // bet a fixed percentage of bankroll
)

// Strategies lists every supported strategy in display order
var Strategies = []Strategy{StrategyBoldPlay, StrategyFlatBet, StrategyKellyFraction}

// strategyAliases maps accepted spellings onto canonical strategy values
var strategyAliases = map[string]Strategy{
	"bold":           StrategyBoldPlay,
	"bold_play":      StrategyBoldPlay,
	"boldplay":       StrategyBoldPlay,
	"all_in":         StrategyBoldPlay,
	"flat":           StrategyFlatBet,
	"flat_bet":       StrategyFlatBet,
	"flatbet":        StrategyFlatBet,
	"kelly":          StrategyKellyFraction,
	"kelly_fraction": StrategyKellyFraction,
	"kellyfraction":  StrategyKellyFraction,
}

// ParseStrategy resolves a strategy name, case-insensitively, including aliases
func ParseStrategy(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	if s, ok := strategyAliases[key]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Valid reports whether s is one of the canonical strategies
func (s Strategy) Valid() bool {
	switch s {
	case StrategyBoldPlay, StrategyFlatBet, StrategyKellyFraction:
		return true
	}
	return false
}

func (s Strategy) String() string {
	return string(s)
}
