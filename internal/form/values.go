// Package form turns loosely typed user input into a valid simulation config.
// Bad input is never rejected: each field falls back to a documented default
// or is clamped into range, and every substitution is reported.
package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field is a raw form value. In JSON it may be a string, a number or null.
type Field string

// UnmarshalJSON accepts "12", 12, 12.5 and null
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("form field must be a string or number: %w", err)
	}
	*f = Field(n.String())
	return nil
}

// Empty reports whether the field was left blank
func (f Field) Empty() bool {
	return strings.TrimSpace(string(f)) == ""
}

// Values are the raw inputs collected from a form, query string or command line
type Values struct {
	StartingBankroll      Field `json:"starting_bankroll"`
	MaxGames              Field `json:"max_games"`
	PlayersPerProbability Field `json:"players_per_probability"`
	Strategy              Field `json:"strategy"`
	FlatBetAmount         Field `json:"flat_bet_amount"`
	KellyFractionPercent  Field `json:"kelly_fraction_percent"`
	Seed                  Field `json:"seed"`
}

// Merge fills every blank field of v from fallback
func (v Values) Merge(fallback Values) Values {
	pick := func(a, b Field) Field {
		if a.Empty() {
			return b
		}
		return a
	}
	return Values{
		StartingBankroll:      pick(v.StartingBankroll, fallback.StartingBankroll),
		MaxGames:              pick(v.MaxGames, fallback.MaxGames),
		PlayersPerProbability: pick(v.PlayersPerProbability, fallback.PlayersPerProbability),
		Strategy:              pick(v.Strategy, fallback.Strategy),
		FlatBetAmount:         pick(v.FlatBetAmount, fallback.FlatBetAmount),
		KellyFractionPercent:  pick(v.KellyFractionPercent, fallback.KellyFractionPercent),
		Seed:                  pick(v.Seed, fallback.Seed),
	}
}
