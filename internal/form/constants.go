package form

// Field names used in corrections
const (
	FieldStartingBankroll      = "starting_bankroll"
	FieldMaxGames              = "max_games"
	FieldPlayersPerProbability = "players_per_probability"
	FieldStrategy              = "strategy"
	FieldFlatBetAmount         = "flat_bet_amount"
	FieldKellyFractionPercent  = "kelly_fraction_percent"
	FieldSeed                  = "seed"
)

// Correction reasons
const (
	ReasonInvalid      = "invalid"
	ReasonBelowMinimum = "below_minimum"
	ReasonAboveMaximum = "above_maximum"
)

// defaultsWhenNonPositive lists fields where zero or less means "use the default"
var defaultsWhenNonPositive = map[string]bool{
	FieldStartingBankroll:      true,
	FieldMaxGames:              true,
	FieldPlayersPerProbability: true,
	FieldFlatBetAmount:         true,
}
