package domain

// Probability sweep: p = i/ProbabilityDenominator for i in [1, ProbabilitySteps]
const (
	ProbabilitySteps       = 49
	ProbabilityDenominator = 100
)

// Boundary defaults and limits for simulation input
const (
	DefaultStartingBankroll      = 100
	MinStartingBankroll          = 10
	DefaultMaxGames              = 1000
	DefaultPlayersPerProbability = 1000
	DefaultFlatBetAmount         = 1
	MinFlatBetAmount             = 1
	DefaultKellyFractionPercent  = 20
	MinKellyFractionPercent      = 1
	MaxKellyFractionPercent      = 100
	DefaultStrategy              = StrategyFlatBet
)

// Variance returns the variance 4p(1-p) of a ±1 outcome with win probability p
func Variance(p float64) float64 {
	return 4 * p * (1 - p)
}
