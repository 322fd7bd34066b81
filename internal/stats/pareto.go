package stats

import (
	"math"

	"github.com/osse101/RuinSim_Go/internal/domain"
)

// MinParetoSamples is the fewest positive bankrolls that yield a defined fit
const MinParetoSamples = 2

// FitPareto estimates a Pareto Type-I tail from the strictly positive bankrolls by maximum
// likelihood (xm = min, alpha = n / Σ ln(x/xm)) and evaluates its density at every bin
// midpoint, scaled by totalPlayers to an expected count.
//
// Fewer than MinParetoSamples positive values, or positive values that are all equal,
// leave the fit undefined: the result carries Defined=false and all-zero density.
func FitPareto(bankrolls []float64, totalPlayers int) domain.ParetoFit {
	mids := BinMidpoints()
	fit := domain.ParetoFit{Density: make([]float64, len(mids))}

	xm := math.Inf(1)
	n := 0
	for _, b := range bankrolls {
		if b > 0 {
			n++
			xm = math.Min(xm, b)
		}
	}
	fit.Samples = n
	if n < MinParetoSamples {
		return fit
	}

	var sumLog float64
	for _, b := range bankrolls {
		if b > 0 {
			sumLog += math.Log(b / xm)
		}
	}
	if sumLog == 0 {
		return fit
	}

	alpha := float64(n) / sumLog
	fit.Defined = true
	fit.Alpha = alpha
	fit.Xm = xm
	for i, x := range mids {
		fit.Density[i] = ParetoDensity(x, xm, alpha) * float64(totalPlayers)
	}
	return fit
}

// ParetoDensity is alpha·xm^alpha / x^(alpha+1) for x ≥ xm, else 0.
// Evaluated as (alpha/x)·(xm/x)^alpha so large alpha does not overflow.
func ParetoDensity(x, xm, alpha float64) float64 {
	if x < xm || x <= 0 {
		return 0
	}
	return alpha / x * math.Pow(xm/x, alpha)
}

// Distribution bundles the histogram and Pareto overlay for one probability result
func Distribution(result domain.ProbabilityResult, totalPlayers int) domain.Distribution {
	return domain.Distribution{
		P:         result.P,
		Variance:  result.Variance,
		Histogram: Histogram(result.FinalBankrolls),
		Pareto:    FitPareto(result.FinalBankrolls, totalPlayers),
	}
}
