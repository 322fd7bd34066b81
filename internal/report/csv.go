package report

import (
	"fmt"
	"strings"

	"github.com/osse101/RuinSim_Go/internal/domain"
)

// RenderCSV renders one row per swept probability.
func RenderCSV(sweep *domain.SweepResult) string {
	var sb strings.Builder

	sb.WriteString("p,variance,fraction_positive,fraction_ruined,p50,p90,p99,average\n")

	for _, r := range sweep.Results {
		sb.WriteString(fmt.Sprintf("%.2f,%.4f,%.6f,%.6f,%.2f,%.2f,%.2f,%.4f\n",
			r.P,
			r.Variance,
			r.FractionPositive,
			r.FractionRuined,
			r.P50,
			r.P90,
			r.P99,
			r.Average,
		))
	}

	return sb.String()
}
