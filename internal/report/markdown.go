package report

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/RuinSim_Go/internal/domain"
)

// reportLanguage drives digit grouping and title casing
var reportLanguage = language.English

// RenderMarkdown renders the sweep summary and result table as Markdown.
// Money-like values use English digit grouping.
func RenderMarkdown(sweep *domain.SweepResult) string {
	var sb strings.Builder
	cfg := sweep.Config
	printer := message.NewPrinter(reportLanguage)
	title := cases.Title(reportLanguage)

	sb.WriteString(printer.Sprintf("# Gambler's Ruin Sweep: %s\n\n", sweep.Label))
	if !sweep.CreatedAt.IsZero() {
		sb.WriteString(printer.Sprintf("Generated: %s | Duration: %s\n\n", sweep.CreatedAt.UTC().Format(time.RFC3339), sweep.Duration.Round(time.Millisecond)))
	}

	sb.WriteString("## Configuration\n\n")
	sb.WriteString("| Setting | Value |\n")
	sb.WriteString("|---------|-------|\n")
	sb.WriteString(printer.Sprintf("| Strategy | %s |\n", title.String(string(cfg.Strategy))))
	sb.WriteString(printer.Sprintf("| Starting Bankroll | $%.0f |\n", cfg.StartingBankroll))
	sb.WriteString(printer.Sprintf("| Max Games | %d |\n", cfg.MaxGames))
	sb.WriteString(printer.Sprintf("| Players per Probability | %d |\n", cfg.PlayersPerProbability))
	sb.WriteString(printer.Sprintf("| Seed | %s |\n", strconv.FormatUint(cfg.Seed, 10)))
	sb.WriteString("\n")

	sb.WriteString("## Results\n\n")
	if len(sweep.Results) == 0 {
		sb.WriteString("No results available.\n")
		return sb.String()
	}

	sb.WriteString("| p | Variance | Ahead | Ruined | P50 | P90 | P99 | Average |\n")
	sb.WriteString("|---|----------|-------|--------|-----|-----|-----|---------|\n")
	for _, r := range sweep.Results {
		sb.WriteString(printer.Sprintf("| %.2f | %.4f | %.1f%% | %.1f%% | %.0f | %.0f | %.0f | %.2f |\n",
			r.P, r.Variance,
			r.FractionPositive*100, r.FractionRuined*100,
			r.P50, r.P90, r.P99, r.Average))
	}
	sb.WriteString("\n")

	return sb.String()
}

// RenderDistributionMarkdown renders the histogram and Pareto overlay of one probability.
func RenderDistributionMarkdown(dist *domain.Distribution) string {
	var sb strings.Builder
	printer := message.NewPrinter(reportLanguage)

	sb.WriteString(printer.Sprintf("## Final Bankrolls at p = %.2f\n\n", dist.P))
	if dist.Pareto.Defined {
		sb.WriteString(printer.Sprintf("Pareto fit: alpha = %.4f, xm = %.0f over %d winners\n\n", dist.Pareto.Alpha, dist.Pareto.Xm, dist.Pareto.Samples))
	} else {
		sb.WriteString("Pareto fit unavailable (fewer than 2 positive bankrolls).\n\n")
	}

	sb.WriteString("| Range | Players | Pareto Expected |\n")
	sb.WriteString("|-------|---------|-----------------|\n")
	for i, label := range dist.Histogram.Labels {
		expected := 0.0
		if i < len(dist.Pareto.Density) {
			expected = dist.Pareto.Density[i]
		}
		sb.WriteString(printer.Sprintf("| %s | %d | %.2f |\n", label, dist.Histogram.Counts[i], expected))
	}
	sb.WriteString("\n")

	return sb.String()
}
