// Command sweep runs one probability sweep from the command line and prints
// it as Markdown, CSV or JSON.
//
//	go run ./cmd/sweep -strategy kelly -kelly 25 -players 2000 -seed 42
//	go run ./cmd/sweep -preset bold -format csv > bold.csv
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/form"
	"github.com/osse101/RuinSim_Go/internal/logger"
	"github.com/osse101/RuinSim_Go/internal/preset"
	"github.com/osse101/RuinSim_Go/internal/report"
	"github.com/osse101/RuinSim_Go/internal/simulation"
)

const (
	formatJSON        = "json"
	defaultPresetPath = "configs/presets.json"
)

// options are the parsed command-line flags
type options struct {
	values      form.Values
	preset      string
	presetsPath string
	format      string
	index       int
	workers     int
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "sweep: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var bankroll, maxGames, players, strategy, flat, kelly, seed string

	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&bankroll, "bankroll", "", "starting bankroll (default 100, minimum 10)")
	fs.StringVar(&maxGames, "max-games", "", "games per player before stopping (default 1000)")
	fs.StringVar(&players, "players", "", "players simulated per probability (default 1000)")
	fs.StringVar(&strategy, "strategy", "", "betting strategy: bold, flat or kelly (default flat)")
	fs.StringVar(&flat, "flat-bet", "", "flat bet amount (default 1)")
	fs.StringVar(&kelly, "kelly", "", "kelly fraction percent, 1 to 100 (default 20)")
	fs.StringVar(&seed, "seed", "", "random seed; a fresh seed is chosen when blank")
	fs.StringVar(&opts.preset, "preset", "", "start from a named preset; explicit flags override it")
	fs.StringVar(&opts.presetsPath, "presets", defaultPresetPath, "presets file")
	fs.StringVar(&opts.format, "format", string(report.FormatMarkdown), "output format: markdown, csv or json")
	fs.IntVar(&opts.index, "index", -1, "also print the distribution for this probability index (0 to 48)")
	fs.IntVar(&opts.workers, "workers", 0, "worker goroutines (0 = one per CPU)")
	fs.BoolVar(&opts.verbose, "v", false, "log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.values = form.Values{
		StartingBankroll:      form.Field(bankroll),
		MaxGames:              form.Field(maxGames),
		PlayersPerProbability: form.Field(players),
		Strategy:              form.Field(strategy),
		FlatBetAmount:         form.Field(flat),
		KellyFractionPercent:  form.Field(kelly),
		Seed:                  form.Field(seed),
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := logger.LogLevelWarn
	if opts.verbose {
		level = logger.LogLevelInfo
	}
	logger.InitLoggerWithWriter(logger.NewConfig(level, logger.LogFormatText, "ruinsim-cli", "dev", "dev", false), stderr)

	if opts.format != formatJSON {
		if _, err := report.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	values := opts.values
	if opts.preset != "" {
		catalog, err := preset.NewLoader().Load(opts.presetsPath)
		if err != nil {
			return err
		}
		def, err := catalog.Get(opts.preset)
		if err != nil {
			return fmt.Errorf("%w: %q", err, opts.preset)
		}
		values = values.Merge(def.Values())
	}

	cfg, corrections := form.Parse(values)
	for _, c := range corrections {
		logger.Warn("Flag value replaced", "field", c.Field, "input", c.Input, "value", c.Value, "reason", c.Reason)
	}

	svc := simulation.NewService(opts.workers, simulation.NewResultStore(1, simulation.DefaultStoreTTL))
	sweep, err := svc.RunSweep(ctx, cfg)
	if err != nil {
		return err
	}

	var dist *domain.Distribution
	if opts.index >= 0 {
		if dist, err = svc.Distribution(ctx, sweep.ID, opts.index); err != nil {
			return err
		}
	}

	return write(stdout, opts.format, sweep, dist)
}

func write(w io.Writer, format string, sweep *domain.SweepResult, dist *domain.Distribution) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Sweep        *domain.SweepResult  `json:"sweep"`
			Distribution *domain.Distribution `json:"distribution,omitempty"`
		}{sweep, dist})
	}

	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	body, err := report.Render(f, sweep)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, body); err != nil {
		return err
	}

	if dist != nil {
		if f == report.FormatCSV {
			return writeDistributionCSV(w, dist)
		}
		_, err = io.WriteString(w, "\n"+report.RenderDistributionMarkdown(dist))
	}
	return err
}

// writeDistributionCSV appends the histogram as a second CSV block
func writeDistributionCSV(w io.Writer, dist *domain.Distribution) error {
	if _, err := fmt.Fprintf(w, "\nbin,count,pareto_expected\n"); err != nil {
		return err
	}
	for i, label := range dist.Histogram.Labels {
		expected := ""
		if dist.Pareto.Defined && i < len(dist.Pareto.Density) {
			expected = strconv.FormatFloat(dist.Pareto.Density[i], 'f', 2, 64)
		}
		if _, err := fmt.Fprintf(w, "%s,%d,%s\n", label, dist.Histogram.Counts[i], expected); err != nil {
			return err
		}
	}
	return nil
}
