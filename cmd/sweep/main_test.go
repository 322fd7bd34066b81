package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RuinSim_Go/internal/domain"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_CSV(t *testing.T) {
	out, _, err := runCLI(t, "-players", "20", "-max-games", "50", "-seed", "3", "-format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 50)
	assert.True(t, strings.HasPrefix(lines[0], "p,variance,"))
	assert.True(t, strings.HasPrefix(lines[1], "0.01,"))
	assert.True(t, strings.HasPrefix(lines[49], "0.49,"))
}

func TestRun_SameSeedSameOutput(t *testing.T) {
	args := []string{"-players", "30", "-max-games", "100", "-strategy", "kelly", "-seed", "77", "-format", "csv"}
	first, _, err := runCLI(t, args...)
	require.NoError(t, err)
	second, _, err := runCLI(t, append(args, "-workers", "1")...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_JSONWithDistribution(t *testing.T) {
	out, _, err := runCLI(t, "-players", "20", "-max-games", "50", "-seed", "3", "-format", "json", "-index", "10")
	require.NoError(t, err)

	var payload struct {
		Sweep        domain.SweepResult   `json:"sweep"`
		Distribution *domain.Distribution `json:"distribution"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Len(t, payload.Sweep.Results, 49)
	require.NotNil(t, payload.Distribution)
	assert.InDelta(t, 0.11, payload.Distribution.P, 1e-9)
}

func TestRun_CorrectionsAreLogged(t *testing.T) {
	_, stderr, err := runCLI(t, "-players", "10", "-max-games", "10", "-bankroll", "abc", "-format", "csv")
	require.NoError(t, err)
	assert.Contains(t, stderr, "starting_bankroll")
}

func TestRun_Preset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	doc := `{"version":"1.0","presets":[{"name":"tiny","strategy":"bold","max_games":20,"players_per_probability":10,"seed":5}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, _, err := runCLI(t, "-presets", path, "-preset", "tiny", "-format", "json")
	require.NoError(t, err)

	var payload struct {
		Sweep domain.SweepResult `json:"sweep"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, domain.StrategyBoldPlay, payload.Sweep.Config.Strategy)
	assert.Equal(t, uint64(5), payload.Sweep.Config.Seed)
	assert.Equal(t, 10, payload.Sweep.Config.PlayersPerProbability)
}

func TestRun_Errors(t *testing.T) {
	_, _, err := runCLI(t, "-format", "pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, _, err = runCLI(t, "-players", "5", "-max-games", "5", "-index", "49", "-format", "csv")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, _, err = runCLI(t, "extra")
	assert.Error(t, err)

	_, _, err = runCLI(t, "-h")
	assert.ErrorIs(t, err, flag.ErrHelp)
}
