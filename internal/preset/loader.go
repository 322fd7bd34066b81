package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/form"
	"github.com/osse101/RuinSim_Go/internal/validation"
)

// Schema paths
const (
	PresetsSchemaPath = "configs/schemas/presets.schema.json"
)

// Config represents the JSON presets file
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Presets []Def `json:"presets"`
}

// Def is one named configuration. Zero numeric fields fall back to the form defaults.
type Def struct {
	Name                  string  `json:"name"`
	Description           string  `json:"description,omitempty"`
	Strategy              string  `json:"strategy"`
	StartingBankroll      int     `json:"starting_bankroll,omitempty"`
	MaxGames              int     `json:"max_games,omitempty"`
	PlayersPerProbability int     `json:"players_per_probability,omitempty"`
	FlatBetAmount         int     `json:"flat_bet_amount,omitempty"`
	KellyFractionPercent  int     `json:"kelly_fraction_percent,omitempty"`
	Seed                  *uint64 `json:"seed,omitempty"`
}

// Values converts the preset into raw form input
func (d Def) Values() form.Values {
	field := func(n int) form.Field {
		if n == 0 {
			return ""
		}
		return form.Field(strconv.Itoa(n))
	}
	v := form.Values{
		StartingBankroll:      field(d.StartingBankroll),
		MaxGames:              field(d.MaxGames),
		PlayersPerProbability: field(d.PlayersPerProbability),
		Strategy:              form.Field(d.Strategy),
		FlatBetAmount:         field(d.FlatBetAmount),
		KellyFractionPercent:  field(d.KellyFractionPercent),
	}
	if d.Seed != nil {
		v.Seed = form.Field(strconv.FormatUint(*d.Seed, 10))
	}
	return v
}

// Loader handles loading and validating preset files
type Loader interface {
	Load(path string) (*Catalog, error)
}

type presetLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &presetLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads a presets file, checks it against the schema and indexes it by name
func (l *presetLoader) Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadPresetsFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, PresetsSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParsePresetsFailed, err)
	}

	return NewCatalog(config.Presets)
}

// Catalog is an immutable name-indexed set of presets
type Catalog struct {
	byName map[string]Def
	names  []string
}

// NewCatalog indexes defs by name, rejecting duplicates
func NewCatalog(defs []Def) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Def, len(defs))}
	for _, d := range defs {
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePreset, d.Name)
		}
		c.byName[d.Name] = d
		c.names = append(c.names, d.Name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Get returns the preset with the given name
func (c *Catalog) Get(name string) (Def, error) {
	if c == nil {
		return Def{}, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, name)
	}
	d, ok := c.byName[name]
	if !ok {
		return Def{}, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, name)
	}
	return d, nil
}

// List returns every preset sorted by name
func (c *Catalog) List() []Def {
	if c == nil {
		return []Def{}
	}
	defs := make([]Def, 0, len(c.names))
	for _, name := range c.names {
		defs = append(defs, c.byName[name])
	}
	return defs
}
