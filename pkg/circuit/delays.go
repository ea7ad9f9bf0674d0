package circuit

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/critpath/pkg/errors"
)

// DelayTable maps component type names to propagation delays in abstract
// time units. An optional default delay covers types without an explicit
// entry; without a default, unknown types are a construction error.
//
// The table is injected into Circuit construction rather than baked into
// the analysis code, so new component types need a config change only.
type DelayTable struct {
	Entries map[string]float64
	Default *float64
}

// DefaultDelays returns the built-in delay table covering the classic
// component set. Values are the conventional ones: registers are cheap
// (0.2), arithmetic costs a full unit, inputs are free.
func DefaultDelays() DelayTable {
	def := 0.5
	return DelayTable{
		Entries: map[string]float64{
			TypeInput:  0.0,
			TypeOutput: 0.5,
			"ADD":      1.0,
			"MUL":      1.0,
			"REG":      0.2,
			"MUX":      1.0,
		},
		Default: &def,
	}
}

// Lookup returns the delay for a component type.
// Falls back to the default when the type has no entry and a default is
// configured; otherwise reports false.
func (t DelayTable) Lookup(componentType string) (float64, bool) {
	if d, ok := t.Entries[componentType]; ok {
		return d, true
	}
	if t.Default != nil {
		return *t.Default, true
	}
	return 0, false
}

// delayConfig is the TOML shape for delay table files:
//
//	default = 0.5
//
//	[delays]
//	ADD = 1.0
//	MUL = 0.2
//	REG = 0.2
type delayConfig struct {
	Default *float64           `toml:"default"`
	Delays  map[string]float64 `toml:"delays"`
}

// ParseDelays decodes a TOML delay table. Delays must be non-negative.
func ParseDelays(data []byte) (DelayTable, error) {
	var cfg delayConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DelayTable{}, errors.Wrap(errors.ErrCodeInvalidDelays, err, "decode delay table")
	}
	if cfg.Default != nil && *cfg.Default < 0 {
		return DelayTable{}, errors.New(errors.ErrCodeInvalidDelays, "default delay must be non-negative, got %v", *cfg.Default)
	}
	for name, d := range cfg.Delays {
		if d < 0 {
			return DelayTable{}, errors.New(errors.ErrCodeInvalidDelays, "delay for %q must be non-negative, got %v", name, d)
		}
	}
	if cfg.Delays == nil {
		cfg.Delays = map[string]float64{}
	}
	return DelayTable{Entries: cfg.Delays, Default: cfg.Default}, nil
}

// LoadDelays reads a TOML delay table from disk.
func LoadDelays(path string) (DelayTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DelayTable{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "delay table %s", path)
		}
		return DelayTable{}, errors.Wrap(errors.ErrCodeInvalidDelays, err, "read delay table %s", path)
	}
	return ParseDelays(data)
}
