package symbols

import (
	"strings"

	"github.com/rxtech-lab/stock-history/pkg/errors"
)

// Preset is a named, ordered basket of tickers.
type Preset struct {
	Name        string
	Description string
	Tickers     []string
}

// Expand returns the tickers of the named preset in declared order.
// An unknown name yields an ErrCodeUnknownPreset error listing the valid names.
func (c *Catalog) Expand(name string) ([]string, error) {
	idx, ok := c.presetIndex[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownPreset,
			"unknown preset: %s (available presets: %s)", name, strings.Join(c.PresetNames(), ", "))
	}

	tickers := make([]string, len(c.presets[idx].Tickers))
	copy(tickers, c.presets[idx].Tickers)

	return tickers, nil
}

// HasPreset reports whether name is a known preset.
func (c *Catalog) HasPreset(name string) bool {
	_, ok := c.presetIndex[name]

	return ok
}

// PresetNames returns the preset names in declared order.
func (c *Catalog) PresetNames() []string {
	names := make([]string, len(c.presets))
	for i, p := range c.presets {
		names[i] = p.Name
	}

	return names
}

// Presets returns a copy of every preset in declared order.
func (c *Catalog) Presets() []Preset {
	out := make([]Preset, len(c.presets))
	for i, p := range c.presets {
		tickers := make([]string, len(p.Tickers))
		copy(tickers, p.Tickers)
		out[i] = Preset{Name: p.Name, Description: p.Description, Tickers: tickers}
	}

	return out
}
