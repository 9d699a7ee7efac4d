// Package symbols holds the static lookup tables used to turn user input
// into canonical exchange tickers: regional shorthand names and named presets.
package symbols

import (
	"strings"

	"github.com/moznion/go-optional"
)

// Shorthand maps an informal lowercase alias to a canonical ticker.
type Shorthand struct {
	Name   string
	Ticker string
}

// Region is an ordered group of shorthands for one market.
type Region struct {
	Name       string
	Shorthands []Shorthand
}

// Catalog is an immutable set of shorthand regions and presets.
// Regions are searched in declaration order; presets keep declaration order.
type Catalog struct {
	regions []Region
	presets []Preset

	regionIndex []map[string]string
	presetIndex map[string]int
}

// New builds a catalog from the given regions and presets.
// The inputs are copied; later changes to them do not affect the catalog.
func New(regions []Region, presets []Preset) *Catalog {
	c := &Catalog{
		regions:     make([]Region, 0, len(regions)),
		presets:     make([]Preset, 0, len(presets)),
		regionIndex: make([]map[string]string, 0, len(regions)),
		presetIndex: make(map[string]int, len(presets)),
	}

	for _, region := range regions {
		c.addRegion(region)
	}

	for _, preset := range presets {
		c.addPreset(preset)
	}

	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultRegions, defaultPresets)
}

// Extend returns a new catalog with extra shorthands and presets appended.
// Built-in entries win: a shorthand or preset name that already exists is ignored.
// Shorthands for an existing region name are appended to that region.
func (c *Catalog) Extend(regions []Region, presets []Preset) *Catalog {
	merged := make([]Region, len(c.regions))
	copy(merged, c.regions)

	for _, extra := range regions {
		var fresh []Shorthand

		for _, s := range extra.Shorthands {
			if c.Lookup(s.Name).IsSome() {
				continue
			}

			fresh = append(fresh, s)
		}

		if len(fresh) == 0 {
			continue
		}

		idx := -1

		for i := range merged {
			if merged[i].Name == extra.Name {
				idx = i

				break
			}
		}

		if idx < 0 {
			merged = append(merged, Region{Name: extra.Name, Shorthands: fresh})

			continue
		}

		shorthands := make([]Shorthand, 0, len(merged[idx].Shorthands)+len(fresh))
		shorthands = append(shorthands, merged[idx].Shorthands...)
		shorthands = append(shorthands, fresh...)
		merged[idx] = Region{Name: merged[idx].Name, Shorthands: shorthands}
	}

	mergedPresets := make([]Preset, len(c.presets))
	copy(mergedPresets, c.presets)

	for _, p := range presets {
		if _, exists := c.presetIndex[p.Name]; exists {
			continue
		}

		mergedPresets = append(mergedPresets, p)
	}

	return New(merged, mergedPresets)
}

// Lookup finds the ticker for a shorthand name, case-insensitively.
func (c *Catalog) Lookup(name string) optional.Option[string] {
	key := strings.ToLower(name)

	for _, index := range c.regionIndex {
		if ticker, ok := index[key]; ok {
			return optional.Some(ticker)
		}
	}

	return optional.None[string]()
}

// Resolve maps input to a canonical ticker. When input is not a known shorthand
// it is returned verbatim and shorthand is false.
func (c *Catalog) Resolve(input string) (ticker string, shorthand bool) {
	if mapped := c.Lookup(input); mapped.IsSome() {
		return mapped.Unwrap(), true
	}

	return input, false
}

// Regions returns a copy of the shorthand regions in declaration order.
func (c *Catalog) Regions() []Region {
	out := make([]Region, len(c.regions))
	for i, region := range c.regions {
		shorthands := make([]Shorthand, len(region.Shorthands))
		copy(shorthands, region.Shorthands)
		out[i] = Region{Name: region.Name, Shorthands: shorthands}
	}

	return out
}

func (c *Catalog) addRegion(region Region) {
	shorthands := make([]Shorthand, 0, len(region.Shorthands))
	index := make(map[string]string, len(region.Shorthands))

	for _, s := range region.Shorthands {
		key := strings.ToLower(s.Name)
		if _, dup := index[key]; dup {
			continue
		}

		index[key] = s.Ticker
		shorthands = append(shorthands, Shorthand{Name: key, Ticker: s.Ticker})
	}

	c.regions = append(c.regions, Region{Name: region.Name, Shorthands: shorthands})
	c.regionIndex = append(c.regionIndex, index)
}

func (c *Catalog) addPreset(preset Preset) {
	if _, dup := c.presetIndex[preset.Name]; dup {
		return
	}

	tickers := make([]string, len(preset.Tickers))
	copy(tickers, preset.Tickers)

	c.presetIndex[preset.Name] = len(c.presets)
	c.presets = append(c.presets, Preset{Name: preset.Name, Description: preset.Description, Tickers: tickers})
}
