// Package config loads the optional stock-history configuration file and
// merges it with the environment and command line overrides.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/stock-history/pkg/errors"
	"github.com/rxtech-lab/stock-history/pkg/marketdata"
	"github.com/rxtech-lab/stock-history/pkg/marketdata/provider"
	"github.com/rxtech-lab/stock-history/pkg/marketdata/writer"
	"github.com/rxtech-lab/stock-history/pkg/symbols"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names the config file when --config is not given.
	EnvConfigPath = "STOCK_HISTORY_CONFIG"
	// EnvPolygonAPIKey supplies the Polygon.io API key.
	EnvPolygonAPIKey = "POLYGON_API_KEY"
	// EnvLogLevel overrides the diagnostic log level.
	EnvLogLevel = "STOCK_HISTORY_LOG_LEVEL"
)

// PresetConfig is a user-defined preset.
type PresetConfig struct {
	Description string   `yaml:"description" json:"description,omitempty" jsonschema:"title=Description,description=One line shown by --list"`
	Tickers     []string `yaml:"tickers" json:"tickers" jsonschema:"title=Tickers,description=Tickers downloaded in order,minItems=1" validate:"required,min=1,dive,required"`
}

// Config is the merged configuration of one run.
type Config struct {
	Years         int                          `yaml:"years" json:"years,omitempty" jsonschema:"title=Years,description=Years of history to download,minimum=1,default=10" validate:"min=1"`
	Output        string                       `yaml:"output" json:"output,omitempty" jsonschema:"title=Output,description=Directory the files are written to,default=." validate:"required"`
	Provider      string                       `yaml:"provider" json:"provider,omitempty" jsonschema:"title=Provider,description=Market data provider,enum=yahoo,enum=polygon,enum=binance,default=yahoo" validate:"oneof=yahoo polygon binance"`
	Format        string                       `yaml:"format" json:"format,omitempty" jsonschema:"title=Format,description=Output file format,enum=csv,enum=parquet,default=csv" validate:"oneof=csv parquet"`
	PolygonAPIKey string                       `yaml:"polygon_api_key" json:"polygon_api_key,omitempty" jsonschema:"title=Polygon API Key,description=Required when provider is polygon. Prefer the POLYGON_API_KEY environment variable" validate:"required_if=Provider polygon"`
	LogLevel      string                       `yaml:"log_level" json:"log_level,omitempty" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error,default=warn" validate:"oneof=debug info warn error"`
	Presets       map[string]PresetConfig      `yaml:"presets" json:"presets,omitempty" jsonschema:"title=Presets,description=Extra presets keyed by name. Built-in presets cannot be replaced" validate:"dive"`
	Shorthands    map[string]map[string]string `yaml:"shorthands" json:"shorthands,omitempty" jsonschema:"title=Shorthands,description=Extra shorthands keyed by region then name. Built-in shorthands cannot be replaced"`
}

// Overrides carries the command line values that were explicitly set.
type Overrides struct {
	Years    optional.Option[int]
	Output   optional.Option[string]
	Provider optional.Option[string]
	Format   optional.Option[string]
	LogLevel optional.Option[string]
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		Years:         10,
		Output:        ".",
		Provider:      string(provider.ProviderYahoo),
		Format:        string(writer.FormatCSV),
		PolygonAPIKey: "",
		LogLevel:      "warn",
		Presets:       nil,
		Shorthands:    nil,
	}
}

// Load builds the configuration from defaults, the YAML file at path,
// a .env file in the working directory and the environment, in that order.
// An empty path falls back to $STOCK_HISTORY_CONFIG; when that is empty too,
// no file is read.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
		}
	}

	if v := os.Getenv(EnvPolygonAPIKey); v != "" {
		cfg.PolygonAPIKey = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// Apply copies every override that is set onto the configuration.
func (c *Config) Apply(o Overrides) {
	if o.Years.IsSome() {
		c.Years = o.Years.Unwrap()
	}

	if o.Output.IsSome() {
		c.Output = o.Output.Unwrap()
	}

	if o.Provider.IsSome() {
		c.Provider = o.Provider.Unwrap()
	}

	if o.Format.IsSome() {
		c.Format = o.Format.Unwrap()
	}

	if o.LogLevel.IsSome() {
		c.LogLevel = o.LogLevel.Unwrap()
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// ClientConfig returns the market data client configuration.
func (c *Config) ClientConfig(showProgress bool) marketdata.ClientConfig {
	return marketdata.ClientConfig{
		ProviderType:  provider.ProviderType(c.Provider),
		Format:        writer.Format(c.Format),
		OutputDir:     c.Output,
		PolygonApiKey: c.PolygonAPIKey,
		ShowProgress:  showProgress,
	}
}

// Catalog returns the built-in catalog extended with the configured presets
// and shorthands. Entries are added in name order.
func (c *Config) Catalog() *symbols.Catalog {
	regionNames := sortedKeys(c.Shorthands)
	regions := make([]symbols.Region, 0, len(regionNames))

	for _, regionName := range regionNames {
		entries := c.Shorthands[regionName]
		region := symbols.Region{Name: regionName, Shorthands: make([]symbols.Shorthand, 0, len(entries))}

		for _, name := range sortedKeys(entries) {
			region.Shorthands = append(region.Shorthands, symbols.Shorthand{Name: name, Ticker: entries[name]})
		}

		regions = append(regions, region)
	}

	presetNames := sortedKeys(c.Presets)
	presets := make([]symbols.Preset, 0, len(presetNames))

	for _, name := range presetNames {
		preset := c.Presets[name]
		presets = append(presets, symbols.Preset{
			Name:        name,
			Description: preset.Description,
			Tickers:     preset.Tickers,
		})
	}

	return symbols.Default().Extend(regions, presets)
}

// String describes where the effective settings came from, for debug logs.
func (c *Config) String() string {
	return fmt.Sprintf("years=%d output=%s provider=%s format=%s presets=%d shorthand_regions=%d",
		c.Years, c.Output, c.Provider, c.Format, len(c.Presets), len(c.Shorthands))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
