package agmip

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/delaneyj/propgraph/widget"
	"github.com/spf13/viper"
)

//go:embed default.yaml
var defaultConfig []byte

var ErrInvalidConfig = errors.New("invalid config")

// Category is one radio group of the data selection. Its key names the
// category's input on derived cells.
type Category struct {
	Label   string          `mapstructure:"label"`
	Key     string          `mapstructure:"key"`
	Options []widget.Choice `mapstructure:"options"`
}

type Config struct {
	Title string `mapstructure:"title"`

	RawDataDir         string `mapstructure:"raw_data_dir"`
	AggregatedCacheDir string `mapstructure:"aggregated_cache_dir"`
	WeightMapDir       string `mapstructure:"weight_map_dir"`
	WeightMapUploadDir string `mapstructure:"weight_map_upload_dir"`
	RegionMapDir       string `mapstructure:"region_map_dir"`
	RegionMapUploadDir string `mapstructure:"region_map_upload_dir"`
	ScriptDir          string `mapstructure:"script_dir"`
	DataFileSuffix     string `mapstructure:"data_file_suffix"`

	StartYear int `mapstructure:"start_year"`
	EndYear   int `mapstructure:"end_year"`

	Categories          []Category        `mapstructure:"categories"`
	AggregationOptions  []widget.Choice   `mapstructure:"aggregation_options"`
	WeightedAggregation string            `mapstructure:"weighted_aggregation"`
	PrimaryVars         map[string]string `mapstructure:"primary_vars"`

	// References follow the citation in the documentation download.
	References string `mapstructure:"references"`
}

// LoadConfig reads the embedded defaults, merges the file at path over them
// when path is not empty, and applies AGMIP_ environment overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("reading default config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("AGMIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no data categories", ErrInvalidConfig)
	}
	keys := map[string]bool{}
	for _, cat := range c.Categories {
		if cat.Key == "" {
			return fmt.Errorf("%w: category %q has no key", ErrInvalidConfig, cat.Label)
		}
		if keys[cat.Key] {
			return fmt.Errorf("%w: duplicate category key %q", ErrInvalidConfig, cat.Key)
		}
		keys[cat.Key] = true
		if len(cat.Options) == 0 {
			return fmt.Errorf("%w: category %q has no options", ErrInvalidConfig, cat.Label)
		}
	}
	if c.StartYear > c.EndYear {
		return fmt.Errorf("%w: start year %d after end year %d", ErrInvalidConfig, c.StartYear, c.EndYear)
	}
	if len(c.AggregationOptions) == 0 {
		return fmt.Errorf("%w: no aggregation options", ErrInvalidConfig)
	}
	return nil
}

// PrimaryVar is the output column the aggregation option produces.
func (c *Config) PrimaryVar(option string) (string, bool) {
	v, ok := c.PrimaryVars[option]
	return v, ok
}

// OptionLabel is the display label of value in the category with key.
func (c *Config) OptionLabel(key, value string) (string, bool) {
	for _, cat := range c.Categories {
		if cat.Key != key {
			continue
		}
		for _, o := range cat.Options {
			if o.Value == value {
				return o.Label, true
			}
		}
	}
	return "", false
}
