package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. PROPMARKET_DATA_DIR.
const EnvPrefix = "PROPMARKET"

// DefaultFile is the YAML config read from the working directory when present.
const DefaultFile = "propmarket.yaml"

// Config holds run settings. Precedence, lowest first: defaults, YAML file,
// .env file, process environment, then command-line flags applied by the CLI.
type Config struct {
	DataDir  string  `yaml:"data_dir" split_words:"true"`
	MinPrice float64 `yaml:"min_price" split_words:"true"`
	LogLevel string  `yaml:"log_level" split_words:"true"`
	// Color is auto, always or never.
	Color string `yaml:"color" split_words:"true"`

	Gazetteer GazetteerConfig `yaml:"gazetteer" split_words:"true"`
	Sample    SampleConfig    `yaml:"sample" split_words:"true"`
}

// GazetteerConfig points at an optional shapefile naming postcode areas.
type GazetteerConfig struct {
	Path      string `yaml:"path" split_words:"true"`
	CodeField string `yaml:"code_field" split_words:"true"`
	NameField string `yaml:"name_field" split_words:"true"`
}

// SampleConfig controls the sample written by the raw processor.
type SampleConfig struct {
	Size int   `yaml:"size" split_words:"true"`
	Seed int64 `yaml:"seed" split_words:"true"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataDir:  "data",
		MinPrice: 30000,
		LogLevel: "info",
		Color:    "auto",
		Gazetteer: GazetteerConfig{
			CodeField: "AREA",
			NameField: "NAME",
		},
		Sample: SampleConfig{
			Size: 5000,
			Seed: 42,
		},
	}
}

// Load layers the YAML file at path (DefaultFile when empty; a missing
// default file is fine), the .env file and the environment over Default.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := loadFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return cfg, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// .env only fills variables not already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects settings the run cannot use.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must not be empty")
	}
	if c.MinPrice < 0 {
		return fmt.Errorf("min_price must be >= 0, got %v", c.MinPrice)
	}
	switch strings.ToLower(c.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if c.Sample.Size < 0 {
		return fmt.Errorf("sample.size must be >= 0, got %d", c.Sample.Size)
	}
	return nil
}
