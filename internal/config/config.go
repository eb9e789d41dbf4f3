package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything sous needs to reach the recipe API.
type Config struct {
	APIBase           string
	APIKey            string
	RequestTimeout    time.Duration
	AutocompleteLimit int
	SearchLimit       int // zero leaves the cap to the API
	IngredientLimit   int
	LogPath           string
	RichText          bool
}

const (
	defaultConfigPath        = "~/.config/sous/config.toml"
	defaultLogPath           = "~/.local/state/sous/sous.log"
	defaultAPIBase           = "https://api.spoonacular.com"
	defaultRequestTimeout    = 10 * time.Second
	defaultAutocompleteLimit = 10
	defaultIngredientLimit   = 10

	// EnvAPIKey overrides api_key from the config file.
	EnvAPIKey = "SOUS_API_KEY"
	// EnvAPIBase overrides api_base from the config file.
	EnvAPIBase = "SOUS_API_BASE"
)

// ErrMissingAPIKey reports that neither the config file nor the environment
// supplied an API key.
var ErrMissingAPIKey = errors.New("api key not configured: set api_key in config.toml or " + EnvAPIKey)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:           defaultAPIBase,
		RequestTimeout:    defaultRequestTimeout,
		AutocompleteLimit: defaultAutocompleteLimit,
		IngredientLimit:   defaultIngredientLimit,
		LogPath:           mustExpand(defaultLogPath),
	}
}

// Load locates and parses the sous config, falling back to defaults when
// missing. Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase           string `toml:"api_base"`
		APIKey            string `toml:"api_key"`
		RequestTimeout    string `toml:"request_timeout"`
		AutocompleteLimit int    `toml:"autocomplete_limit"`
		SearchLimit       int    `toml:"search_limit"`
		IngredientLimit   int    `toml:"ingredient_limit"`
		LogPath           string `toml:"log_path"`
		RichText          bool   `toml:"rich_text"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	cfg.APIKey = strings.TrimSpace(raw.APIKey)

	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout %q: %w", v, err)
		}
		if d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if raw.AutocompleteLimit > 0 {
		cfg.AutocompleteLimit = raw.AutocompleteLimit
	}
	if raw.SearchLimit > 0 {
		cfg.SearchLimit = raw.SearchLimit
	}
	if raw.IngredientLimit > 0 {
		cfg.IngredientLimit = raw.IngredientLimit
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	cfg.RichText = raw.RichText

	applyEnv(&cfg)
	return cfg, nil
}

// Validate reports configuration that would make every request fail.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
