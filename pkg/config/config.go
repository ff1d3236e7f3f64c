package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends understood by the favorites store
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	DefaultAPIBaseURL    = "https://transport.opendata.ch/v1"
	DefaultResultsLimit  = 4
	DefaultLongWait      = 5
	DefaultAccentColor   = "#0066CC"
	DefaultLogLevel      = "warn"
	envPrefix            = "FLEXIPLAN_"
	configFileName       = ".flexiplan.json"
	defaultDataDirectory = ".flexiplan"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	HomeStation     string `json:"home_station,omitempty"`
	APIBaseURL      string `json:"api_base_url,omitempty"`
	StorageBackend  string `json:"storage_backend,omitempty"`
	DataDir         string `json:"data_dir,omitempty"`
	ResultsLimit    int    `json:"results_limit,omitempty"`
	LongWaitMinutes int    `json:"long_wait_minutes,omitempty"`
	AccentColor     string `json:"accent_color,omitempty"`
	LogLevel        string `json:"log_level,omitempty"`
}

// getConfigPath returns the absolute path to ~/.flexiplan.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, configFileName), nil
}

// Load reads the application configuration from disk and applies
// FLEXIPLAN_* environment overrides (a .env file in the working directory
// is honored too). Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}

	// A missing .env is the normal case
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads only the config file, without environment overrides.
// Use it when the result is going to be saved back.
func LoadFile() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// applyEnv overwrites fields for every FLEXIPLAN_* variable that is set
func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"HOME_STATION":    &cfg.HomeStation,
		"API_BASE_URL":    &cfg.APIBaseURL,
		"STORAGE_BACKEND": &cfg.StorageBackend,
		"DATA_DIR":        &cfg.DataDir,
		"ACCENT_COLOR":    &cfg.AccentColor,
		"LOG_LEVEL":       &cfg.LogLevel,
	}
	for name, field := range str {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}

	ints := map[string]*int{
		"RESULTS_LIMIT":     &cfg.ResultsLimit,
		"LONG_WAIT_MINUTES": &cfg.LongWaitMinutes,
	}
	for name, field := range ints {
		v, ok := lookup(envPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", envPrefix, name, v, err)
		}
		*field = n
	}
	return nil
}

// Resolved returns a copy with every unset field filled with its default
func (c AppConfig) Resolved() AppConfig {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	switch strings.ToLower(c.StorageBackend) {
	case BackendSQLite, BackendMemory:
		c.StorageBackend = strings.ToLower(c.StorageBackend)
	default:
		c.StorageBackend = BackendFile
	}
	if c.DataDir == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			c.DataDir = filepath.Join(homeDir, defaultDataDirectory)
		} else {
			c.DataDir = defaultDataDirectory
		}
	}
	if c.ResultsLimit <= 0 {
		c.ResultsLimit = DefaultResultsLimit
	}
	if c.LongWaitMinutes <= 0 {
		c.LongWaitMinutes = DefaultLongWait
	}
	if c.AccentColor == "" {
		c.AccentColor = DefaultAccentColor
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
