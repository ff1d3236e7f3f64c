package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigLoadSave(t *testing.T) {
	tempDir := t.TempDir()

	// Override the home directory environment variable for testing
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// 1. Test Load with no existing file
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	// 2. Modify and Save the config
	cfg.HomeStation = "Bern"
	cfg.StorageBackend = BackendSQLite
	cfg.ResultsLimit = 6
	cfg.LongWaitMinutes = 10
	cfg.AccentColor = "#FF6B35"

	err = Save(cfg)
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Verify the file was actually created
	configPath := filepath.Join(tempDir, ".flexiplan.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Test Load with existing file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}

	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configPath := filepath.Join(tempDir, ".flexiplan.json")
	if err := os.WriteFile(configPath, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	if err := Save(&AppConfig{HomeStation: "Bern", ResultsLimit: 4}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	t.Setenv("FLEXIPLAN_HOME_STATION", "Zürich HB")
	t.Setenv("FLEXIPLAN_RESULTS_LIMIT", "8")
	t.Setenv("FLEXIPLAN_STORAGE_BACKEND", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.HomeStation != "Zürich HB" {
		t.Errorf("expected env to override home station, got %q", cfg.HomeStation)
	}
	if cfg.ResultsLimit != 8 {
		t.Errorf("expected env to override results limit, got %d", cfg.ResultsLimit)
	}
	if cfg.StorageBackend != BackendMemory {
		t.Errorf("expected env to override backend, got %q", cfg.StorageBackend)
	}

	// The file itself stays untouched
	fileCfg, err := LoadFile()
	if err != nil {
		t.Fatalf("failed to load config file: %v", err)
	}
	if fileCfg.HomeStation != "Bern" {
		t.Errorf("expected file value to survive, got %q", fileCfg.HomeStation)
	}
}

func TestConfigInvalidEnvNumber(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)
	t.Setenv("FLEXIPLAN_LONG_WAIT_MINUTES", "soon")

	if _, err := Load(); err == nil {
		t.Errorf("expected error for non-numeric FLEXIPLAN_LONG_WAIT_MINUTES")
	}
}

func TestConfigResolved(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	got := AppConfig{StorageBackend: "SQLite", ResultsLimit: 7}.Resolved()
	want := AppConfig{
		APIBaseURL:      DefaultAPIBaseURL,
		StorageBackend:  BackendSQLite,
		DataDir:         filepath.Join(tempDir, ".flexiplan"),
		ResultsLimit:    7,
		LongWaitMinutes: DefaultLongWait,
		AccentColor:     DefaultAccentColor,
		LogLevel:        DefaultLogLevel,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected resolved config.\nGot: %+v\nExpected: %+v", got, want)
	}

	if b := (AppConfig{StorageBackend: "redis"}).Resolved().StorageBackend; b != BackendFile {
		t.Errorf("expected unknown backend to fall back to file, got %q", b)
	}
}
