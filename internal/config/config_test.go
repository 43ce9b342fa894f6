package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/Faultbox/blockmodel/internal/convert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test atlas defaults
	if cfg.Atlas.Size != 2048 {
		t.Errorf("expected atlas size 2048, got %d", cfg.Atlas.Size)
	}
	if cfg.Atlas.FallbackSize != 16 {
		t.Errorf("expected fallback size 16, got %d", cfg.Atlas.FallbackSize)
	}
	if cfg.Atlas.ReferenceTexels != convert.DefaultReferenceTexels {
		t.Errorf("expected reference texels %d, got %d", convert.DefaultReferenceTexels, cfg.Atlas.ReferenceTexels)
	}

	// Test texture and output defaults
	if len(cfg.Textures.Paths) != 0 {
		t.Errorf("expected no extra texture paths, got %v", cfg.Textures.Paths)
	}
	if cfg.Output.Dir != "." {
		t.Errorf("expected output dir '.', got %s", cfg.Output.Dir)
	}
	if cfg.Output.Overwrite {
		t.Error("expected overwrite to be false by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
atlas:
  size: 4096
  fallback_size: 32
  reference_texels: 32

textures:
  paths:
    - "/opt/packs/base"
    - "/opt/packs/extra"

output:
  dir: "build/models"
  overwrite: true

logging:
  level: "debug"
  log_file: "modelconv.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Atlas.Size != 4096 {
		t.Errorf("expected atlas size 4096, got %d", cfg.Atlas.Size)
	}
	if cfg.Atlas.FallbackSize != 32 {
		t.Errorf("expected fallback size 32, got %d", cfg.Atlas.FallbackSize)
	}
	if cfg.Atlas.ReferenceTexels != 32 {
		t.Errorf("expected reference texels 32, got %d", cfg.Atlas.ReferenceTexels)
	}

	wantPaths := []string{"/opt/packs/base", "/opt/packs/extra"}
	if !reflect.DeepEqual(cfg.Textures.Paths, wantPaths) {
		t.Errorf("expected texture paths %v, got %v", wantPaths, cfg.Textures.Paths)
	}

	if cfg.Output.Dir != "build/models" {
		t.Errorf("expected output dir 'build/models', got %s", cfg.Output.Dir)
	}
	if !cfg.Output.Overwrite {
		t.Error("expected overwrite to be true")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "modelconv.log" {
		t.Errorf("expected log file 'modelconv.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("atlas:\n  size: 512\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Atlas.Size != 512 {
		t.Errorf("expected atlas size 512, got %d", cfg.Atlas.Size)
	}
	// Unset keys keep their defaults
	if cfg.Atlas.FallbackSize != 16 {
		t.Errorf("expected default fallback size 16, got %d", cfg.Atlas.FallbackSize)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
atlas:
  size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("atlas:\n  sise: 512\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for misspelled key, got %v", err)
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("empty file changed defaults: %+v", cfg)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/modelconv.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero atlas size", func(c *Config) { c.Atlas.Size = 0 }},
		{"negative fallback", func(c *Config) { c.Atlas.FallbackSize = -4 }},
		{"fallback larger than atlas", func(c *Config) { c.Atlas.Size = 8 }},
		{"zero reference texels", func(c *Config) { c.Atlas.ReferenceTexels = 0 }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestAtlasSettings(t *testing.T) {
	cfg := Default()
	cfg.Atlas.Size = 1024
	cfg.Atlas.FallbackSize = 8

	a := cfg.AtlasSettings()
	if a.Size != 1024 || a.FallbackSize != 8 {
		t.Errorf("AtlasSettings() = %+v", a)
	}
}

func TestConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)
	t.Setenv("AppData", tmpDir)

	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
	if filepath.Base(dir) != "blockmodel" {
		t.Errorf("expected blockmodel subdirectory, got %s", dir)
	}
}

func TestConfigDirUnavailable(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("user config dir lookup differs by platform")
	}
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")

	if dir := ConfigDir(); dir != "" {
		t.Errorf("expected empty ConfigDir without HOME, got %s", dir)
	}
	if _, err := Default().Save(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig from Save, got %v", err)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create modelconv.yaml in current directory
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("atlas:\n  size: 1024\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find modelconv.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "atlas flags",
			setup: func() {
				*flagAtlasSize = 1024
				*flagReferenceTexels = 32
			},
			verify: func(cfg *Config) {
				if cfg.Atlas.Size != 1024 {
					t.Errorf("expected atlas size 1024, got %d", cfg.Atlas.Size)
				}
				if cfg.Atlas.ReferenceTexels != 32 {
					t.Errorf("expected reference texels 32, got %d", cfg.Atlas.ReferenceTexels)
				}
			},
			teardown: func() {
				*flagAtlasSize = 0
				*flagReferenceTexels = 0
			},
		},
		{
			name: "output flags",
			setup: func() {
				*flagOut = "dist"
				*flagOverwrite = true
			},
			verify: func(cfg *Config) {
				if cfg.Output.Dir != "dist" {
					t.Errorf("expected output dir 'dist', got %s", cfg.Output.Dir)
				}
				if !cfg.Output.Overwrite {
					t.Error("expected overwrite to be enabled")
				}
			},
			teardown: func() {
				*flagOut = ""
				*flagOverwrite = false
			},
		},
		{
			name: "texture paths append",
			setup: func() {
				_ = flagTexturePaths.Set("/a")
				_ = flagTexturePaths.Set("/b")
			},
			verify: func(cfg *Config) {
				want := []string{"/a", "/b"}
				if !reflect.DeepEqual(cfg.Textures.Paths, want) {
					t.Errorf("expected texture paths %v, got %v", want, cfg.Textures.Paths)
				}
			},
			teardown: func() {
				flagTexturePaths = nil
			},
		},
		{
			name: "log file flag",
			setup: func() {
				*flagLogFile = "out.log"
			},
			verify: func(cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file 'out.log', got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagLogFile = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
atlas:
  size: 1024
  fallback_size: 8
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagAtlasSize = 512
	defer func() {
		*flagConfig = ""
		*flagAtlasSize = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Size should be from flag (512), not file (1024)
	if cfg.Atlas.Size != 512 {
		t.Errorf("expected atlas size 512 from flag, got %d", cfg.Atlas.Size)
	}

	// Fallback size should be from file (8) since no flag override
	if cfg.Atlas.FallbackSize != 8 {
		t.Errorf("expected fallback size 8 from file, got %d", cfg.Atlas.FallbackSize)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Atlas.Size = 4096
	cfg.Textures.Paths = []string{"/packs/a"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)
	t.Setenv("AppData", tmpDir)

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(ConfigDir(), FileName); path != want {
		t.Errorf("Save wrote %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected saved config at %s: %v", path, err)
	}
}

func TestLoadSource(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)
	t.Setenv("AppData", tmpDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load without config file: %v", err)
	}
	if cfg.Source() != "" {
		t.Errorf("expected no source, got %s", cfg.Source())
	}

	// A config saved to the user dir is found on the next load.
	saved := Default()
	saved.Atlas.Size = 1024
	path, err := saved.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source() != path {
		t.Errorf("Source() = %s, want %s", cfg.Source(), path)
	}
	if cfg.Atlas.Size != 1024 {
		t.Errorf("expected atlas size 1024 from saved config, got %d", cfg.Atlas.Size)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	*flagConfig = filepath.Join(t.TempDir(), "nope.yaml")
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for missing -config file")
	}
}
