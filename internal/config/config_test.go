package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Input.OBJPath != "" {
		t.Errorf("expected empty OBJ path, got %s", cfg.Input.OBJPath)
	}
	if cfg.Input.PlaneSize != 200 {
		t.Errorf("expected plane size 200, got %d", cfg.Input.PlaneSize)
	}

	if len(cfg.Bench.CacheSims) != 4 {
		t.Fatalf("expected 4 cache models, got %d", len(cfg.Bench.CacheSims))
	}
	if cfg.Bench.CacheSims[0].Name != "default" || cfg.Bench.CacheSims[0].CacheSize != 16 {
		t.Errorf("unexpected first cache model: %+v", cfg.Bench.CacheSims[0])
	}
	if cfg.Bench.OverdrawThreshold != 1.05 {
		t.Errorf("expected overdraw threshold 1.05, got %f", cfg.Bench.OverdrawThreshold)
	}

	if cfg.Meshlets.MaxVertices != 64 {
		t.Errorf("expected max vertices 64, got %d", cfg.Meshlets.MaxVertices)
	}
	if cfg.Meshlets.MaxTriangles != 126 {
		t.Errorf("expected max triangles 126, got %d", cfg.Meshlets.MaxTriangles)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
input:
  obj_path: "models/bunny.obj"
  plane_size: 64

bench:
  cache_sims:
    - name: tiny
      cache_size: 4
  overdraw_threshold: 1.5
  shuffle_seed: 7

meshlets:
  max_vertices: 32
  max_triangles: 48

logging:
  level: "debug"
  log_file: "bench.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Input.OBJPath != "models/bunny.obj" {
		t.Errorf("expected OBJ path models/bunny.obj, got %s", cfg.Input.OBJPath)
	}
	if cfg.Input.PlaneSize != 64 {
		t.Errorf("expected plane size 64, got %d", cfg.Input.PlaneSize)
	}

	if len(cfg.Bench.CacheSims) != 1 {
		t.Fatalf("expected cache sims replaced by file, got %d entries", len(cfg.Bench.CacheSims))
	}
	if cfg.Bench.CacheSims[0].Name != "tiny" || cfg.Bench.CacheSims[0].CacheSize != 4 {
		t.Errorf("unexpected cache model: %+v", cfg.Bench.CacheSims[0])
	}
	if cfg.Bench.OverdrawThreshold != 1.5 {
		t.Errorf("expected overdraw threshold 1.5, got %f", cfg.Bench.OverdrawThreshold)
	}
	if cfg.Bench.ShuffleSeed != 7 {
		t.Errorf("expected shuffle seed 7, got %d", cfg.Bench.ShuffleSeed)
	}

	if cfg.Meshlets.MaxVertices != 32 || cfg.Meshlets.MaxTriangles != 48 {
		t.Errorf("unexpected meshlet limits: %+v", cfg.Meshlets)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "bench.log" {
		t.Errorf("expected log file 'bench.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
input:
  plane_size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "meshbench.yaml")
	if err := os.WriteFile(configPath, []byte("input:\n  plane_size: 16\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshbench.yaml in current directory")
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
			name: "obj flag",
			setup: func() {
				*flagOBJ = "models/dragon.obj"
			},
			verify: func(cfg *Config) {
				if cfg.Input.OBJPath != "models/dragon.obj" {
					t.Errorf("expected OBJ path models/dragon.obj, got %s", cfg.Input.OBJPath)
				}
			},
			teardown: func() {
				*flagOBJ = ""
			},
		},
		{
			name: "plane flag",
			setup: func() {
				*flagPlane = 50
			},
			verify: func(cfg *Config) {
				if cfg.Input.PlaneSize != 50 {
					t.Errorf("expected plane size 50, got %d", cfg.Input.PlaneSize)
				}
			},
			teardown: func() {
				*flagPlane = 0
			},
		},
		{
			name: "seed flag",
			setup: func() {
				*flagSeed = 1337
			},
			verify: func(cfg *Config) {
				if cfg.Bench.ShuffleSeed != 1337 {
					t.Errorf("expected seed 1337, got %d", cfg.Bench.ShuffleSeed)
				}
			},
			teardown: func() {
				*flagSeed = 0
			},
		},
		{
			name: "log flag",
			setup: func() {
				*flagLogFile = "out.log"
			},
			verify: func(cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagLogFile = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
input:
  plane_size: 100

logging:
  level: warn
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the file
	*flagConfig = configPath
	*flagPlane = 25
	defer func() {
		*flagConfig = ""
		*flagPlane = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Plane size should be from flag (25), not file (100)
	if cfg.Input.PlaneSize != 25 {
		t.Errorf("expected plane size 25 from flag, got %d", cfg.Input.PlaneSize)
	}

	// Level should be from file since no flag override
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn from file, got %s", cfg.Logging.Level)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Input.PlaneSize = 77
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Input.PlaneSize != 77 {
		t.Errorf("round trip lost plane size: got %d", loaded.Input.PlaneSize)
	}
}
