// Package config handles benchmark configuration loading and management.
package config

// Config holds all benchmark settings.
type Config struct {
	Input    InputConfig   `yaml:"input"`
	Bench    BenchConfig   `yaml:"bench"`
	Meshlets MeshletConfig `yaml:"meshlets"`
	Logging  LoggingConfig `yaml:"logging"`
}

// InputConfig selects the mesh the benchmark runs on. When OBJPath is empty
// a generated plane of PlaneSize cells per side is used instead.
type InputConfig struct {
	OBJPath   string `yaml:"obj_path"`
	PlaneSize int    `yaml:"plane_size"`
}

// CacheSimConfig describes one simulated vertex cache model.
type CacheSimConfig struct {
	Name          string `yaml:"name"`
	CacheSize     int    `yaml:"cache_size"`
	WarpSize      int    `yaml:"warp_size"`
	PrimGroupSize int    `yaml:"primgroup_size"`
}

// BenchConfig holds run parameters shared by all passes.
type BenchConfig struct {
	CacheSims         []CacheSimConfig `yaml:"cache_sims"`
	OverdrawThreshold float64          `yaml:"overdraw_threshold"`
	ShuffleSeed       uint32           `yaml:"shuffle_seed"`
}

// MeshletConfig bounds meshlet construction.
type MeshletConfig struct {
	MaxVertices  int `yaml:"max_vertices"`
	MaxTriangles int `yaml:"max_triangles"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values. The cache models
// approximate the post-transform behavior of common GPU families.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			OBJPath:   "",
			PlaneSize: 200,
		},
		Bench: BenchConfig{
			CacheSims: []CacheSimConfig{
				{Name: "default", CacheSize: 16},
				{Name: "nvidia", CacheSize: 32, WarpSize: 32, PrimGroupSize: 32},
				{Name: "amd", CacheSize: 14, WarpSize: 64, PrimGroupSize: 128},
				{Name: "intel", CacheSize: 128},
			},
			OverdrawThreshold: 1.05,
			ShuffleSeed:       42,
		},
		Meshlets: MeshletConfig{
			MaxVertices:  64,
			MaxTriangles: 126,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
