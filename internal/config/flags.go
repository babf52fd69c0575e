package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagOBJ     = flag.String("obj", "", "Path to a Wavefront OBJ model")
	flagPlane   = flag.Int("plane", 0, "Generated plane size (cells per side)")
	flagSeed    = flag.Uint("seed", 0, "Shuffle seed for the pessimal baseline")
	flagLogFile = flag.String("log", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOBJ != "" {
		cfg.Input.OBJPath = *flagOBJ
	}
	if *flagPlane > 0 {
		cfg.Input.PlaneSize = *flagPlane
	}
	if *flagSeed > 0 {
		cfg.Bench.ShuffleSeed = uint32(*flagSeed)
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
