package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	RigPath string // .hcl file or directory of .hcl files

	LogFormat string
	LogLevel  string

	// Ticks overrides the rig's configured tick count when positive.
	Ticks int

	// DotPath, when set, is where the wiring diagram is written before the
	// run starts.
	DotPath string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.RigPath == "" {
		return nil, errors.New("RigPath is a required configuration field and cannot be empty")
	}
	if cfg.Ticks < 0 {
		return nil, errors.New("Ticks cannot be negative")
	}

	return &cfg, nil
}
