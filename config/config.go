// Package config reads scopec settings from the environment.
package config

import (
	"github.com/dhamidi/scopec/arena"
	"github.com/dhamidi/scopec/lang/parser"
	"github.com/xyproto/env/v2"
)

const (
	EnvBlockSize = "SCOPEC_BLOCK_SIZE"
	EnvMaxBlocks = "SCOPEC_MAX_BLOCKS"
	EnvVerbosity = "SCOPEC_VERBOSITY"
	EnvLogFile   = "SCOPEC_LOG_FILE"
	EnvJobs      = "SCOPEC_JOBS"
)

const DefaultJobs = 4

type Config struct {
	BlockSize int    // nodes per arena block
	MaxBlocks int    // 0 means unlimited
	Verbosity int    // commonlog verbosity
	LogFile   string // empty means stderr
	Jobs      int    // parallel workers for check
}

// Load reads the environment, falling back to defaults for unset or
// malformed values.
func Load() Config {
	c := Config{
		BlockSize: env.Int(EnvBlockSize, arena.DefaultBlockSize),
		MaxBlocks: env.Int(EnvMaxBlocks, 0),
		Verbosity: env.Int(EnvVerbosity, 0),
		LogFile:   env.Str(EnvLogFile),
		Jobs:      env.Int(EnvJobs, DefaultJobs),
	}
	if c.BlockSize <= 0 {
		c.BlockSize = arena.DefaultBlockSize
	}
	if c.MaxBlocks < 0 {
		c.MaxBlocks = 0
	}
	if c.Jobs <= 0 {
		c.Jobs = DefaultJobs
	}
	return c
}

// ParserOptions turns the arena settings into parser options.
func (c Config) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithBlockSize(c.BlockSize),
		parser.WithMaxBlocks(c.MaxBlocks),
	}
}
