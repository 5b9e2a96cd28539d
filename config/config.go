// Package config defines the command-line flags accepted by the botcoind
// daemon.
package config

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
)

// Config holds the mining-related flags parsed from the command line. A
// full node would additionally carry listener, RPC, and TLS settings here;
// this daemon only wires up the mining engine, so those are omitted.
type Config struct {
	Mine            bool
	MineAddress     string
	MineThreads     uint32
	MineFastMode    bool
	MineLowPriority bool
	TemplateRefresh time.Duration
	LogDir          string
	LogLevel        string
}

// Default returns the flag defaults before any command-line parsing.
func Default() *Config {
	return &Config{
		MineThreads:     1,
		MineFastMode:    true,
		MineLowPriority: true,
		TemplateRefresh: 60 * time.Second,
		LogDir:          "botcoind.log",
		LogLevel:        "info",
	}
}

// RegisterFlags attaches every mining flag to cmd, storing parsed values
// into cfg.
func RegisterFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	flags.BoolVar(&cfg.Mine, "mine", cfg.Mine, "Start mining immediately on launch")
	flags.StringVar(&cfg.MineAddress, "mineaddress", cfg.MineAddress, "Payment address for the coinbase of blocks this node mines")
	flags.Uint32Var(&cfg.MineThreads, "minethreads", cfg.MineThreads, "Number of worker goroutines to mine with")
	flags.BoolVar(&cfg.MineFastMode, "minefastmode", cfg.MineFastMode, "Use the full RandomX dataset instead of the light cache")
	flags.BoolVar(&cfg.MineLowPriority, "minelowpriority", cfg.MineLowPriority, "Request reduced OS scheduling priority for mining (recorded only; the daemon does not change its own priority)")
	flags.DurationVar(&cfg.TemplateRefresh, "minetemplaterefresh", cfg.TemplateRefresh, "Maximum time to mine against a template before rebuilding it")
	flags.StringVar(&cfg.LogDir, "logdir", cfg.LogDir, "Path to the log file")
	flags.StringVar(&cfg.LogLevel, "loglevel", cfg.LogLevel, "Logging level {trace, debug, info, warn, error, critical}")
}

// Validate reports whether cfg describes a runnable configuration.
func (c *Config) Validate() error {
	if c.Mine && c.MineAddress == "" {
		return errors.New("config: -mineaddress is required when -mine is set")
	}
	if c.MineThreads == 0 {
		return errors.New("config: -minethreads must be at least 1")
	}
	return nil
}
