// This file contains environment variable overrides for the configuration.

package config

import (
	"flag"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/agbru/mixrng/internal/errors"
)

// envConfig mirrors the overridable flags. Pointer fields stay nil when the
// variable is unset, which separates "unset" from the zero value.
type envConfig struct {
	Threads     *int    `env:"THREADS"`
	Loops       *int    `env:"LOOPS"`
	Seed        *uint64 `env:"SEED"`
	Params      *string `env:"PARAMS"`
	Mixer       *string `env:"MIXER"`
	Aggregator  *string `env:"AGGREGATOR"`
	MaxWorkers  *int    `env:"MAX_WORKERS"`
	Format      *string `env:"FORMAT"`
	Verbose     *bool   `env:"VERBOSE"`
	Quiet       *bool   `env:"QUIET"`
	Debug       *bool   `env:"DEBUG"`
	LogJSON     *bool   `env:"LOG_JSON"`
	NoColor     *bool   `env:"NO_COLOR"`
	MetricsFile *string `env:"METRICS_FILE"`
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be given in either the short or the long form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps one environment field to the flag name(s) it shadows.
type envOverride struct {
	flags []string
	apply func(*AppConfig, *envConfig)
}

func set[T any](dst *T, src *T) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	{[]string{"threads", "t"}, func(c *AppConfig, e *envConfig) { set(&c.Threads, e.Threads) }},
	{[]string{"loops", "l"}, func(c *AppConfig, e *envConfig) { set(&c.Loops, e.Loops) }},
	{[]string{"seed", "s"}, func(c *AppConfig, e *envConfig) {
		if set(&c.Seed, e.Seed) {
			c.SeedSet = true
		}
	}},
	{[]string{"params", "p"}, func(c *AppConfig, e *envConfig) { set(&c.ParamsSpec, e.Params) }},
	{[]string{"mixer"}, func(c *AppConfig, e *envConfig) { set(&c.Mixer, e.Mixer) }},
	{[]string{"aggregator"}, func(c *AppConfig, e *envConfig) { set(&c.Aggregator, e.Aggregator) }},
	{[]string{"max-workers"}, func(c *AppConfig, e *envConfig) { set(&c.MaxWorkers, e.MaxWorkers) }},
	{[]string{"format"}, func(c *AppConfig, e *envConfig) { set(&c.Format, e.Format) }},
	{[]string{"v", "verbose"}, func(c *AppConfig, e *envConfig) { set(&c.Verbose, e.Verbose) }},
	{[]string{"q", "quiet"}, func(c *AppConfig, e *envConfig) { set(&c.Quiet, e.Quiet) }},
	{[]string{"debug"}, func(c *AppConfig, e *envConfig) { set(&c.Debug, e.Debug) }},
	{[]string{"log-json"}, func(c *AppConfig, e *envConfig) { set(&c.LogJSON, e.LogJSON) }},
	{[]string{"no-color"}, func(c *AppConfig, e *envConfig) { set(&c.NoColor, e.NoColor) }},
	{[]string{"metrics-file"}, func(c *AppConfig, e *envConfig) { set(&c.MetricsFile, e.MetricsFile) }},
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// Priority: CLI flags > environment variables > defaults.
//
// A variable that is present but cannot be parsed is a ConfigError.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	var raw envConfig
	if err := env.ParseWithOptions(&raw, env.Options{Prefix: EnvPrefix}); err != nil {
		return apperrors.NewConfigError("environment: %v", err)
	}
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply(config, &raw)
	}
	return nil
}
