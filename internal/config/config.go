// Package config parses command-line flags and environment variables into
// the application configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/agbru/mixrng/internal/engine"
	apperrors "github.com/agbru/mixrng/internal/errors"
	"github.com/agbru/mixrng/internal/mixer"
)

// EnvPrefix is prepended to every environment variable the configuration reads.
const EnvPrefix = "MIXRNG_"

// MaxThreads is the largest accepted worker count. Each worker's state slot
// and parameter pair are allocated up front.
const MaxThreads = 1 << 16

const (
	// FormatDecimal prints the result in base 10.
	FormatDecimal = "dec"
	// FormatHex prints the result as 16 zero-padded hex digits.
	FormatHex = "hex"
)

// AppConfig aggregates the configuration parameters of the application.
type AppConfig struct {
	// Threads is the number of workers.
	Threads int
	// Loops is the number of mixing steps each worker performs.
	Loops int
	// Seed is the initial state of every worker. Only used when SeedSet is true.
	Seed uint64
	// SeedSet reports whether Seed came from a flag or the environment.
	SeedSet bool
	// ParamsSpec is the raw "a:b,a:b" list as given by the user.
	ParamsSpec string
	// Params holds one pair per worker, resolved from ParamsSpec or the
	// built-in table.
	Params []mixer.Params
	// Mixer names the transform.
	Mixer string
	// Aggregator names the fold policy.
	Aggregator string
	// MaxWorkers caps concurrently running workers. Zero means unlimited.
	MaxWorkers int
	// Format is FormatDecimal or FormatHex.
	Format string
	// Verbose prints per-worker states.
	Verbose bool
	// Quiet prints only the result.
	Quiet bool
	// Debug enables debug logging.
	Debug bool
	// LogJSON switches logs to JSON on stderr.
	LogJSON bool
	// NoColor disables colored output.
	NoColor bool
	// MetricsFile, when set, receives the run metrics in textfile format.
	MetricsFile string
	// Completion names a shell to print a completion script for.
	Completion string
}

// Validate checks the semantic validity of the configuration.
func (c AppConfig) Validate(availableMixers, availableAggregators []string) error {
	if err := c.checkThreads(); err != nil {
		return err
	}
	if c.Loops < 0 {
		return apperrors.NewFieldError("loops", "must not be negative, got %d", c.Loops)
	}
	if c.MaxWorkers < 0 {
		return apperrors.NewFieldError("max-workers", "must not be negative, got %d", c.MaxWorkers)
	}
	if c.Format != FormatDecimal && c.Format != FormatHex {
		return apperrors.NewFieldError("format", "%q (accepted values: %s, %s)", c.Format, FormatDecimal, FormatHex)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("-quiet and -verbose cannot be combined")
	}
	if c.Mixer != "" && !slices.Contains(availableMixers, c.Mixer) {
		return apperrors.NewFieldError("mixer", "unknown mixer %q (available: %s)", c.Mixer, strings.Join(availableMixers, ", "))
	}
	if c.Aggregator != "" && !slices.Contains(availableAggregators, c.Aggregator) {
		return apperrors.NewFieldError("aggregator", "unknown aggregator %q (available: %s)", c.Aggregator, strings.Join(availableAggregators, ", "))
	}
	if len(c.Params) != c.Threads {
		return apperrors.NewFieldError("params", "got %d pairs for %d threads", len(c.Params), c.Threads)
	}
	return nil
}

// EngineConfig builds the run configuration. fallbackSeed is used when no
// seed was given explicitly.
func (c AppConfig) EngineConfig(fallbackSeed uint64) engine.Config {
	s := fallbackSeed
	if c.SeedSet {
		s = c.Seed
	}
	return engine.Config{
		Threads: c.Threads,
		Loops:   c.Loops,
		Seed:    s,
		Params:  slices.Clone(c.Params),
	}
}

// ParseConfig parses the command-line arguments, applies environment
// overrides for flags that were not set, resolves the parameter pairs and
// validates the result. Usage and validation errors are reported on
// errWriter. flag.ErrHelp is returned unchanged when help was requested.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableMixers, availableAggregators []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Runs parallel xorshift-style generators and folds their states into one 64-bit value.\n\n")
		fmt.Fprintf(errWriter, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables use the %s prefix (e.g. %sTHREADS=8).\n", EnvPrefix, EnvPrefix)
	}

	config := AppConfig{}
	fs.IntVar(&config.Threads, "threads", 1, "Number of workers.")
	fs.IntVar(&config.Threads, "t", 1, "Number of workers (shorthand).")
	fs.IntVar(&config.Loops, "loops", engine.DefaultLoops, "Mixing steps per worker.")
	fs.IntVar(&config.Loops, "l", engine.DefaultLoops, "Mixing steps per worker (shorthand).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Initial state of every worker (default: process seed source).")
	fs.Uint64Var(&config.Seed, "s", 0, "Initial state of every worker (shorthand).")
	fs.StringVar(&config.ParamsSpec, "params", "", "Shift pairs, one per worker, as \"a:b,a:b\". A single pair is used for every worker.")
	fs.StringVar(&config.ParamsSpec, "p", "", "Shift pairs (shorthand).")
	fs.StringVar(&config.Mixer, "mixer", mixer.DefaultName, fmt.Sprintf("Transform to use (%s).", strings.Join(availableMixers, ", ")))
	fs.StringVar(&config.Aggregator, "aggregator", engine.DefaultAggregatorName, fmt.Sprintf("Fold policy (%s).", strings.Join(availableAggregators, ", ")))
	fs.IntVar(&config.MaxWorkers, "max-workers", 0, "Maximum concurrently running workers (0 = unlimited).")
	fs.StringVar(&config.Format, "format", FormatDecimal, "Result format (dec, hex).")
	fs.BoolVar(&config.Verbose, "v", false, "Print each worker's final state.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print each worker's final state.")
	fs.BoolVar(&config.Quiet, "q", false, "Print only the result.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&config.Debug, "debug", false, "Enable debug logging.")
	fs.BoolVar(&config.LogJSON, "log-json", false, "Write logs as JSON.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write run metrics to this file in Prometheus textfile format.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for the given shell (bash, zsh, fish).")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	config.SeedSet = isFlagSetAny(fs, "seed", "s")

	if err := applyEnvOverrides(&config, fs); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}

	if config.Completion != "" {
		return config, nil
	}

	if err := config.checkThreads(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	if err := config.resolveParams(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	if err := config.Validate(availableMixers, availableAggregators); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return config, nil
}

// checkThreads bounds Threads before any per-worker slice is allocated.
// A count above a positive MaxWorkers can never be scheduled and is a
// ResourceError; otherwise the ceiling is MaxThreads.
func (c AppConfig) checkThreads() error {
	switch {
	case c.Threads < 1:
		return apperrors.NewFieldError("threads", "must be at least 1, got %d", c.Threads)
	case c.MaxWorkers > 0 && c.Threads > c.MaxWorkers:
		return apperrors.ResourceError{Requested: c.Threads, Available: c.MaxWorkers}
	case c.Threads > MaxThreads:
		return apperrors.NewFieldError("threads", "must be at most %d, got %d", MaxThreads, c.Threads)
	}
	return nil
}

// resolveParams fills Params from ParamsSpec, or from the built-in table when
// no pairs were given.
func (c *AppConfig) resolveParams() error {
	if c.ParamsSpec == "" {
		c.Params = DefaultParamsFor(c.Threads)
		return nil
	}
	params, err := ParseParams(c.ParamsSpec)
	if err != nil {
		return err
	}
	if len(params) == 1 && c.Threads > 1 {
		params = slices.Repeat(params, c.Threads)
	}
	c.Params = params
	return nil
}
