package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/mixrng/internal/errors"
	"github.com/agbru/mixrng/internal/mixer"
)

var (
	testMixers      = []string{"rotate", "splitmix", "xorshift", "xorshift-star"}
	testAggregators = []string{"rotate-xor", "xor"}
)

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("mixrng", args, io.Discard, testMixers, testAggregators)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Threads)
	assert.Equal(t, 1000, cfg.Loops)
	assert.False(t, cfg.SeedSet)
	assert.Equal(t, []mixer.Params{{A: 13, B: 7}}, cfg.Params)
	assert.Equal(t, "xorshift", cfg.Mixer)
	assert.Equal(t, "xor", cfg.Aggregator)
	assert.Equal(t, FormatDecimal, cfg.Format)
	assert.Zero(t, cfg.MaxWorkers)
}

func TestParseConfig_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg AppConfig)
	}{
		{
			name: "long forms",
			args: []string{"-threads", "2", "-loops", "3", "-seed", "1", "-params", "13:7,7:9"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.Equal(t, 2, cfg.Threads)
				assert.Equal(t, 3, cfg.Loops)
				assert.True(t, cfg.SeedSet)
				assert.Equal(t, uint64(1), cfg.Seed)
				assert.Equal(t, []mixer.Params{{A: 13, B: 7}, {A: 7, B: 9}}, cfg.Params)
			},
		},
		{
			name: "shorthands",
			args: []string{"-t", "3", "-l", "0", "-s", "0", "-p", "5:27"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.Equal(t, 3, cfg.Threads)
				assert.Equal(t, 0, cfg.Loops)
				assert.True(t, cfg.SeedSet, "an explicit zero seed still counts as set")
				assert.Equal(t, []mixer.Params{{A: 5, B: 27}, {A: 5, B: 27}, {A: 5, B: 27}}, cfg.Params)
			},
		},
		{
			name: "default table cycles",
			args: []string{"-threads", "10"},
			check: func(t *testing.T, cfg AppConfig) {
				require.Len(t, cfg.Params, 10)
				assert.Equal(t, cfg.Params[0], cfg.Params[8])
				assert.Equal(t, cfg.Params[1], cfg.Params[9])
			},
		},
		{
			name: "presentation",
			args: []string{"-format", "hex", "-v", "-debug", "-log-json", "-no-color", "-metrics-file", "m.prom"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.Equal(t, FormatHex, cfg.Format)
				assert.True(t, cfg.Verbose)
				assert.True(t, cfg.Debug)
				assert.True(t, cfg.LogJSON)
				assert.True(t, cfg.NoColor)
				assert.Equal(t, "m.prom", cfg.MetricsFile)
			},
		},
		{
			name: "selection",
			args: []string{"-mixer", "splitmix", "-aggregator", "rotate-xor", "-max-workers", "4"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.Equal(t, "splitmix", cfg.Mixer)
				assert.Equal(t, "rotate-xor", cfg.Aggregator)
				assert.Equal(t, 4, cfg.MaxWorkers)
			},
		},
		{
			name: "completion skips validation",
			args: []string{"-completion", "bash", "-threads", "0"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.Equal(t, "bash", cfg.Completion)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, tt.args...)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantField string
	}{
		{"zero threads", []string{"-threads", "0"}, "threads"},
		{"threads above ceiling", []string{"-threads", "1152921504606846976", "-params", "13:7"}, "threads"},
		{"threads above ceiling default params", []string{"-threads", "1152921504606846976"}, "threads"},
		{"threads above ceiling large budget", []string{"-threads", "70000", "-max-workers", "100000"}, "threads"},
		{"negative loops", []string{"-loops", "-1"}, "loops"},
		{"negative budget", []string{"-max-workers", "-1"}, "max-workers"},
		{"bad format", []string{"-format", "oct"}, "format"},
		{"unknown mixer", []string{"-mixer", "pcg"}, "mixer"},
		{"unknown aggregator", []string{"-aggregator", "sum"}, "aggregator"},
		{"pair count mismatch", []string{"-threads", "3", "-params", "13:7,7:9"}, "params"},
		{"malformed pair", []string{"-params", "13-7"}, "params"},
		{"shift out of range", []string{"-params", "64:7"}, "params"},
		{"quiet and verbose", []string{"-q", "-v"}, ""},
		{"unknown flag", []string{"-frobnicate"}, ""},
		{"positional argument", []string{"extra"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := ParseConfig("mixrng", tt.args, &errBuf, testMixers, testAggregators)
			require.Error(t, err)

			var cfgErr apperrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCodeFor(err))
			assert.NotEmpty(t, errBuf.String(), "the error should be reported on errWriter")
		})
	}
}

func TestParseConfig_ThreadsOverBudget(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"small", []string{"-threads", "8", "-max-workers", "4"}},
		{"huge with pair", []string{"-threads", "1152921504606846976", "-max-workers", "4", "-params", "13:7"}},
		{"huge default params", []string{"-threads", "1152921504606846976", "-max-workers", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := ParseConfig("mixrng", tt.args, &errBuf, testMixers, testAggregators)

			var resErr apperrors.ResourceError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, 4, resErr.Available)
			assert.Equal(t, apperrors.ExitErrorResource, apperrors.ExitCodeFor(err))
			assert.Contains(t, errBuf.String(), "cannot start")
		})
	}
}

func TestParseConfig_ThreadsAtCeiling(t *testing.T) {
	cfg, err := parse(t, "-threads", strconv.Itoa(MaxThreads), "-params", "13:7")
	require.NoError(t, err)
	assert.Len(t, cfg.Params, MaxThreads)
}

func TestParseConfig_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("mixrng", []string{"-h"}, &errBuf, testMixers, testAggregators)
	require.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, errBuf.String(), "Usage: mixrng")
	assert.Contains(t, errBuf.String(), EnvPrefix)
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"THREADS", "2")
	t.Setenv(EnvPrefix+"LOOPS", "5")
	t.Setenv(EnvPrefix+"SEED", "42")
	t.Setenv(EnvPrefix+"PARAMS", "17:11")
	t.Setenv(EnvPrefix+"FORMAT", "hex")
	t.Setenv(EnvPrefix+"QUIET", "true")

	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Threads)
	assert.Equal(t, 5, cfg.Loops)
	assert.True(t, cfg.SeedSet)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, []mixer.Params{{A: 17, B: 11}, {A: 17, B: 11}}, cfg.Params)
	assert.Equal(t, FormatHex, cfg.Format)
	assert.True(t, cfg.Quiet)
}

func TestParseConfig_FlagsBeatEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"THREADS", "4")
	t.Setenv(EnvPrefix+"SEED", "42")

	cfg, err := parse(t, "-t", "1", "-seed", "7")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Threads)
	assert.Equal(t, uint64(7), cfg.Seed)
}

func TestParseConfig_InvalidEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"LOOPS", "many")

	_, err := parse(t)
	var cfgErr apperrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()
	params := []mixer.Params{{A: 13, B: 7}}

	unseeded := AppConfig{Threads: 1, Loops: 3, Params: params}
	assert.Equal(t, uint64(99), unseeded.EngineConfig(99).Seed)

	seeded := AppConfig{Threads: 1, Loops: 3, Seed: 1, SeedSet: true, Params: params}
	ec := seeded.EngineConfig(99)
	assert.Equal(t, uint64(1), ec.Seed)
	assert.Equal(t, 3, ec.Loops)
	require.NoError(t, ec.Validate())

	ec.Params[0].A = 1
	assert.Equal(t, uint64(13), seeded.Params[0].A, "EngineConfig must not alias the config's params")
}
