package engine

import (
	apperrors "github.com/agbru/mixrng/internal/errors"
	"github.com/agbru/mixrng/internal/mixer"
)

// DefaultLoops is the iteration count used by DefaultConfig.
const DefaultLoops = 1000

// DefaultParams is the parameter pair used by DefaultConfig.
var DefaultParams = mixer.Params{A: 13, B: 7}

// Config describes one run: how many workers, how many mixing steps each
// performs, the seed every worker starts from, and one Params per worker.
type Config struct {
	// Threads is the number of workers. Must be at least 1.
	Threads int
	// Loops is the iteration count applied to every worker. Must be non-negative.
	Loops int
	// Seed is the initial state of every worker slot.
	Seed uint64
	// Params holds the pair for worker i at index i. Its length must equal Threads.
	Params []mixer.Params
}

// DefaultConfig returns a single-worker configuration starting from seed.
func DefaultConfig(seed uint64) Config {
	return Config{
		Threads: 1,
		Loops:   DefaultLoops,
		Seed:    seed,
		Params:  []mixer.Params{DefaultParams},
	}
}

// Validate returns a ConfigError describing the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Threads < 1:
		return apperrors.NewFieldError("threads", "must be at least 1, got %d", c.Threads)
	case c.Loops < 0:
		return apperrors.NewFieldError("loops", "must not be negative, got %d", c.Loops)
	case len(c.Params) != c.Threads:
		return apperrors.NewFieldError("params", "got %d pairs for %d threads", len(c.Params), c.Threads)
	}
	return nil
}
