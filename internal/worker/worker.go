// Package worker runs the fixed-count iteration loop of a single engine worker.
package worker

import (
	apperrors "github.com/agbru/mixrng/internal/errors"
	"github.com/agbru/mixrng/internal/mixer"
)

// Task is everything one worker needs for its run. State points at a slot the
// worker owns exclusively until Run returns.
type Task struct {
	State  *uint64
	Params *mixer.Params
	Loops  int
	Mixer  mixer.Mixer
}

// Validate reports the first broken precondition of t, if any.
func (t Task) Validate() error {
	switch {
	case t.State == nil:
		return apperrors.NewContractError("worker.Run", "nil state slot")
	case t.Params == nil:
		return apperrors.NewContractError("worker.Run", "nil params")
	case t.Mixer == nil:
		return apperrors.NewContractError("worker.Run", "nil mixer")
	case t.Loops < 0:
		return apperrors.NewContractError("worker.Run", "negative loop count %d", t.Loops)
	}
	return nil
}

// Run applies t.Mixer to *t.State exactly t.Loops times, feeding each output
// into the next step. It panics with a ContractError when t is malformed.
func Run(t Task) {
	if err := t.Validate(); err != nil {
		panic(err)
	}
	p := *t.Params
	state := *t.State
	for range t.Loops {
		state = t.Mixer.Mix(state, p)
	}
	*t.State = state
}
