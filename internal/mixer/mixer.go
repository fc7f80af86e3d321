package mixer

import (
	"math/bits"

	apperrors "github.com/agbru/mixrng/internal/errors"
)

// MaxShift is the exclusive upper bound for both shift amounts of a Params pair.
const MaxShift = 64

// Params is the pair of tuning values handed to a Mixer on every step.
// For the shift-based variants, A and B are shift amounts and must be below
// MaxShift.
type Params struct {
	A uint64
	B uint64
}

// Valid reports whether both shift amounts are below MaxShift.
func (p Params) Valid() bool {
	return p.A < MaxShift && p.B < MaxShift
}

// requireShifts panics with a ContractError when p is out of range.
func requireShifts(op string, p Params) {
	if !p.Valid() {
		panic(apperrors.NewContractError(op, "shift amounts must be below %d, got a=%d b=%d", MaxShift, p.A, p.B))
	}
}

// Mixer is a single deterministic mixing step. Implementations must be pure:
// the same state and params always yield the same value.
type Mixer interface {
	Mix(state uint64, p Params) uint64
}

// MixerFunc adapts an ordinary function to the Mixer interface.
type MixerFunc func(state uint64, p Params) uint64

// Mix calls f(state, p).
func (f MixerFunc) Mix(state uint64, p Params) uint64 {
	return f(state, p)
}

// Xorshift is the default mixer: state ^= state<<A, then state ^= state>>B.
type Xorshift struct{}

// Mix applies one xorshift step.
func (Xorshift) Mix(state uint64, p Params) uint64 {
	requireShifts("mixer.xorshift", p)
	state ^= state << p.A
	state ^= state >> p.B
	return state
}

const xorshiftStarMultiplier = 0x2545F4914F6CDD1D

// XorshiftStar is the xorshift step followed by a fixed odd multiplier.
type XorshiftStar struct{}

// Mix applies one xorshift* step.
func (XorshiftStar) Mix(state uint64, p Params) uint64 {
	requireShifts("mixer.xorshift-star", p)
	state ^= state << p.A
	state ^= state >> p.B
	return state * xorshiftStarMultiplier
}

// Rotate folds in a left rotation by A before the right-shift xor by B.
type Rotate struct{}

// Mix applies one rotate-xor step.
func (Rotate) Mix(state uint64, p Params) uint64 {
	requireShifts("mixer.rotate", p)
	state ^= bits.RotateLeft64(state, int(p.A))
	state ^= state >> p.B
	return state
}

const (
	splitmixIncrement = 0x9e3779b97f4a7c15
	splitmixMul1      = 0xbf58476d1ce4e5b9
	splitmixMul2      = 0x94d049bb133111eb
)

// SplitMix advances the state by the golden-ratio increment and runs the
// splitmix64 finalizer, with A and B replacing its first two shift amounts.
// Params{30, 27} gives the reference splitmix64 output.
type SplitMix struct{}

// Mix applies one splitmix step.
func (SplitMix) Mix(state uint64, p Params) uint64 {
	requireShifts("mixer.splitmix", p)
	z := state + splitmixIncrement
	z = (z ^ (z >> p.A)) * splitmixMul1
	z = (z ^ (z >> p.B)) * splitmixMul2
	return z ^ (z >> 31)
}
