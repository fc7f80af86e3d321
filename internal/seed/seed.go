// Package seed provides the process-wide seed source used by the
// zero-configuration entry point.
//
// The global source is a splitmix64 stream seeded from the wall clock when
// the package is initialized. Tests and callers that need reproducible output
// replace it with SetGlobal or bypass it by setting the seed explicitly.
package seed

import (
	"sync"
	"sync/atomic"
	"time"
)

// Source yields seed values. Implementations must be safe for concurrent use.
type Source interface {
	Seed() uint64
}

// SplitMix is a splitmix64 stream with an atomically advanced state.
type SplitMix struct {
	state atomic.Uint64
}

// NewSplitMix returns a stream starting at state.
func NewSplitMix(state uint64) *SplitMix {
	s := &SplitMix{}
	s.state.Store(state)
	return s
}

// Seed advances the stream and returns the next value.
func (s *SplitMix) Seed() uint64 {
	return splitmix(s.state.Add(splitmixIncrement))
}

func splitmix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

const splitmixIncrement = 0x9e3779b97f4a7c15

// Fixed always returns the same value.
type Fixed uint64

// Seed returns f.
func (f Fixed) Seed() uint64 { return uint64(f) }

// TimeSeed returns the current wall-clock time in nanoseconds.
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

var (
	mu     sync.RWMutex
	global Source = NewSplitMix(TimeSeed())
)

// Global returns the process-wide source.
func Global() Source {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetGlobal replaces the process-wide source and returns the previous one.
// A nil src restores a fresh time-seeded stream.
func SetGlobal(src Source) Source {
	if src == nil {
		src = NewSplitMix(TimeSeed())
	}
	mu.Lock()
	defer mu.Unlock()
	prev := global
	global = src
	return prev
}
