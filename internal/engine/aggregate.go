package engine

import (
	"fmt"
	"math/bits"
	"sort"
)

// Aggregator folds the final worker states, indexed by worker, into one value.
// Implementations must not retain or modify states.
type Aggregator interface {
	Fold(states []uint64) uint64
}

// AggregatorFunc adapts an ordinary function to the Aggregator interface.
type AggregatorFunc func(states []uint64) uint64

// Fold calls f(states).
func (f AggregatorFunc) Fold(states []uint64) uint64 {
	return f(states)
}

// XORFold xors every state together. It ignores worker order: N identical
// values fold to the value when N is odd and to zero when N is even.
type XORFold struct{}

// Fold returns states[0] ^ states[1] ^ ... ^ states[n-1].
func (XORFold) Fold(states []uint64) uint64 {
	var acc uint64
	for _, s := range states {
		acc ^= s
	}
	return acc
}

// RotatingXORFold rotates the state of worker i left by i bits before
// xoring it in, so swapping the states of two workers fewer than 64 apart
// changes the result unless the states are rotations of each other.
// Rotation amounts repeat every 64 workers: workers i and i+64 are
// interchangeable.
type RotatingXORFold struct{}

// Fold returns the xor of rotl(states[i], i) for every i.
func (RotatingXORFold) Fold(states []uint64) uint64 {
	var acc uint64
	for i, s := range states {
		acc ^= bits.RotateLeft64(s, i)
	}
	return acc
}

// DefaultAggregatorName is the name of the default aggregation policy,
// XORFold. XORFold ignores worker order; callers that need reordered
// parameters to change the result should select RotatingXORFold ("rotate-xor").
const DefaultAggregatorName = "xor"

var aggregators = map[string]Aggregator{
	DefaultAggregatorName: XORFold{},
	"rotate-xor":          RotatingXORFold{},
}

// LookupAggregator returns the built-in aggregator registered under name.
func LookupAggregator(name string) (Aggregator, error) {
	a, ok := aggregators[name]
	if !ok {
		return nil, fmt.Errorf("unknown aggregator %q", name)
	}
	return a, nil
}

// AggregatorNames lists the built-in aggregators in sorted order.
func AggregatorNames() []string {
	names := make([]string, 0, len(aggregators))
	for name := range aggregators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
