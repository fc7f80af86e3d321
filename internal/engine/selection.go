package engine

import (
	apperrors "github.com/agbru/mixrng/internal/errors"
	"github.com/agbru/mixrng/internal/mixer"
)

// SelectOptions resolves a mixer and an aggregator by name. Empty names
// select the defaults. Unknown names are reported as ConfigErrors.
func SelectOptions(registry *mixer.Registry, mixerName, aggregatorName string) ([]Option, error) {
	if mixerName == "" {
		mixerName = mixer.DefaultName
	}
	if aggregatorName == "" {
		aggregatorName = DefaultAggregatorName
	}
	m, err := registry.Get(mixerName)
	if err != nil {
		return nil, apperrors.NewFieldError("mixer", "%v (available: %v)", err, registry.List())
	}
	a, err := LookupAggregator(aggregatorName)
	if err != nil {
		return nil, apperrors.NewFieldError("aggregator", "%v (available: %v)", err, AggregatorNames())
	}
	return []Option{WithMixer(m), WithAggregator(a)}, nil
}
