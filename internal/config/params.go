package config

import (
	"strconv"
	"strings"

	apperrors "github.com/agbru/mixrng/internal/errors"
	"github.com/agbru/mixrng/internal/mixer"
)

// defaultShiftTable is cycled by DefaultParamsFor. Worker 0 always gets the
// engine's default pair.
var defaultShiftTable = []mixer.Params{
	{A: 13, B: 7},
	{A: 7, B: 9},
	{A: 17, B: 11},
	{A: 5, B: 27},
	{A: 25, B: 3},
	{A: 11, B: 19},
	{A: 23, B: 13},
	{A: 3, B: 29},
}

// DefaultParamsFor returns threads pairs taken from the built-in shift table,
// wrapping around when threads exceeds its length.
func DefaultParamsFor(threads int) []mixer.Params {
	if threads <= 0 {
		return nil
	}
	params := make([]mixer.Params, threads)
	for i := range params {
		params[i] = defaultShiftTable[i%len(defaultShiftTable)]
	}
	return params
}

// ParseParams parses a comma-separated list of "a:b" shift pairs. Both
// shifts must be below mixer.MaxShift.
func ParseParams(spec string) ([]mixer.Params, error) {
	fields := strings.Split(spec, ",")
	params := make([]mixer.Params, 0, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		a, b, ok := strings.Cut(field, ":")
		if !ok {
			return nil, apperrors.NewFieldError("params", "pair %d %q is not of the form a:b", i, field)
		}
		sa, err := parseShift(a)
		if err != nil {
			return nil, apperrors.NewFieldError("params", "pair %d: shift a: %v", i, err)
		}
		sb, err := parseShift(b)
		if err != nil {
			return nil, apperrors.NewFieldError("params", "pair %d: shift b: %v", i, err)
		}
		params = append(params, mixer.Params{A: sa, B: sb})
	}
	return params, nil
}

func parseShift(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if v >= mixer.MaxShift {
		return 0, strconv.ErrRange
	}
	return v, nil
}
