package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/mixrng/internal/mixer"
)

func TestParseParams(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		spec    string
		want    []mixer.Params
		wantErr bool
	}{
		{"single", "13:7", []mixer.Params{{A: 13, B: 7}}, false},
		{"several", "13:7,7:9,0:63", []mixer.Params{{A: 13, B: 7}, {A: 7, B: 9}, {A: 0, B: 63}}, false},
		{"whitespace", " 13 : 7 , 7:9 ", []mixer.Params{{A: 13, B: 7}, {A: 7, B: 9}}, false},
		{"missing colon", "13", nil, true},
		{"empty pair", "13:7,", nil, true},
		{"not a number", "a:7", nil, true},
		{"negative", "-1:7", nil, true},
		{"a out of range", "64:7", nil, true},
		{"b out of range", "13:100", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseParams(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultParamsFor(t *testing.T) {
	t.Parallel()
	assert.Nil(t, DefaultParamsFor(0))
	assert.Nil(t, DefaultParamsFor(-3))
	assert.Equal(t, []mixer.Params{{A: 13, B: 7}}, DefaultParamsFor(1))

	got := DefaultParamsFor(17)
	require.Len(t, got, 17)
	for i, p := range got {
		assert.True(t, p.Valid(), "pair %d out of range", i)
		assert.Equal(t, defaultShiftTable[i%len(defaultShiftTable)], p)
	}
}
