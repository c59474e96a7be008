package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	t.Run("converts valid value", func(t *testing.T) {
		result, err := IntToUint32(5)
		require.NoError(t, err)
		assert.Equal(t, uint32(5), result)
	})

	t.Run("converts max uint32 value", func(t *testing.T) {
		result, err := IntToUint32(math.MaxUint32)
		require.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), result)
	})

	t.Run("returns error on negative value", func(t *testing.T) {
		_, err := IntToUint32(-1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "overflow")
	})

	t.Run("returns error above max", func(t *testing.T) {
		_, err := IntToUint32(math.MaxUint32 + 1)
		require.Error(t, err)
	})
}

func TestIntToUint32Clamped(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected uint32
	}{
		{"zero", 0, 0},
		{"positive", 7, 7},
		{"negative clamps to zero", -3, 0},
		{"overflow clamps to max", math.MaxUint32 + 10, math.MaxUint32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IntToUint32Clamped(tt.input))
		})
	}
}
