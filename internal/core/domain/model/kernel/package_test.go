package kernel_test

import (
	"testing"

	"logistic/internal/core/domain/model/kernel"
	"logistic/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackage(t *testing.T) {
	t.Run("creates_valid_package", func(t *testing.T) {
		// When
		p, err := kernel.NewPackage(5000, 300, 200, 150)

		// Then
		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, kernel.Grams(5000), p.Weight())
		assert.Equal(t, kernel.Millimetres(300), p.Length())
		assert.Equal(t, kernel.Millimetres(200), p.Width())
		assert.Equal(t, kernel.Millimetres(150), p.Height())
	})

	t.Run("rejects_non_positive_values", func(t *testing.T) {
		tests := []struct {
			name                  string
			weight                kernel.Grams
			length, width, height kernel.Millimetres
		}{
			{"zero_weight", 0, 300, 200, 150},
			{"negative_weight", -1, 300, 200, 150},
			{"zero_length", 5000, 0, 200, 150},
			{"zero_width", 5000, 300, 0, 150},
			{"negative_height", 5000, 300, 200, -5},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := kernel.NewPackage(tt.weight, tt.length, tt.width, tt.height)
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})

	t.Run("rejects_values_above_carrier_maximums", func(t *testing.T) {
		_, err := kernel.NewPackage(kernel.MaxPackageWeightGrams+1, 300, 200, 150)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewPackage(5000, kernel.MaxPackageDimensionMm+1, 200, 150)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("joins_all_validation_errors", func(t *testing.T) {
		_, err := kernel.NewPackage(0, 0, 200, 150)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "weight")
		assert.Contains(t, err.Error(), "length")
	})
}

func TestPackage_Validate(t *testing.T) {
	t.Run("zero_value_package_is_invalid", func(t *testing.T) {
		var p kernel.Package
		require.Error(t, p.Validate())
	})
}

func TestPackage_UnitConversions(t *testing.T) {
	// Given: 5000 g, 300 x 200 x 150 mm
	p, err := kernel.NewPackage(5000, 300, 200, 150)
	require.NoError(t, err)

	// Then: carrier payload units
	assert.InDelta(t, 5.0, p.WeightKg(), 1e-9)
	assert.InDelta(t, 0.3, p.LengthMetres(), 1e-9)
	assert.InDelta(t, 0.2, p.WidthMetres(), 1e-9)
	assert.InDelta(t, 0.15, p.HeightMetres(), 1e-9)
	assert.InDelta(t, 0.009, p.VolumeCubicMetres(), 1e-9)
}
