package kernel_test

import (
	"testing"
	"time"

	"logistic/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is 2026-08-30 15:04:05 UTC+3.
var fixedNow = time.Date(2026, 8, 30, 15, 4, 5, 0, time.FixedZone("UTC+3", 3*3600))

func TestNewShipmentDate_Rollover(t *testing.T) {
	t.Run("nil_date_becomes_tomorrow", func(t *testing.T) {
		d, err := kernel.NewShipmentDate(nil, fixedNow)

		require.NoError(t, err)
		assert.Equal(t, "2026-08-31T00:00:00+03:00", d.ISO8601())
	})

	t.Run("today_becomes_tomorrow", func(t *testing.T) {
		today := fixedNow
		d, err := kernel.NewShipmentDate(&today, fixedNow)

		require.NoError(t, err)
		assert.Equal(t, "2026-08-31", d.Day())
	})

	t.Run("past_date_becomes_tomorrow", func(t *testing.T) {
		past := fixedNow.AddDate(0, 0, -10)
		d, err := kernel.NewShipmentDate(&past, fixedNow)

		require.NoError(t, err)
		assert.Equal(t, "2026-08-31", d.Day())
	})

	t.Run("today_and_past_yield_the_same_anchor", func(t *testing.T) {
		today := fixedNow
		past := fixedNow.AddDate(-1, 0, 0)

		fromToday, err := kernel.NewShipmentDate(&today, fixedNow)
		require.NoError(t, err)
		fromPast, err := kernel.NewShipmentDate(&past, fixedNow)
		require.NoError(t, err)

		assert.True(t, fromToday.IsEqual(fromPast))
	})

	t.Run("future_date_is_kept", func(t *testing.T) {
		future := time.Date(2026, 9, 14, 11, 30, 0, 0, time.UTC)
		d, err := kernel.NewShipmentDate(&future, fixedNow)

		require.NoError(t, err)
		assert.Equal(t, "2026-09-14T00:00:00+03:00", d.ISO8601())
	})
}

func TestNewShipmentDate_IdempotentOnFutureDates(t *testing.T) {
	// Given a strictly future date
	future := time.Date(2026, 9, 14, 11, 30, 0, 0, time.UTC)

	// When normalizing once and then normalizing the result again
	once, err := kernel.NewShipmentDate(&future, fixedNow)
	require.NoError(t, err)

	anchor := once.Time()
	twice, err := kernel.NewShipmentDate(&anchor, fixedNow)
	require.NoError(t, err)

	// Then the anchor does not move
	assert.True(t, once.IsEqual(twice))
}

func TestShipmentDate_DaysUntil(t *testing.T) {
	d, err := kernel.NewShipmentDate(nil, fixedNow) // anchor 2026-08-31
	require.NoError(t, err)

	arrival := time.Date(2026, 9, 3, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, d.DaysUntil(arrival))

	sameDay := time.Date(2026, 8, 31, 9, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))
	assert.Equal(t, 0, d.DaysUntil(sameDay))
}

func TestShipmentDate_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var d kernel.ShipmentDate
		require.Error(t, d.Validate())
	})

	t.Run("constructed_value_is_valid", func(t *testing.T) {
		d, err := kernel.NewShipmentDate(nil, fixedNow)
		require.NoError(t, err)
		require.NoError(t, d.Validate())
	})
}
