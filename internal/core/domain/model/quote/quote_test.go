package quote_test

import (
	"testing"

	"logistic/internal/core/domain/model/quote"
	"logistic/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuote(t *testing.T) {
	t.Run("creates_valid_quote", func(t *testing.T) {
		q, err := quote.NewQuote("СДЭК", 150_000, 3, 5, "https://cdek.ru", "logo")

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Equal(t, "СДЭК", q.CarrierName())
		assert.Equal(t, quote.Kopecks(150_000), q.Amount())
		assert.Equal(t, 3, q.PeriodMin())
		assert.Equal(t, 5, q.PeriodMax())
	})

	t.Run("allows_zero_amount_and_equal_periods", func(t *testing.T) {
		q, err := quote.NewQuote("ПЭК (автоперевозка)", 0, 5, 5, "", "")

		require.NoError(t, err)
		assert.Equal(t, quote.Kopecks(0), q.Amount())
	})

	t.Run("rejects_empty_carrier_name", func(t *testing.T) {
		_, err := quote.NewQuote("", 100, 1, 2, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_negative_amount", func(t *testing.T) {
		_, err := quote.NewQuote("СДЭК", -1, 1, 2, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_inverted_period", func(t *testing.T) {
		_, err := quote.NewQuote("СДЭК", 100, 5, 3, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative_period", func(t *testing.T) {
		_, err := quote.NewQuote("СДЭК", 100, -1, 3, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestQuote_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var q quote.Quote
		require.Error(t, q.Validate())
	})
}
