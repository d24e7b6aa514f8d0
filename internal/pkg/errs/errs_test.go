package errs_test

import (
	"errors"
	"testing"

	"logistic/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("credential", "cdek")

		assert.Equal(t, "credential", err.ParamName)
		assert.Equal(t, "cdek", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: cdek", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("credential", "cdek", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: credential, ID is: cdek (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("deliveryType")

		assert.Equal(t, "deliveryType", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: deliveryType", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("date", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: date (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", -5, 1, 100000)

		assert.Equal(t, "weight", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100000, err.Max)
		assert.Equal(t, "value is invalid: -5 is weight, min value is 1, max value is 100000", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("packages")

	assert.Equal(t, "packages", err.ParamName)
	assert.Equal(t, "value is required: packages", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestLocationNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewLocationNotFoundError("Нарния")

		assert.Equal(t, "Нарния", err.Query)
		assert.Equal(t, "location not found: Нарния", err.Error())
		assert.Equal(t, errs.ErrLocationNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("dadata returned no records")
		err := errs.NewLocationNotFoundErrorWithCause("Нарния", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "location not found: Нарния (cause: dadata returned no records)", err.Error())
	})
}

func TestCarrierUnavailableError(t *testing.T) {
	cause := errors.New("unexpected status 500")
	err := errs.NewCarrierUnavailableError("dellin", cause)

	assert.Equal(t, "dellin", err.Carrier)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "carrier unavailable: dellin (cause: unexpected status 500)", err.Error())
	assert.Equal(t, errs.ErrCarrierUnavailable, err.Unwrap())
}

func TestCredentialError(t *testing.T) {
	t.Run("is also a carrier-level failure by classification", func(t *testing.T) {
		err := errs.NewCredentialErrorWithCause("cdek", errors.New("token exchange failed"))

		assert.Equal(t, "cdek", err.Carrier)
		assert.Equal(t, "credential error: cdek (cause: token exchange failed)", err.Error())
		require.ErrorIs(t, err, errs.ErrCredential)
	})
}

func TestNoQuotesAvailableError(t *testing.T) {
	err := errs.NewNoQuotesAvailableError([]string{"cdek", "dellin", "pecom"})

	assert.Equal(t, "no carrier produced a quote: tried cdek, dellin, pecom", err.Error())
	assert.Equal(t, errs.ErrNoQuotesAvailable, err.Unwrap())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("credential", "pecom"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("lang"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("height", 0, 1, 4000), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("from"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewLocationNotFoundError("x"), errs.ErrLocationNotFound)
		require.ErrorIs(t, errs.NewCarrierUnavailableError("cdek", errors.New("x")), errs.ErrCarrierUnavailable)
		require.ErrorIs(t, errs.NewNoQuotesAvailableError(nil), errs.ErrNoQuotesAvailable)
	})
}
