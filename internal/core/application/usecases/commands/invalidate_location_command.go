package commands

import (
	"errors"

	"logistic/internal/pkg/errs"
	"logistic/internal/pkg/guard"
)

var (
	ErrInvalidateLocationCommandIsNotConstructed = errors.New(
		"InvalidateLocationCommand must be created via NewInvalidateLocationCommand constructor",
	)
	ErrCarrierIsRequired       = errs.NewValueIsRequiredError("carrier")
	ErrLocationQueryIsRequired = errs.NewValueIsRequiredError("location query")
)

// InvalidateLocationCommand drops one cached city resolution. Cached codes
// never expire on their own, so this is the escape hatch for when a
// carrier renumbers a location.
type InvalidateLocationCommand struct { //nolint:recvcheck //using for validation
	carrier string
	query   string

	guard guard.ConstructorGuard
}

// NewInvalidateLocationCommand creates the command for a (carrier, query)
// cache entry.
func NewInvalidateLocationCommand(carrier, query string) (InvalidateLocationCommand, error) {
	command := InvalidateLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if carrier == "" {
		return InvalidateLocationCommand{}, ErrCarrierIsRequired
	}
	if query == "" {
		return InvalidateLocationCommand{}, ErrLocationQueryIsRequired
	}

	command.carrier = carrier
	command.query = query
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c InvalidateLocationCommand) Validate() error {
	return c.guard.Validate(ErrInvalidateLocationCommandIsNotConstructed)
}

// Carrier returns the carrier whose cache entry is dropped.
func (c InvalidateLocationCommand) Carrier() string {
	return c.carrier
}

// Query returns the cached city query string.
func (c InvalidateLocationCommand) Query() string {
	return c.query
}
