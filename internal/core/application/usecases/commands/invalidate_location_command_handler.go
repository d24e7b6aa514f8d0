package commands

import (
	"context"

	"logistic/internal/core/ports"
)

// InvalidateLocationCommandHandler removes cached city resolutions.
type InvalidateLocationCommandHandler struct {
	locations ports.LocationCache
}

// NewInvalidateLocationCommandHandler creates a handler backed by the
// given location cache.
func NewInvalidateLocationCommandHandler(locations ports.LocationCache) InvalidateLocationCommandHandler {
	return InvalidateLocationCommandHandler{locations: locations}
}

// Handle drops the cache entry. Deleting an absent entry is not an error.
func (h InvalidateLocationCommandHandler) Handle(ctx context.Context, cmd InvalidateLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.locations.Invalidate(ctx, cmd.Carrier(), cmd.Query())
}
