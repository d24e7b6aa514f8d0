// Package ports defines the interfaces through which the aggregation core
// talks to its collaborators: carrier pricing APIs, the credential store and
// the resolution caches. Implementations live under internal/adapters.
package ports

import (
	"context"

	"logistic/internal/core/domain/model/kernel"
	"logistic/internal/core/domain/model/quote"
)

// QuoteRequest carries the normalized inputs every carrier adapter receives.
// The shipment date is resolved once per request and shared, so all carriers
// quote against the same day; FromCity/ToCity come from the shared
// address-clean step.
type QuoteRequest struct {
	From     string // raw caller-supplied origin
	To       string // raw caller-supplied destination
	FromCity string // canonical origin city
	ToCity   string // canonical destination city

	Packages     []kernel.Package
	DeliveryType kernel.DeliveryType
	ShipmentDate kernel.ShipmentDate

	Currency int
	Lang     string
}

// CarrierAdapter encapsulates one carrier's authentication, request shaping
// and response parsing. A multi-mode carrier returns one quote per feasible
// transport mode in its fixed internal order; modes with no feasible routing
// are silently skipped.
//
// Any transport, auth or data-shape problem surfaces as a single error
// (errs.CarrierUnavailableError or errs.CredentialError). Adapters never
// retry; disposition is the aggregator's call.
type CarrierAdapter interface {
	// Name returns the stable carrier identifier used for credentials,
	// cache keys and logs (e.g. "cdek").
	Name() string

	// Quote prices the shipment with this carrier.
	Quote(ctx context.Context, req QuoteRequest) ([]quote.Quote, error)
}
