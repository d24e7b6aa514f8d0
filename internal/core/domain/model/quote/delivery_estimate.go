package quote

import (
	"errors"

	"logistic/internal/core/domain/model/kernel"
	"logistic/internal/pkg/errs"
	"logistic/internal/pkg/guard"
)

// ErrDeliveryEstimateIsNotConstructed is returned when attempting to use an
// improperly initialized DeliveryEstimate.
var ErrDeliveryEstimateIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery estimate must be created via NewDeliveryEstimate constructor")

// DeliveryEstimate is the aggregated response for one calculation request:
// the normalized request echoed back plus the ordered list of quotes that
// healthy carriers produced. It is constructed once per request, immutable,
// and never persisted.
//
// Quote order depends only on the static carrier dispatch order and each
// carrier's internal mode order, never on response latency.
type DeliveryEstimate struct {
	from         string
	to           string
	fromCity     string
	toCity       string
	packages     []kernel.Package
	deliveryType kernel.DeliveryType
	shipmentDate kernel.ShipmentDate
	quotes       []Quote

	guard guard.ConstructorGuard
}

// NewDeliveryEstimate assembles the aggregated response. At least one quote
// is required: the all-carriers-failed case is an error, not an empty
// estimate, and is raised by the aggregation handler before construction.
func NewDeliveryEstimate(
	from, to, fromCity, toCity string,
	packages []kernel.Package,
	deliveryType kernel.DeliveryType,
	shipmentDate kernel.ShipmentDate,
	quotes []Quote,
) (DeliveryEstimate, error) {
	if err := errors.Join(
		requireNonEmpty("from", from),
		requireNonEmpty("to", to),
		shipmentDate.Validate(),
	); err != nil {
		return DeliveryEstimate{}, err
	}

	if len(packages) == 0 {
		return DeliveryEstimate{}, errs.NewValueIsRequiredError("packages")
	}
	if len(quotes) == 0 {
		return DeliveryEstimate{}, errs.NewValueIsRequiredError("quotes")
	}

	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			return DeliveryEstimate{}, err
		}
	}

	return DeliveryEstimate{
		from:         from,
		to:           to,
		fromCity:     fromCity,
		toCity:       toCity,
		packages:     append([]kernel.Package(nil), packages...),
		deliveryType: deliveryType,
		shipmentDate: shipmentDate,
		quotes:       append([]Quote(nil), quotes...),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func requireNonEmpty(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

// Validate checks that the estimate was created through its constructor.
func (e DeliveryEstimate) Validate() error {
	return e.guard.Validate(ErrDeliveryEstimateIsNotConstructed)
}

// From returns the caller-supplied origin location string.
func (e DeliveryEstimate) From() string {
	return e.from
}

// To returns the caller-supplied destination location string.
func (e DeliveryEstimate) To() string {
	return e.to
}

// FromCity returns the canonical origin city from the shared resolution step.
func (e DeliveryEstimate) FromCity() string {
	return e.fromCity
}

// ToCity returns the canonical destination city from the shared resolution step.
func (e DeliveryEstimate) ToCity() string {
	return e.toCity
}

// Packages returns a copy of the normalized package list.
func (e DeliveryEstimate) Packages() []kernel.Package {
	return append([]kernel.Package(nil), e.packages...)
}

// DeliveryType returns the requested delivery variant.
func (e DeliveryEstimate) DeliveryType() kernel.DeliveryType {
	return e.deliveryType
}

// ShipmentDate returns the normalized anchor date all carriers quoted against.
func (e DeliveryEstimate) ShipmentDate() kernel.ShipmentDate {
	return e.shipmentDate
}

// Quotes returns a copy of the merged quote list in carrier dispatch order.
func (e DeliveryEstimate) Quotes() []Quote {
	return append([]Quote(nil), e.quotes...)
}
