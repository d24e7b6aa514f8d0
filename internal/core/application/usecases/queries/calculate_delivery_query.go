package queries

import (
	"errors"
	"time"

	"logistic/internal/core/domain/model/kernel"
	"logistic/internal/pkg/errs"
	"logistic/internal/pkg/guard"
)

var (
	ErrCalculateDeliveryQueryIsNotConstructed = errors.New(
		"CalculateDeliveryQuery must be created via NewCalculateDeliveryQuery constructor",
	)
	ErrFromLocationIsRequired = errs.NewValueIsRequiredError("from location")
	ErrToLocationIsRequired   = errs.NewValueIsRequiredError("to location")
	ErrPackagesAreRequired    = errs.NewValueIsRequiredError("packages")
)

// Defaults applied when the caller leaves the optional pricing fields empty.
const (
	DefaultCurrencyCode = 1 // RUB
	DefaultLanguage     = "rus"
)

// CalculateDeliveryQuery represents a request to price a shipment across
// every configured carrier. From and to are free-form addresses; the
// shipment date is optional and normalized against the current moment.
//
// Example:
//
//	pkg, _ := kernel.NewPackage(5000, 300, 200, 150)
//	query, err := NewCalculateDeliveryQuery(
//	    "г Москва, ул Ленина 1",
//	    "г Казань, ул Баумана 5",
//	    []kernel.Package{pkg},
//	    kernel.DoorDoor,
//	    nil, 0, "",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid calculation request: %w", err)
//	}
//
//	estimate, err := handler.Handle(ctx, query)
type CalculateDeliveryQuery struct { //nolint:recvcheck //using for validation
	from          string
	to            string
	packages      []kernel.Package
	deliveryType  kernel.DeliveryType
	requestedDate *time.Time
	currency      int
	lang          string

	guard guard.ConstructorGuard
}

// NewCalculateDeliveryQuery creates a calculation query. Both addresses and
// at least one package are required. An unknown delivery type code falls
// back to warehouse-warehouse; zero currency and empty lang take the
// defaults.
func NewCalculateDeliveryQuery(
	from string,
	to string,
	packages []kernel.Package,
	deliveryType kernel.DeliveryType,
	requestedDate *time.Time,
	currency int,
	lang string,
) (CalculateDeliveryQuery, error) {
	query := CalculateDeliveryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setFrom(from),
		query.setTo(to),
		query.setPackages(packages),
		query.setDeliveryType(deliveryType),
	); err != nil {
		return CalculateDeliveryQuery{}, err
	}

	if requestedDate != nil {
		date := *requestedDate
		query.requestedDate = &date
	}

	query.currency = currency
	if query.currency == 0 {
		query.currency = DefaultCurrencyCode
	}
	query.lang = lang
	if query.lang == "" {
		query.lang = DefaultLanguage
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q CalculateDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrCalculateDeliveryQueryIsNotConstructed)
}

// From returns the free-form origin address.
func (q CalculateDeliveryQuery) From() string {
	return q.from
}

// To returns the free-form destination address.
func (q CalculateDeliveryQuery) To() string {
	return q.to
}

// Packages returns a copy of the shipment's packages.
func (q CalculateDeliveryQuery) Packages() []kernel.Package {
	packages := make([]kernel.Package, len(q.packages))
	copy(packages, q.packages)
	return packages
}

// DeliveryType returns the pickup and drop-off kind.
func (q CalculateDeliveryQuery) DeliveryType() kernel.DeliveryType {
	return q.deliveryType
}

// RequestedDate returns the caller's desired shipment date, nil when none
// was given.
func (q CalculateDeliveryQuery) RequestedDate() *time.Time {
	if q.requestedDate == nil {
		return nil
	}
	date := *q.requestedDate
	return &date
}

// Currency returns the pricing currency code.
func (q CalculateDeliveryQuery) Currency() int {
	return q.currency
}

// Lang returns the response language.
func (q CalculateDeliveryQuery) Lang() string {
	return q.lang
}

func (q *CalculateDeliveryQuery) setFrom(from string) error {
	if from == "" {
		return ErrFromLocationIsRequired
	}

	q.from = from
	return nil
}

func (q *CalculateDeliveryQuery) setTo(to string) error {
	if to == "" {
		return ErrToLocationIsRequired
	}

	q.to = to
	return nil
}

func (q *CalculateDeliveryQuery) setPackages(packages []kernel.Package) error {
	if len(packages) == 0 {
		return ErrPackagesAreRequired
	}

	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	q.packages = make([]kernel.Package, len(packages))
	copy(q.packages, packages)
	return nil
}

func (q *CalculateDeliveryQuery) setDeliveryType(deliveryType kernel.DeliveryType) error {
	if !deliveryType.IsValid() {
		deliveryType = kernel.WarehouseWarehouse
	}

	q.deliveryType = deliveryType
	return nil
}
