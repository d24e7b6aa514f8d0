package quote

import (
	"errors"
	"fmt"

	"logistic/internal/pkg/errs"
	"logistic/internal/pkg/guard"
)

// ErrQuoteIsNotConstructed is returned when attempting to use an improperly
// initialized Quote.
var ErrQuoteIsNotConstructed = errs.NewValueIsRequiredError(
	"quote must be created via NewQuote constructor")

// Quote is one normalized price and transit-time offer from one carrier,
// possibly for one specific transport mode. Monetary amounts are kopecks
// (fixed-point smallest currency unit) regardless of how the carrier API
// reports them.
type Quote struct { //nolint:recvcheck //using for validation
	carrierName string
	amount      Kopecks
	periodMin   int
	periodMax   int
	url         string
	logo        string

	guard guard.ConstructorGuard
}

// Kopecks is a monetary amount in the smallest currency unit.
type Kopecks int64

// NewQuote creates a validated Quote. The carrier display name is required,
// the amount must be non-negative and the transit period must satisfy
// min <= max with a non-negative minimum.
func NewQuote(carrierName string, amount Kopecks, periodMin, periodMax int, url, logo string) (Quote, error) {
	q := Quote{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setCarrierName(carrierName),
		q.setAmount(amount),
		q.setPeriod(periodMin, periodMax),
	); err != nil {
		return Quote{}, err
	}

	q.url = url
	q.logo = logo
	return q, nil
}

// Validate checks that the Quote was created through its constructor.
func (q Quote) Validate() error {
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

// CarrierName returns the carrier display name, including the transport mode
// suffix for multi-mode carriers.
func (q Quote) CarrierName() string {
	return q.carrierName
}

// Amount returns the delivery cost in kopecks.
func (q Quote) Amount() Kopecks {
	return q.amount
}

// PeriodMin returns the minimum transit time in days.
func (q Quote) PeriodMin() int {
	return q.periodMin
}

// PeriodMax returns the maximum transit time in days.
func (q Quote) PeriodMax() int {
	return q.periodMax
}

// URL returns the carrier's public information page.
func (q Quote) URL() string {
	return q.url
}

// Logo returns the carrier logo reference.
func (q Quote) Logo() string {
	return q.logo
}

// String returns a compact representation useful for logging.
func (q Quote) String() string {
	return fmt.Sprintf("Quote(%s: %d kop, %d-%d days)", q.carrierName, q.amount, q.periodMin, q.periodMax)
}

func (q *Quote) setCarrierName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("carrierName")
	}

	q.carrierName = name
	return nil
}

func (q *Quote) setAmount(amount Kopecks) error {
	if amount < 0 {
		return errs.NewValueIsInvalidError("amount")
	}

	q.amount = amount
	return nil
}

func (q *Quote) setPeriod(periodMin, periodMax int) error {
	if periodMin < 0 || periodMin > periodMax {
		return errs.NewValueIsInvalidError("period")
	}

	q.periodMin = periodMin
	q.periodMax = periodMax
	return nil
}
