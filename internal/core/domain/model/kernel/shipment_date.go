package kernel

import (
	"time"

	"logistic/internal/pkg/errs"
	"logistic/internal/pkg/guard"
)

// shipmentZone is the fixed UTC+3 offset all shipments are anchored to.
// Downstream carrier APIs require an explicit offset rather than a bare date.
var shipmentZone = time.FixedZone("UTC+3", 3*60*60)

// ErrShipmentDateIsNotConstructed is returned when attempting to use an
// improperly initialized ShipmentDate.
var ErrShipmentDateIsNotConstructed = errs.NewValueIsRequiredError(
	"shipment date must be created via NewShipmentDate constructor")

// ShipmentDate is the normalized anchor date sent to every carrier. It is
// computed once per request and passed unchanged to every adapter, so all
// carriers quote against the same day.
//
// Normalization rule: a missing date, today's date or a past date becomes
// tomorrow (carriers reject same-day and past pickup); any strictly future
// date is kept as-is. The anchor is local midnight in the fixed UTC+3 zone.
type ShipmentDate struct {
	value time.Time

	guard guard.ConstructorGuard
}

// NewShipmentDate normalizes the requested pickup moment against now.
// A nil requested time, or one whose calendar date in UTC+3 is today or
// earlier, is rolled over to tomorrow. The result is midnight UTC+3 of the
// chosen calendar date.
func NewShipmentDate(requested *time.Time, now time.Time) (ShipmentDate, error) {
	today := midnight(now)
	anchor := today.AddDate(0, 0, 1)

	if requested != nil {
		wanted := midnight(*requested)
		if wanted.After(today) {
			anchor = wanted
		}
	}

	return ShipmentDate{
		value: anchor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func midnight(t time.Time) time.Time {
	local := t.In(shipmentZone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, shipmentZone)
}

// Validate checks that the ShipmentDate was created through its constructor.
func (d ShipmentDate) Validate() error {
	return d.guard.Validate(ErrShipmentDateIsNotConstructed)
}

// Time returns the anchor moment: midnight of the shipment day in UTC+3.
func (d ShipmentDate) Time() time.Time {
	return d.value
}

// ISO8601 renders the anchor as an ISO-8601 timestamp with explicit offset,
// e.g. "2026-09-01T00:00:00+03:00".
func (d ShipmentDate) ISO8601() string {
	return d.value.Format("2006-01-02T15:04:05-07:00")
}

// Day renders the bare calendar date, e.g. "2026-09-01".
func (d ShipmentDate) Day() string {
	return d.value.Format("2006-01-02")
}

// DaysUntil returns the number of whole days from the anchor to t's calendar
// date in UTC+3. Used to derive transit periods from carrier arrival dates.
func (d ShipmentDate) DaysUntil(t time.Time) int {
	return int(midnight(t).Sub(d.value).Hours() / 24)
}

// IsEqual compares two shipment dates for the same anchor moment.
func (d ShipmentDate) IsEqual(other ShipmentDate) bool {
	return d.value.Equal(other.value)
}
