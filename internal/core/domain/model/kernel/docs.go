// Package kernel provides core domain primitives for the quote aggregation
// system. It implements the value objects shared by every carrier adapter
// and by the aggregation use case.
//
// The package includes:
//   - Package: a validated parcel (weight in grams, dimensions in millimetres)
//   - DeliveryType: the warehouse/door delivery variant enumeration
//   - ShipmentDate: the normalized anchor date sent to every carrier
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// safe for concurrent use, which matters here: one request fans the same
// values out to several carrier adapters running in parallel.
package kernel
