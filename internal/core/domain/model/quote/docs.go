// Package quote holds the normalized result shape of the aggregation:
// Quote, one carrier's (and possibly one transport mode's) price and
// transit-time offer, and DeliveryEstimate, the immutable per-request
// aggregate of all successful quotes.
package quote
