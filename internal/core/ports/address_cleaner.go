package ports

import "context"

// AddressCleaner maps a free-form address or city string to a canonical city
// name. This is the shared resolution step performed once per request before
// any carrier is dispatched: when it fails the whole request fails with
// errs.LocationNotFoundError and no carrier call is made.
type AddressCleaner interface {
	CleanCity(ctx context.Context, rawAddress string) (string, error)
}

// AddressCleanCache stores canonical cities keyed by the exact raw address
// string. The cleaning call is billed per request by the upstream service,
// so every successful resolution is cached indefinitely. A miss is
// (city="", ok=false, err=nil).
type AddressCleanCache interface {
	Get(ctx context.Context, rawAddress string) (city string, ok bool, err error)
	Put(ctx context.Context, rawAddress, city string) error
}
