package ports

import "context"

// LocationCache stores resolved carrier location codes keyed by
// (carrier, raw query). Entries are durable facts about geography: there is
// no TTL, only explicit invalidation. The cache is shared across concurrent
// requests; a miss is (code="", ok=false, err=nil), not an error.
type LocationCache interface {
	Get(ctx context.Context, carrier, query string) (code string, ok bool, err error)
	Put(ctx context.Context, carrier, query, code string) error
	Invalidate(ctx context.Context, carrier, query string) error
}
