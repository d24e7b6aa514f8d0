package ports

import (
	"context"
	"time"
)

// Credential is one carrier's secret record. Token and ExpiresAt are nil-able:
// carriers with a static appkey keep it in Token with no expiry, OAuth
// carriers refresh both lazily.
type Credential struct {
	ServiceName string
	Login       string
	Secret      string
	Token       string
	ExpiresAt   *time.Time
}

// HasValidToken reports whether the stored token exists and has not expired
// at the given moment. A token without an expiry never expires.
func (c Credential) HasValidToken(now time.Time) bool {
	if c.Token == "" {
		return false
	}
	if c.ExpiresAt == nil {
		return true
	}
	return c.ExpiresAt.After(now)
}

// CredentialStore owns carrier secret records. Writes are atomic per record:
// two concurrent token refreshes may race, but the store always holds one
// complete record, never a half-written one.
type CredentialStore interface {
	// Get returns the credential for a carrier, or errs.ObjectNotFoundError
	// when the carrier was never configured.
	Get(ctx context.Context, serviceName string) (Credential, error)

	// PutToken atomically updates the token and its expiry for a carrier,
	// leaving login and secret untouched.
	PutToken(ctx context.Context, serviceName, token string, expiresAt time.Time) error

	// Save atomically upserts the whole credential record.
	Save(ctx context.Context, credential Credential) error
}
