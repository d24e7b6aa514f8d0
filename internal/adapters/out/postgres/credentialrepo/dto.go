// Package credentialrepo persists carrier API credentials. One row per
// carrier holds the account identity and, for OAuth-style carriers, the
// latest exchanged token with its expiry.
package credentialrepo

import (
	"time"

	"github.com/google/uuid"

	"logistic/internal/core/ports"
)

// CredentialDTO represents the database structure for carrier credentials.
// The service name is the natural key; all writes are upserts against it.
type CredentialDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceName string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Login       string    `gorm:"type:varchar(255)"`
	Secret      string    `gorm:"type:varchar(255)"`
	Token       string    `gorm:"type:text"`
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default naming to keep the original schema's
// table name.
func (CredentialDTO) TableName() string {
	return "delivery_api_credentials"
}

func fromCredential(credential ports.Credential) CredentialDTO {
	return CredentialDTO{
		ID:          uuid.New(),
		ServiceName: credential.ServiceName,
		Login:       credential.Login,
		Secret:      credential.Secret,
		Token:       credential.Token,
		ExpiresAt:   credential.ExpiresAt,
	}
}

func toCredential(dto CredentialDTO) ports.Credential {
	return ports.Credential{
		ServiceName: dto.ServiceName,
		Login:       dto.Login,
		Secret:      dto.Secret,
		Token:       dto.Token,
		ExpiresAt:   dto.ExpiresAt,
	}
}
