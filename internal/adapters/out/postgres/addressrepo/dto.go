// Package addressrepo persists resolved address cleans. Every successful
// DaData resolution is written here so each distinct raw address is billed
// at most once.
package addressrepo

import (
	"time"

	"github.com/google/uuid"
)

// AddressCleanDTO represents one cached address resolution. The raw address
// string is the natural key.
type AddressCleanDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OriginalAddress string    `gorm:"type:text;not null;uniqueIndex"`
	CleanedCity     string    `gorm:"type:varchar(255);not null"`
	CreatedAt       time.Time
}

// TableName overrides GORM's default naming to keep the original schema's
// table name.
func (AddressCleanDTO) TableName() string {
	return "dadata_cache"
}
