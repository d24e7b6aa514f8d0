package addressrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAddressCleanRepository implements ports.AddressCleanCache using GORM.
type GormAddressCleanRepository struct {
	db *gorm.DB
}

// NewGormAddressCleanRepository creates a new GORM address clean repository.
func NewGormAddressCleanRepository(db *gorm.DB) *GormAddressCleanRepository {
	return &GormAddressCleanRepository{db: db}
}

// Get looks up the cached city for a raw address. A miss is not an error.
func (r *GormAddressCleanRepository) Get(ctx context.Context, rawAddress string) (string, bool, error) {
	var dto AddressCleanDTO
	err := r.db.WithContext(ctx).First(&dto, "original_address = ?", rawAddress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return dto.CleanedCity, true, nil
}

// Put stores a resolution. Concurrent writers racing on the same address
// keep the first row; the cached city for a given raw address never
// changes between resolutions, so dropping the second write is safe.
func (r *GormAddressCleanRepository) Put(ctx context.Context, rawAddress, city string) error {
	dto := AddressCleanDTO{
		ID:              uuid.New(),
		OriginalAddress: rawAddress,
		CleanedCity:     city,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "original_address"}},
			DoNothing: true,
		}).
		Create(&dto).Error
}
