package credentialrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"logistic/internal/core/ports"
	"logistic/internal/pkg/errs"
)

// GormCredentialRepository implements ports.CredentialStore using GORM.
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GORM credential repository.
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// Get retrieves a carrier's credential record by service name.
func (r *GormCredentialRepository) Get(ctx context.Context, serviceName string) (ports.Credential, error) {
	var dto CredentialDTO
	err := r.db.WithContext(ctx).First(&dto, "service_name = ?", serviceName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Credential{}, errs.NewObjectNotFoundError("credential", serviceName)
		}
		return ports.Credential{}, err
	}

	return toCredential(dto), nil
}

// PutToken stores a freshly exchanged token and its expiry on an existing
// credential row.
func (r *GormCredentialRepository) PutToken(ctx context.Context, serviceName, token string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&CredentialDTO{}).
		Where("service_name = ?", serviceName).
		Updates(map[string]any{
			"token":      token,
			"expires_at": expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("credential", serviceName)
	}
	return nil
}

// Save upserts the credential record in one statement. An existing row for
// the same service name gets its identity and token replaced.
func (r *GormCredentialRepository) Save(ctx context.Context, credential ports.Credential) error {
	dto := fromCredential(credential)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "service_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"login", "secret", "token", "expires_at", "updated_at",
			}),
		}).
		Create(&dto).Error
}
