package accountrepo

import (
	"context"
	"strings"

	"parcels/internal/adapters/out/postgres/dberr"
	"parcels/internal/core/domain/model/account"

	"gorm.io/gorm"
)

// GormAccountRepository implements ports.AccountRepository.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByEmail matches case-insensitively. The placeholder address never matches.
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || email == account.PlaceholderEmail {
		return nil, dberr.Read("account", email, gorm.ErrRecordNotFound)
	}

	var dto AccountDTO
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&dto).Error
	if err != nil {
		return nil, dberr.Read("account", email, err)
	}
	return toDomain(dto)
}

func (r *GormAccountRepository) Add(ctx context.Context, a *account.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	return dberr.Write("account", "", nil, r.db.WithContext(ctx).Create(&dto).Error)
}
