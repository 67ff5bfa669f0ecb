// Package accountrepo stores the user accounts that booking resolves receivers against.
package accountrepo

import (
	"time"

	"parcels/internal/core/domain/model/account"
	"parcels/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO is the accounts table. Email is unique except for the placeholder
// shared by receivers booked without an address.
type AccountDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"size:255;not null;index:idx_accounts_email,unique,where:email <> 'noemail@example.com'"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100"`
	Phone     string    `gorm:"size:32"`
	Role      string    `gorm:"size:16;not null"`
	Claimed   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:        a.ID().Bytes(),
		Email:     a.Email(),
		FirstName: a.FirstName(),
		LastName:  a.LastName(),
		Phone:     a.Phone(),
		Role:      a.Role().String(),
		Claimed:   a.Claimed(),
		CreatedAt: a.CreatedAt(),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return account.RestoreAccount(id, dto.Email, dto.FirstName, dto.LastName, dto.Phone,
		kernel.Role(dto.Role), dto.Claimed, dto.CreatedAt)
}
