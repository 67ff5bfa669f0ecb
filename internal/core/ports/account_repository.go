package ports

import (
	"context"

	"parcels/internal/core/domain/model/account"
)

// AccountRepository resolves and materialises receiver accounts during booking.
type AccountRepository interface {
	// FindByEmail returns the account with that email or an errs.ObjectNotFoundError.
	FindByEmail(ctx context.Context, email string) (*account.Account, error)
	Add(ctx context.Context, a *account.Account) error
}
