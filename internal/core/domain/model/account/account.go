// Package account holds the minimal user record this service reads and, for parcel
// receivers who have not registered, creates.
package account

import (
	"errors"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// PlaceholderEmail is stored for receivers booked without an email address.
// Accounts carrying it are never matched by email.
const PlaceholderEmail = "noemail@example.com"

var ErrAccountIsNotConstructed = errors.New("Account must be created via a constructor")

// Account is a user identity with a role. Unclaimed accounts were materialised at
// booking time for a receiver and have no credential until claimed elsewhere.
type Account struct {
	id        kernel.UUID
	email     string
	firstName string
	lastName  string
	phone     string
	role      kernel.Role
	claimed   bool
	createdAt time.Time

	isConstructed bool
}

// NewUnclaimedCustomer creates the CUSTOMER account of a receiver who is not yet
// registered. A blank email is replaced with PlaceholderEmail.
func NewUnclaimedCustomer(id kernel.UUID, firstName, lastName, phone, email string, at time.Time) (*Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, errs.NewValueIsRequiredError("firstName")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = PlaceholderEmail
	}

	return &Account{
		id:            id,
		email:         email,
		firstName:     firstName,
		lastName:      strings.TrimSpace(lastName),
		phone:         strings.TrimSpace(phone),
		role:          kernel.RoleCustomer,
		createdAt:     at,
		isConstructed: true,
	}, nil
}

// RestoreAccount rebuilds an account loaded from storage.
func RestoreAccount(id kernel.UUID, email, firstName, lastName, phone string, role kernel.Role, claimed bool, createdAt time.Time) (*Account, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	return &Account{
		id:            id,
		email:         email,
		firstName:     firstName,
		lastName:      lastName,
		phone:         phone,
		role:          role,
		claimed:       claimed,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

func (a *Account) ID() kernel.UUID      { return a.id }
func (a *Account) Email() string        { return a.email }
func (a *Account) FirstName() string    { return a.firstName }
func (a *Account) LastName() string     { return a.lastName }
func (a *Account) Phone() string        { return a.phone }
func (a *Account) Role() kernel.Role    { return a.role }
func (a *Account) Claimed() bool        { return a.claimed }
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// HasPlaceholderEmail reports whether the account was created without a real email.
func (a *Account) HasPlaceholderEmail() bool {
	return a.email == PlaceholderEmail
}

// NormalizeEmail returns the lookup form of an email address, or "" when the
// address is blank or the placeholder.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == PlaceholderEmail {
		return ""
	}
	return email
}
