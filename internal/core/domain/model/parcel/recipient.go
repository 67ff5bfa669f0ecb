package parcel

import (
	"errors"
	"strings"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrRecipientIsNotConstructed = errs.NewValueIsRequiredError("recipient must be created via NewRecipient constructor")

// Recipient holds the receiver contact details captured at booking time. They are
// kept on the parcel and do not follow later changes to the receiver's account.
type Recipient struct {
	name  string
	phone string
	email string
	guard guard.ConstructorGuard
}

// NewRecipient validates the contact details. Name and phone are required, email is optional.
func NewRecipient(name, phone, email string) (Recipient, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	var nameErr, phoneErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("receiverName")
	}
	if phone == "" {
		phoneErr = errs.NewValueIsRequiredError("receiverPhone")
	}
	if err := errors.Join(nameErr, phoneErr); err != nil {
		return Recipient{}, err
	}

	return Recipient{
		name:  name,
		phone: phone,
		email: strings.TrimSpace(email),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (r Recipient) Validate() error {
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

func (r Recipient) Name() string  { return r.name }
func (r Recipient) Phone() string { return r.phone }
func (r Recipient) Email() string { return r.email }

// HasEmail reports whether an email address was supplied.
func (r Recipient) HasEmail() bool {
	return r.email != ""
}

// SplitName splits the name on its first space into first and last name.
// A single-word name yields an empty last name.
func (r Recipient) SplitName() (string, string) {
	first, last, _ := strings.Cut(r.name, " ")
	return first, strings.TrimSpace(last)
}
