package kernel

import (
	"errors"
	"fmt"
	"strings"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation constructor")

// Location is an immutable postal address. Every field is required.
//
// A parcel owns its pickup and delivery locations exclusively; two parcels never
// share a Location, even when the addresses happen to be equal.
//
// Example:
//
//	loc, err := kernel.NewLocation("1 Main St", "Springfield", "IL", "USA", "62701")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc.FullAddress()) // 1 Main St, Springfield, IL 62701, USA
type Location struct { //nolint:recvcheck //using for validation
	address string
	city    string
	state   string
	country string
	zipCode string
	guard   guard.ConstructorGuard
}

// NewLocation validates and builds a Location. Surrounding whitespace is trimmed
// and every blank field is reported, joined into a single error.
func NewLocation(address, city, state, country, zipCode string) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setRequired(&loc.address, "address", address),
		setRequired(&loc.city, "city", city),
		setRequired(&loc.state, "state", state),
		setRequired(&loc.country, "country", country),
		setRequired(&loc.zipCode, "zipCode", zipCode),
	); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Address() string { return l.address }
func (l Location) City() string    { return l.city }
func (l Location) State() string   { return l.state }
func (l Location) Country() string { return l.country }
func (l Location) ZipCode() string { return l.zipCode }

// FullAddress renders the location as a single display line:
// "address, city, state zip, country".
func (l Location) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", l.address, l.city, l.state, l.zipCode, l.country)
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return "Location(" + l.FullAddress() + ")"
}

// IsEqual compares two locations field by field.
// Both locations must be properly constructed for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

func setRequired(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}
