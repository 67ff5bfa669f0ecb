// Package dberr maps GORM errors onto the errs taxonomy. It relies on the
// connection being opened with gorm.Config{TranslateError: true}.
package dberr

import (
	"errors"

	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// Write translates an insert or update error: a unique violation becomes a
// ConflictError and a foreign key violation an ObjectNotFoundError for parent.
func Write(resource, parent string, parentID any, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewConflictErrorWithCause(resource, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.NewObjectNotFoundErrorWithCause(parent, parentID, err)
	default:
		return err
	}
}

// Read translates a single-row lookup error.
func Read(resource string, key any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(resource, key)
	}
	return err
}
