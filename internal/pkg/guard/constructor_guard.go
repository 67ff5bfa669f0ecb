// Package guard provides ConstructorGuard, a marker embedded in value objects and
// commands so that zero values can be told apart from constructed ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct went through its constructor.
//
// Example:
//
//	type Recipient struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewRecipient(name string) Recipient {
//	    return Recipient{name: name, guard: guard.NewConstructorGuard()}
//	}
//
//	func (r Recipient) Validate() error {
//	    return r.guard.Validate(ErrRecipientIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
