// Package errs provides the error taxonomy shared by the parcel engine.
//
// The package includes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed or missing input,
//     always carrying the offending field name
//   - ObjectNotFoundError: a referenced entity does not resolve
//   - ForbiddenError: the access policy denied the actor
//   - ConflictError: a concurrent write violated a uniqueness or atomicity rule
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
