// Package kernel provides the shared value objects of the parcel domain:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Location: immutable postal address owned by a single parcel
//   - Actor and Role: identity facts of the caller, supplied by an external identity provider
//
// All values are immutable and must be created through their constructors; zero values fail Validate.
package kernel
