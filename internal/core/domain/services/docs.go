// Package services contains stateless domain services: pricing and invoice amounts
// (BillingCalculator), the authorization policy (AccessGuard) and identifier
// issuance (NumberGenerator).
package services
