// Package invoice models the billing record derived from a parcel's shipping cost
// and its independent payment lifecycle. Payment is recorded, never processed.
package invoice
