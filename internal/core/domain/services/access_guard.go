package services

import (
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

// Action is what an actor wants to do with a parcel-owned resource.
type Action string

const (
	// ActionView reads a parcel or its tracking history.
	ActionView Action = "view"
	// ActionModify changes status, appends tracking or updates payment.
	ActionModify Action = "modify"
	// ActionBilling generates or reads the parcel's invoice.
	ActionBilling Action = "bill"
)

// Resource names the kind of record being accessed. Every resource resolves to
// exactly one owning parcel, so the same policy applies to all of them.
type Resource string

const (
	ResourceParcel   Resource = "parcel"
	ResourceTracking Resource = "tracking"
	ResourceInvoice  Resource = "invoice"
)

// AccessGuard is the single authorization policy for parcels, their tracking and
// their invoice:
//   - ADMIN and STAFF may do anything
//   - the sender or receiver may view
//   - only the sender may generate or view the invoice
//   - nobody else may modify
type AccessGuard struct{}

func NewAccessGuard() AccessGuard {
	return AccessGuard{}
}

// CanAccess evaluates the policy for the resolved owning parcel.
func (AccessGuard) CanAccess(actor kernel.Actor, owner *parcel.Parcel, action Action) bool {
	if actor.Validate() != nil || owner.Validate() != nil {
		return false
	}
	if actor.IsStaff() {
		return true
	}

	switch action {
	case ActionView:
		return owner.IsParty(actor.ID())
	case ActionBilling:
		return actor.Is(owner.SenderID())
	default:
		return false
	}
}

// Authorize is CanAccess returning a ForbiddenError on denial.
func (g AccessGuard) Authorize(actor kernel.Actor, resource Resource, owner *parcel.Parcel, action Action) error {
	if !g.CanAccess(actor, owner, action) {
		return errs.NewForbiddenError(string(resource), string(action))
	}
	return nil
}

// RequireStaff rejects non-staff actors for operations not tied to a single parcel,
// such as listing every parcel.
func (AccessGuard) RequireStaff(actor kernel.Actor, resource Resource, action Action) error {
	if actor.Validate() != nil || !actor.IsStaff() {
		return errs.NewForbiddenError(string(resource), string(action))
	}
	return nil
}
