package queries

import (
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery or NewSearchParcelsQuery constructor",
)

// ParcelScope selects which parcels a ListParcelsQuery returns.
type ParcelScope string

const (
	// ScopeMine lists parcels where the actor is sender or receiver.
	ScopeMine     ParcelScope = "mine"
	ScopeSent     ParcelScope = "sent"
	ScopeReceived ParcelScope = "received"
	// ScopeOverdue lists parcels past their estimated delivery. Staff only.
	ScopeOverdue ParcelScope = "overdue"
	// ScopeAll lists every parcel. Staff only.
	ScopeAll ParcelScope = "all"
	// ScopeSearch filters by status and creation range. Staff only.
	ScopeSearch ParcelScope = "search"
)

// IsStaffOnly reports whether the scope spans parcels of other users.
func (s ParcelScope) IsStaffOnly() bool {
	return s == ScopeOverdue || s == ScopeAll || s == ScopeSearch
}

// ListParcelsQuery lists parcels in one scope.
type ListParcelsQuery struct {
	actor  kernel.Actor
	scope  ParcelScope
	status *parcel.Status
	from   *time.Time
	to     *time.Time

	guard guard.ConstructorGuard
}

func NewListParcelsQuery(actor kernel.Actor, scope ParcelScope) (ListParcelsQuery, error) {
	var scopeErr error
	switch scope {
	case ScopeMine, ScopeSent, ScopeReceived, ScopeOverdue, ScopeAll:
	default:
		scopeErr = errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%q is not a parcel list scope", string(scope)))
	}
	if err := errors.Join(actor.Validate(), scopeErr); err != nil {
		return ListParcelsQuery{}, err
	}
	return ListParcelsQuery{actor: actor, scope: scope, guard: guard.NewConstructorGuard()}, nil
}

// NewSearchParcelsQuery filters by an optional status and an optional creation range.
// A range needs both bounds, inclusive, with from not after to.
func NewSearchParcelsQuery(actor kernel.Actor, status string, from, to *time.Time) (ListParcelsQuery, error) {
	q := ListParcelsQuery{actor: actor, scope: ScopeSearch, from: from, to: to}

	var statusErr, rangeErr error
	if status != "" {
		var st parcel.Status
		if st, statusErr = parcel.ParseStatus(status); statusErr == nil {
			q.status = &st
		}
	}
	switch {
	case (from == nil) != (to == nil):
		rangeErr = errs.NewValueIsRequiredErrorWithCause("dateRange", errors.New("both startDate and endDate are required"))
	case from != nil && from.After(*to):
		rangeErr = errs.NewValueIsInvalidErrorWithCause("dateRange", errors.New("startDate is after endDate"))
	}

	if err := errors.Join(actor.Validate(), statusErr, rangeErr); err != nil {
		return ListParcelsQuery{}, err
	}
	q.guard = guard.NewConstructorGuard()
	return q, nil
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

func (q ListParcelsQuery) Actor() kernel.Actor    { return q.actor }
func (q ListParcelsQuery) Scope() ParcelScope     { return q.scope }
func (q ListParcelsQuery) Status() *parcel.Status { return q.status }

// Range returns the creation range and whether one was given.
func (q ListParcelsQuery) Range() (time.Time, time.Time, bool) {
	if q.from == nil {
		return time.Time{}, time.Time{}, false
	}
	return *q.from, *q.to, true
}
