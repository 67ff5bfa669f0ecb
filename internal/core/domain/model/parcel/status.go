package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel. Values are persisted as their literal
// upper-case names.
//
// Transitions enforced by StrictTransitions:
//
//	PENDING ──> CONFIRMED ──> PICKED_UP ──> IN_TRANSIT ──> OUT_FOR_DELIVERY ──> DELIVERED
//	   │            │             │              │                 │
//	   └────────────┴─> CANCELLED └──────────────┴─────────────────┴──> RETURNED
//
// DELIVERED, RETURNED and CANCELLED are terminal.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPickedUp       Status = "PICKED_UP"
	StatusInTransit      Status = "IN_TRANSIT"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusReturned       Status = "RETURNED"
	StatusCancelled      Status = "CANCELLED"
)

var validNext = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPickedUp, StatusCancelled},
	StatusPickedUp:       {StatusInTransit, StatusReturned},
	StatusInTransit:      {StatusOutForDelivery, StatusReturned},
	StatusOutForDelivery: {StatusDelivered, StatusReturned},
	StatusDelivered:      nil,
	StatusReturned:       nil,
	StatusCancelled:      nil,
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusPending, StatusConfirmed, StatusPickedUp, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusReturned, StatusCancelled,
	}
}

// ParseStatus converts a case-sensitive status name into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks that s is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := validNext[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible under the strict table.
func (s Status) IsTerminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the strict table allows s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, n := range validNext[s] {
		if n == to {
			return true
		}
	}
	return false
}

// TransitionRule decides whether a parcel may move from one status to another.
type TransitionRule func(from, to Status) error

// StrictTransitions permits only the moves of the lifecycle table.
func StrictTransitions(from, to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !from.CanTransitionTo(to) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("transition from %s to %s is not allowed", from, to),
		)
	}
	return nil
}

// AnyTransition permits every move to a known status, including DELIVERED -> PENDING.
func AnyTransition(_, to Status) error {
	return to.Validate()
}
