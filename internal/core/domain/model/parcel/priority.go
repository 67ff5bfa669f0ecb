package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Priority is the service tier of a parcel.
type Priority string

const (
	PriorityStandard  Priority = "STANDARD"
	PriorityExpress   Priority = "EXPRESS"
	PriorityOvernight Priority = "OVERNIGHT"
)

// ParsePriority converts a priority name; the empty string yields PriorityStandard.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityStandard, nil
	}
	p := Priority(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p Priority) Validate() error {
	switch p {
	case PriorityStandard, PriorityExpress, PriorityOvernight:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", string(p)))
	}
}

func (p Priority) String() string {
	return string(p)
}
