package queries

import (
	"errors"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery or NewGetParcelByTrackingNumberQuery constructor",
)

// GetParcelQuery looks up one parcel by id or by tracking number on behalf of an actor.
//
// Example:
//
//	query, err := NewGetParcelByTrackingNumberQuery("TRK1741597200000ABCDEFGH", actor)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetParcelQuery struct {
	parcelID       kernel.UUID
	trackingNumber string
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(parcelID kernel.UUID, actor kernel.Actor) (GetParcelQuery, error) {
	if err := errors.Join(parcelID.Validate(), actor.Validate()); err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{parcelID: parcelID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func NewGetParcelByTrackingNumberQuery(trackingNumber string, actor kernel.Actor) (GetParcelQuery, error) {
	trackingNumber, err := requireTrackingNumber(trackingNumber)
	if err = errors.Join(err, actor.Validate()); err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{trackingNumber: trackingNumber, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) ParcelID() kernel.UUID  { return q.parcelID }
func (q GetParcelQuery) TrackingNumber() string { return q.trackingNumber }
func (q GetParcelQuery) Actor() kernel.Actor    { return q.actor }

// ByTrackingNumber reports which key the query carries.
func (q GetParcelQuery) ByTrackingNumber() bool { return q.trackingNumber != "" }

func requireTrackingNumber(trackingNumber string) (string, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return "", errs.NewValueIsRequiredError("trackingNumber")
	}
	return trackingNumber, nil
}
