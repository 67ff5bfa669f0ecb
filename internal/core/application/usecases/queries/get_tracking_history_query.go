package queries

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/guard"
)

var ErrGetTrackingHistoryQueryIsNotConstructed = errors.New(
	"GetTrackingHistoryQuery must be created via NewGetTrackingHistoryQuery or NewGetTrackingHistoryByNumberQuery constructor",
)

// GetTrackingHistoryQuery reads the ledger of one parcel, newest entry first.
type GetTrackingHistoryQuery struct {
	parcelID       kernel.UUID
	trackingNumber string
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetTrackingHistoryQuery(parcelID kernel.UUID, actor kernel.Actor) (GetTrackingHistoryQuery, error) {
	if err := errors.Join(parcelID.Validate(), actor.Validate()); err != nil {
		return GetTrackingHistoryQuery{}, err
	}
	return GetTrackingHistoryQuery{parcelID: parcelID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func NewGetTrackingHistoryByNumberQuery(trackingNumber string, actor kernel.Actor) (GetTrackingHistoryQuery, error) {
	trackingNumber, err := requireTrackingNumber(trackingNumber)
	if err = errors.Join(err, actor.Validate()); err != nil {
		return GetTrackingHistoryQuery{}, err
	}
	return GetTrackingHistoryQuery{trackingNumber: trackingNumber, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTrackingHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingHistoryQueryIsNotConstructed)
}

func (q GetTrackingHistoryQuery) ParcelID() kernel.UUID  { return q.parcelID }
func (q GetTrackingHistoryQuery) TrackingNumber() string { return q.trackingNumber }
func (q GetTrackingHistoryQuery) Actor() kernel.Actor    { return q.actor }
func (q GetTrackingHistoryQuery) ByTrackingNumber() bool { return q.trackingNumber != "" }

type GetTrackingHistoryQueryHandler struct {
	parcels  ports.ParcelReader
	tracking ports.TrackingReader
	access   services.AccessGuard
}

func NewGetTrackingHistoryQueryHandler(
	parcels ports.ParcelReader,
	tracking ports.TrackingReader,
	access services.AccessGuard,
) GetTrackingHistoryQueryHandler {
	return GetTrackingHistoryQueryHandler{parcels: parcels, tracking: tracking, access: access}
}

func (h GetTrackingHistoryQueryHandler) Handle(ctx context.Context, query GetTrackingHistoryQuery) ([]TrackingEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	p, err := loadParcel(ctx, h.parcels, query)
	if err != nil {
		return nil, err
	}
	if err = h.access.Authorize(query.Actor(), services.ResourceTracking, p, services.ActionView); err != nil {
		return nil, err
	}

	entries, err := h.tracking.History(ctx, p.ID())
	if err != nil {
		return nil, err
	}
	return newTrackingEntryViews(entries), nil
}
