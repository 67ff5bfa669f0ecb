package queries

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

// GetParcelQueryHandler returns a parcel visible to the actor: staff, its sender or its receiver.
type GetParcelQueryHandler struct {
	parcels ports.ParcelReader
	access  services.AccessGuard
}

func NewGetParcelQueryHandler(parcels ports.ParcelReader, access services.AccessGuard) GetParcelQueryHandler {
	return GetParcelQueryHandler{parcels: parcels, access: access}
}

func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	p, err := loadParcel(ctx, h.parcels, query)
	if err != nil {
		return ParcelView{}, err
	}
	if err = h.access.Authorize(query.Actor(), services.ResourceParcel, p, services.ActionView); err != nil {
		return ParcelView{}, err
	}

	return NewParcelView(p), nil
}

// parcelKey is satisfied by every query addressing one parcel by id or tracking number.
type parcelKey interface {
	ByTrackingNumber() bool
	TrackingNumber() string
	ParcelID() kernel.UUID
}

func loadParcel(ctx context.Context, parcels ports.ParcelReader, key parcelKey) (*parcel.Parcel, error) {
	if key.ByTrackingNumber() {
		return parcels.GetByTrackingNumber(ctx, key.TrackingNumber())
	}
	return parcels.Get(ctx, key.ParcelID())
}
