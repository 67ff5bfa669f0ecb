package queries

import (
	"context"
	"encoding/json"
	"errors"

	"parcels/internal/core/ports"
	"parcels/internal/pkg/guard"
)

var ErrGetPublicTrackingQueryIsNotConstructed = errors.New(
	"GetPublicTrackingQuery must be created via NewGetPublicTrackingQuery constructor",
)

// GetPublicTrackingQuery is the anonymous lookup by tracking number.
type GetPublicTrackingQuery struct {
	trackingNumber string

	guard guard.ConstructorGuard
}

func NewGetPublicTrackingQuery(trackingNumber string) (GetPublicTrackingQuery, error) {
	trackingNumber, err := requireTrackingNumber(trackingNumber)
	if err != nil {
		return GetPublicTrackingQuery{}, err
	}
	return GetPublicTrackingQuery{trackingNumber: trackingNumber, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPublicTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetPublicTrackingQueryIsNotConstructed)
}

func (q GetPublicTrackingQuery) TrackingNumber() string { return q.trackingNumber }

// GetPublicTrackingQueryHandler renders the public view, read through cache when one
// is configured. The cache is an optimization only: its failures fall through to
// the store and never fail the request.
type GetPublicTrackingQueryHandler struct {
	parcels  ports.ParcelReader
	tracking ports.TrackingReader
	cache    ports.TrackingCache
}

// NewGetPublicTrackingQueryHandler builds the handler; cache may be nil.
func NewGetPublicTrackingQueryHandler(
	parcels ports.ParcelReader,
	tracking ports.TrackingReader,
	cache ports.TrackingCache,
) GetPublicTrackingQueryHandler {
	return GetPublicTrackingQueryHandler{parcels: parcels, tracking: tracking, cache: cache}
}

func (h GetPublicTrackingQueryHandler) Handle(ctx context.Context, query GetPublicTrackingQuery) (PublicTrackingView, error) {
	if err := query.Validate(); err != nil {
		return PublicTrackingView{}, err
	}

	if view, ok := h.cached(ctx, query.TrackingNumber()); ok {
		return view, nil
	}

	p, err := h.parcels.GetByTrackingNumber(ctx, query.TrackingNumber())
	if err != nil {
		return PublicTrackingView{}, err
	}
	entries, err := h.tracking.History(ctx, p.ID())
	if err != nil {
		return PublicTrackingView{}, err
	}

	view := PublicTrackingView{
		TrackingNumber:    p.TrackingNumber(),
		Status:            p.Status().String(),
		Priority:          p.Priority().String(),
		PickupCity:        p.Pickup().City(),
		DeliveryCity:      p.Delivery().City(),
		EstimatedDelivery: p.EstimatedDelivery(),
		ActualDelivery:    p.ActualDelivery(),
		History:           newTrackingEntryViews(entries),
	}

	if h.cache != nil {
		if payload, marshalErr := json.Marshal(view); marshalErr == nil {
			_ = h.cache.Set(ctx, view.TrackingNumber, payload)
		}
	}
	return view, nil
}

func (h GetPublicTrackingQueryHandler) cached(ctx context.Context, trackingNumber string) (PublicTrackingView, bool) {
	if h.cache == nil {
		return PublicTrackingView{}, false
	}
	payload, found, err := h.cache.Get(ctx, trackingNumber)
	if err != nil || !found {
		return PublicTrackingView{}, false
	}
	var view PublicTrackingView
	if err = json.Unmarshal(payload, &view); err != nil {
		return PublicTrackingView{}, false
	}
	return view, true
}
