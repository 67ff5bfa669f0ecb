package queries

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/guard"
)

var ErrGetMyTrackingQueryIsNotConstructed = errors.New(
	"GetMyTrackingQuery must be created via NewGetMyTrackingQuery constructor",
)

// GetMyTrackingQuery returns the history of every parcel the actor sent or receives.
type GetMyTrackingQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetMyTrackingQuery(actor kernel.Actor) (GetMyTrackingQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetMyTrackingQuery{}, err
	}
	return GetMyTrackingQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMyTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetMyTrackingQueryIsNotConstructed)
}

func (q GetMyTrackingQuery) Actor() kernel.Actor { return q.actor }

type GetMyTrackingQueryHandler struct {
	parcels  ports.ParcelReader
	tracking ports.TrackingReader
}

func NewGetMyTrackingQueryHandler(parcels ports.ParcelReader, tracking ports.TrackingReader) GetMyTrackingQueryHandler {
	return GetMyTrackingQueryHandler{parcels: parcels, tracking: tracking}
}

// Handle returns histories keyed by tracking number. Every party parcel has a key,
// each history newest first.
func (h GetMyTrackingQueryHandler) Handle(ctx context.Context, query GetMyTrackingQuery) (map[string][]TrackingEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels, err := h.parcels.ListByParty(ctx, query.Actor().ID())
	if err != nil {
		return nil, err
	}

	result := make(map[string][]TrackingEntryView, len(parcels))
	if len(parcels) == 0 {
		return result, nil
	}

	numbers := make(map[kernel.UUID]string, len(parcels))
	ids := make([]kernel.UUID, 0, len(parcels))
	for _, p := range parcels {
		numbers[p.ID()] = p.TrackingNumber()
		ids = append(ids, p.ID())
		result[p.TrackingNumber()] = []TrackingEntryView{}
	}

	entries, err := h.tracking.HistoryOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		number, ok := numbers[e.ParcelID()]
		if !ok {
			continue
		}
		result[number] = append(result[number], NewTrackingEntryView(e))
	}
	return result, nil
}
