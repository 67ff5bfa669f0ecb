package queries

import (
	"context"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

// ListParcelsQueryHandler serves the parcel lists. Customer scopes are keyed on the
// actor's own id, so no per-record check is needed for them.
type ListParcelsQueryHandler struct {
	parcels ports.ParcelReader
	access  services.AccessGuard
	clock   Clock
}

func NewListParcelsQueryHandler(parcels ports.ParcelReader, access services.AccessGuard) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{parcels: parcels, access: access}
}

func (h ListParcelsQueryHandler) WithClock(clock Clock) ListParcelsQueryHandler {
	h.clock = clock
	return h
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.Scope().IsStaffOnly() {
		if err := h.access.RequireStaff(query.Actor(), services.ResourceParcel, services.ActionView); err != nil {
			return nil, err
		}
	}

	parcels, err := h.list(ctx, query)
	if err != nil {
		return nil, err
	}
	return newParcelViews(parcels), nil
}

func (h ListParcelsQueryHandler) list(ctx context.Context, query ListParcelsQuery) ([]*parcel.Parcel, error) {
	actorID := query.Actor().ID()

	switch query.Scope() {
	case ScopeSent:
		return h.parcels.ListBySender(ctx, actorID)
	case ScopeReceived:
		return h.parcels.ListByReceiver(ctx, actorID)
	case ScopeOverdue:
		return h.parcels.ListOverdue(ctx, h.clock.now())
	case ScopeAll:
		return h.parcels.ListAll(ctx)
	case ScopeSearch:
		from, to, ranged := query.Range()
		status := query.Status()
		switch {
		case status != nil && ranged:
			return h.parcels.ListByStatusCreatedBetween(ctx, *status, from, to)
		case status != nil:
			return h.parcels.ListByStatus(ctx, *status)
		case ranged:
			return h.parcels.ListCreatedBetween(ctx, from, to)
		default:
			return h.parcels.ListAll(ctx)
		}
	default:
		return h.parcels.ListByParty(ctx, actorID)
	}
}
