package queries

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/guard"
)

var ErrCountParcelsByStatusQueryIsNotConstructed = errors.New(
	"CountParcelsByStatusQuery must be created via NewCountParcelsByStatusQuery constructor",
)

// CountParcelsByStatusQuery counts parcels currently in one status. Staff only.
type CountParcelsByStatusQuery struct {
	actor  kernel.Actor
	status parcel.Status

	guard guard.ConstructorGuard
}

func NewCountParcelsByStatusQuery(actor kernel.Actor, status string) (CountParcelsByStatusQuery, error) {
	st, statusErr := parcel.ParseStatus(status)
	if err := errors.Join(actor.Validate(), statusErr); err != nil {
		return CountParcelsByStatusQuery{}, err
	}
	return CountParcelsByStatusQuery{actor: actor, status: st, guard: guard.NewConstructorGuard()}, nil
}

func (q CountParcelsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountParcelsByStatusQueryIsNotConstructed)
}

func (q CountParcelsByStatusQuery) Actor() kernel.Actor   { return q.actor }
func (q CountParcelsByStatusQuery) Status() parcel.Status { return q.status }

type CountParcelsByStatusQueryHandler struct {
	parcels ports.ParcelReader
	access  services.AccessGuard
}

func NewCountParcelsByStatusQueryHandler(parcels ports.ParcelReader, access services.AccessGuard) CountParcelsByStatusQueryHandler {
	return CountParcelsByStatusQueryHandler{parcels: parcels, access: access}
}

func (h CountParcelsByStatusQueryHandler) Handle(ctx context.Context, query CountParcelsByStatusQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}
	if err := h.access.RequireStaff(query.Actor(), services.ResourceParcel, services.ActionView); err != nil {
		return 0, err
	}
	return h.parcels.CountByStatus(ctx, query.Status())
}
