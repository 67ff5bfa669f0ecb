package http

import (
	"net/http"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// BookParcel handles POST /api/parcels/book. The caller becomes the sender.
func (s *Server) BookParcel(ctx echo.Context) error {
	var req BookParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewBookParcelCommand(actorFrom(ctx).ID(), req.toBooking())
	if err != nil {
		return s.writeError(ctx, err)
	}

	p, err := s.h.BookParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.NewParcelView(p))
}

// GetParcel handles GET /api/parcels/:id.
func (s *Server) GetParcel(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetParcelQuery(id, actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.getParcel(ctx, query)
}

// GetParcelByTrackingNumber handles GET /api/parcels/tracking/:trackingNumber.
func (s *Server) GetParcelByTrackingNumber(ctx echo.Context) error {
	query, err := queries.NewGetParcelByTrackingNumberQuery(ctx.Param("trackingNumber"), actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.getParcel(ctx, query)
}

func (s *Server) getParcel(ctx echo.Context, query queries.GetParcelQuery) error {
	view, err := s.h.GetParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

func (s *Server) listParcels(scope queries.ParcelScope) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		query, err := queries.NewListParcelsQuery(actorFrom(ctx), scope)
		if err != nil {
			return s.writeError(ctx, err)
		}
		return s.respondParcels(ctx, query)
	}
}

// SearchParcels handles GET /api/parcels/search?status=&from=&to= and
// GET /api/parcels/status/:status.
func (s *Server) SearchParcels(ctx echo.Context) error {
	status := ctx.Param("status")
	if status == "" {
		status = ctx.QueryParam("status")
	}
	from, err := queryTime(ctx, "from", false)
	if err != nil {
		return s.writeError(ctx, err)
	}
	to, err := queryTime(ctx, "to", true)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewSearchParcelsQuery(actorFrom(ctx), status, from, to)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondParcels(ctx, query)
}

func (s *Server) respondParcels(ctx echo.Context, query queries.ListParcelsQuery) error {
	views, err := s.h.ListParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, views)
}

// CountParcelsByStatus handles GET /api/parcels/status/:status/count.
func (s *Server) CountParcelsByStatus(ctx echo.Context) error {
	query, err := queries.NewCountParcelsByStatusQuery(actorFrom(ctx), ctx.Param("status"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	count, err := s.h.CountParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CountView{Status: ctx.Param("status"), Count: count})
}

// UpdateParcelStatus handles PUT /api/parcels/:id/status?status=.
func (s *Server) UpdateParcelStatus(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(id, ctx.QueryParam("status"), actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	p, err := s.h.UpdateParcelStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewParcelView(p))
}
