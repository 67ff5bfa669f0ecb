package http

import (
	"net/http"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetPublicTracking handles GET /api/tracking/public/:trackingNumber without a token.
func (s *Server) GetPublicTracking(ctx echo.Context) error {
	query, err := queries.NewGetPublicTrackingQuery(ctx.Param("trackingNumber"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.h.GetPublicTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// GetTrackingHistory handles GET /api/tracking/parcel/:parcelId.
func (s *Server) GetTrackingHistory(ctx echo.Context) error {
	id, err := pathUUID(ctx, "parcelId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetTrackingHistoryQuery(id, actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.history(ctx, query)
}

// GetTrackingHistoryByNumber handles GET /api/tracking/number/:trackingNumber.
func (s *Server) GetTrackingHistoryByNumber(ctx echo.Context) error {
	query, err := queries.NewGetTrackingHistoryByNumberQuery(ctx.Param("trackingNumber"), actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.history(ctx, query)
}

func (s *Server) history(ctx echo.Context, query queries.GetTrackingHistoryQuery) error {
	views, err := s.h.GetTrackingHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, views)
}

// AddTrackingUpdate handles POST /api/tracking/parcel/:parcelId/update.
func (s *Server) AddTrackingUpdate(ctx echo.Context) error {
	id, err := pathUUID(ctx, "parcelId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req TrackingUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	var at time.Time
	if req.Timestamp != nil {
		at = *req.Timestamp
	}

	cmd, err := commands.NewAddTrackingUpdateCommand(id, req.Status, req.Location, req.Description, at, actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	p, err := s.h.AddTrackingUpdate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewParcelView(p))
}

// GetMyTracking handles GET /api/tracking/user/parcels.
func (s *Server) GetMyTracking(ctx echo.Context) error {
	query, err := queries.NewGetMyTrackingQuery(actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	byNumber, err := s.h.GetMyTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, byNumber)
}
