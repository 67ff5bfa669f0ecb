package http

import (
	"net/http"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GenerateInvoice handles POST /api/invoices/generate/:parcelId. Generating twice
// returns the existing invoice.
func (s *Server) GenerateInvoice(ctx echo.Context) error {
	id, err := pathUUID(ctx, "parcelId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req GenerateInvoiceRequest
	if ctx.Request().ContentLength > 0 {
		if err := ctx.Bind(&req); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}

	cmd, err := commands.NewGenerateInvoiceCommand(id, actorFrom(ctx), req.Notes)
	if err != nil {
		return s.writeError(ctx, err)
	}

	inv, err := s.h.GenerateInvoice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewInvoiceView(inv, ""))
}

// GetInvoice handles GET /api/invoices/id/:id.
func (s *Server) GetInvoice(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetInvoiceQuery(id, actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.getInvoice(ctx, query)
}

// GetInvoiceByNumber handles GET /api/invoices/:invoiceNumber.
func (s *Server) GetInvoiceByNumber(ctx echo.Context) error {
	query, err := queries.NewGetInvoiceByNumberQuery(ctx.Param("invoiceNumber"), actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.getInvoice(ctx, query)
}

// GetInvoiceByParcel handles GET /api/invoices/parcel/:parcelId.
func (s *Server) GetInvoiceByParcel(ctx echo.Context) error {
	id, err := pathUUID(ctx, "parcelId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetInvoiceByParcelQuery(id, actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.getInvoice(ctx, query)
}

func (s *Server) getInvoice(ctx echo.Context, query queries.GetInvoiceQuery) error {
	view, err := s.h.GetInvoice.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

func (s *Server) listInvoices(scope queries.InvoiceScope) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		query, err := queries.NewListInvoicesQuery(actorFrom(ctx), scope)
		if err != nil {
			return s.writeError(ctx, err)
		}
		return s.respondInvoices(ctx, query)
	}
}

// ListInvoicesByStatus handles GET /api/invoices/status/:status.
func (s *Server) ListInvoicesByStatus(ctx echo.Context) error {
	query, err := queries.NewListInvoicesByStatusQuery(actorFrom(ctx), ctx.Param("status"))
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondInvoices(ctx, query)
}

func (s *Server) respondInvoices(ctx echo.Context, query queries.ListInvoicesQuery) error {
	views, err := s.h.ListInvoices.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, views)
}

// GetRevenue handles GET /api/invoices/revenue?from=&to=.
func (s *Server) GetRevenue(ctx echo.Context) error {
	from, err := queryTime(ctx, "from", false)
	if err != nil {
		return s.writeError(ctx, err)
	}
	to, err := queryTime(ctx, "to", true)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var start, end time.Time
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}

	query, err := queries.NewGetRevenueQuery(actorFrom(ctx), start, end)
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.h.GetRevenue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// UpdatePaymentStatus handles PUT /api/invoices/:invoiceId/payment?paymentStatus=&paymentMethod=.
func (s *Server) UpdatePaymentStatus(ctx echo.Context) error {
	id, err := pathUUID(ctx, "invoiceId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(id,
		ctx.QueryParam("paymentStatus"), ctx.QueryParam("paymentMethod"), actorFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	inv, err := s.h.UpdatePaymentStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewInvoiceView(inv, ""))
}
