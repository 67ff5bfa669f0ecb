package http

import (
	"context"
	"log/slog"
	"net/http"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
)

// handler is the shape shared by every command and query handler.
type handler[Q, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	BookParcel          handler[commands.BookParcelCommand, *parcel.Parcel]
	UpdateParcelStatus  handler[commands.UpdateParcelStatusCommand, *parcel.Parcel]
	AddTrackingUpdate   handler[commands.AddTrackingUpdateCommand, *parcel.Parcel]
	GenerateInvoice     handler[commands.GenerateInvoiceCommand, *invoice.Invoice]
	UpdatePaymentStatus handler[commands.UpdatePaymentStatusCommand, *invoice.Invoice]

	GetParcel          handler[queries.GetParcelQuery, queries.ParcelView]
	ListParcels        handler[queries.ListParcelsQuery, []queries.ParcelView]
	CountParcels       handler[queries.CountParcelsByStatusQuery, int64]
	GetTrackingHistory handler[queries.GetTrackingHistoryQuery, []queries.TrackingEntryView]
	GetPublicTracking  handler[queries.GetPublicTrackingQuery, queries.PublicTrackingView]
	GetMyTracking      handler[queries.GetMyTrackingQuery, map[string][]queries.TrackingEntryView]
	GetInvoice         handler[queries.GetInvoiceQuery, queries.InvoiceView]
	ListInvoices       handler[queries.ListInvoicesQuery, []queries.InvoiceView]
	GetRevenue         handler[queries.GetRevenueQuery, queries.RevenueView]
}

// Server translates HTTP requests 1:1 into commands and queries.
type Server struct {
	h      Handlers
	auth   *Authenticator
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, auth *Authenticator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, auth: auth, logger: logger}
}

// Register mounts all routes on e. Public tracking and health need no token.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api")
	api.GET("/tracking/public/:trackingNumber", s.GetPublicTracking)

	secured := api.Group("", s.auth.Middleware)

	parcels := secured.Group("/parcels")
	parcels.POST("/book", s.BookParcel)
	parcels.GET("/my-parcels", s.listParcels(queries.ScopeMine))
	parcels.GET("/sent", s.listParcels(queries.ScopeSent))
	parcels.GET("/received", s.listParcels(queries.ScopeReceived))
	parcels.GET("/overdue", s.listParcels(queries.ScopeOverdue))
	parcels.GET("/all", s.listParcels(queries.ScopeAll))
	parcels.GET("/search", s.SearchParcels)
	parcels.GET("/status/:status", s.SearchParcels)
	parcels.GET("/status/:status/count", s.CountParcelsByStatus)
	parcels.GET("/tracking/:trackingNumber", s.GetParcelByTrackingNumber)
	parcels.GET("/:id", s.GetParcel)
	parcels.PUT("/:id/status", s.UpdateParcelStatus)

	tracking := secured.Group("/tracking")
	tracking.GET("/parcel/:parcelId", s.GetTrackingHistory)
	tracking.GET("/number/:trackingNumber", s.GetTrackingHistoryByNumber)
	tracking.POST("/parcel/:parcelId/update", s.AddTrackingUpdate)
	tracking.GET("/user/parcels", s.GetMyTracking)

	invoices := secured.Group("/invoices")
	invoices.POST("/generate/:parcelId", s.GenerateInvoice)
	invoices.GET("/my-invoices", s.listInvoices(queries.InvoiceScopeMine))
	invoices.GET("/all", s.listInvoices(queries.InvoiceScopeAll))
	invoices.GET("/overdue", s.listInvoices(queries.InvoiceScopeOverdue))
	invoices.GET("/status/:status", s.ListInvoicesByStatus)
	invoices.GET("/revenue", s.GetRevenue)
	invoices.GET("/parcel/:parcelId", s.GetInvoiceByParcel)
	invoices.GET("/id/:id", s.GetInvoice)
	invoices.GET("/:invoiceNumber", s.GetInvoiceByNumber)
	invoices.PUT("/:invoiceId/payment", s.UpdatePaymentStatus)
}
