package cmd

import (
	"log/slog"

	httpin "parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/kafka"
	"parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/postgres/invoicerepo"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/trackingrepo"
	"parcels/internal/adapters/out/redis"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      ports.TrackingCache
	closers    []func() error

	calculator services.BillingCalculator
	numbers    services.NumberGenerator
	access     services.AccessGuard
}

// NewCompositionRoot wires the adapters. Redis and Kafka are optional: without an
// address the tracking cache is disabled and no events leave the process.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		calculator: services.NewBillingCalculator(),
		numbers:    services.NewNumberGenerator(),
		access:     services.NewAccessGuard(),
	}

	var publishers []ports.EventPublisher
	if config.RedisAddr != "" {
		client := redis.NewClient(config.RedisAddr)
		cache := redis.NewTrackingCache(client, config.TrackingCacheTTL)
		c.cache = cache
		publishers = append(publishers, cache)
		c.closers = append(c.closers, client.Close)
	}
	if len(config.KafkaBrokers) > 0 {
		publisher := kafka.NewParcelEventPublisher(config.KafkaBrokers, config.KafkaParcelStatusTopic)
		publishers = append(publishers, publisher)
		c.closers = append(c.closers, publisher.Close)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, logger, publishers...)
	return c
}

// Close releases the cache and broker connections.
func (c *CompositionRoot) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.logger.Error("failed to close adapter", "error", err)
		}
	}
}

func (c *CompositionRoot) bookingFactory() commands.BookingUoWFactory {
	return FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) billingFactory() commands.BillingUoWFactory {
	return FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) parcelReader() ports.ParcelReader {
	return parcelrepo.NewGormParcelReader(c.gormDB)
}

func (c *CompositionRoot) trackingReader() ports.TrackingReader {
	return trackingrepo.NewGormTrackingRepository(c.gormDB)
}

func (c *CompositionRoot) invoiceReader() ports.InvoiceReader {
	return invoicerepo.NewGormInvoiceRepository(c.gormDB)
}

func (c *CompositionRoot) CreateBookParcelCommandHandler() commands.BookParcelCommandHandler {
	return commands.NewBookParcelCommandHandler(c.bookingFactory(), c.calculator, c.numbers)
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	return commands.NewUpdateParcelStatusCommandHandler(c.shipmentFactory(), c.access, c.config.TransitionRule())
}

func (c *CompositionRoot) CreateAddTrackingUpdateCommandHandler() commands.AddTrackingUpdateCommandHandler {
	return commands.NewAddTrackingUpdateCommandHandler(c.shipmentFactory(), c.access, c.config.TransitionRule())
}

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() commands.GenerateInvoiceCommandHandler {
	return commands.NewGenerateInvoiceCommandHandler(c.billingFactory(), c.calculator, c.numbers, c.access)
}

func (c *CompositionRoot) CreateUpdatePaymentStatusCommandHandler() commands.UpdatePaymentStatusCommandHandler {
	return commands.NewUpdatePaymentStatusCommandHandler(c.billingFactory(), c.access, c.config.PaymentRule())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.parcelReader(), c.access)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.parcelReader(), c.access)
}

func (c *CompositionRoot) CreateCountParcelsByStatusQueryHandler() queries.CountParcelsByStatusQueryHandler {
	return queries.NewCountParcelsByStatusQueryHandler(c.parcelReader(), c.access)
}

func (c *CompositionRoot) CreateGetTrackingHistoryQueryHandler() queries.GetTrackingHistoryQueryHandler {
	return queries.NewGetTrackingHistoryQueryHandler(c.parcelReader(), c.trackingReader(), c.access)
}

func (c *CompositionRoot) CreateGetPublicTrackingQueryHandler() queries.GetPublicTrackingQueryHandler {
	return queries.NewGetPublicTrackingQueryHandler(c.parcelReader(), c.trackingReader(), c.cache)
}

func (c *CompositionRoot) CreateGetMyTrackingQueryHandler() queries.GetMyTrackingQueryHandler {
	return queries.NewGetMyTrackingQueryHandler(c.parcelReader(), c.trackingReader())
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	return queries.NewGetInvoiceQueryHandler(c.invoiceReader(), c.parcelReader(), c.access)
}

func (c *CompositionRoot) CreateListInvoicesQueryHandler() queries.ListInvoicesQueryHandler {
	return queries.NewListInvoicesQueryHandler(c.invoiceReader(), c.access)
}

func (c *CompositionRoot) CreateGetRevenueQueryHandler() queries.GetRevenueQueryHandler {
	return queries.NewGetRevenueQueryHandler(c.invoiceReader(), c.access)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		BookParcel:          c.CreateBookParcelCommandHandler(),
		UpdateParcelStatus:  c.CreateUpdateParcelStatusCommandHandler(),
		AddTrackingUpdate:   c.CreateAddTrackingUpdateCommandHandler(),
		GenerateInvoice:     c.CreateGenerateInvoiceCommandHandler(),
		UpdatePaymentStatus: c.CreateUpdatePaymentStatusCommandHandler(),
		GetParcel:           c.CreateGetParcelQueryHandler(),
		ListParcels:         c.CreateListParcelsQueryHandler(),
		CountParcels:        c.CreateCountParcelsByStatusQueryHandler(),
		GetTrackingHistory:  c.CreateGetTrackingHistoryQueryHandler(),
		GetPublicTracking:   c.CreateGetPublicTrackingQueryHandler(),
		GetMyTracking:       c.CreateGetMyTrackingQueryHandler(),
		GetInvoice:          c.CreateGetInvoiceQueryHandler(),
		ListInvoices:        c.CreateListInvoicesQueryHandler(),
		GetRevenue:          c.CreateGetRevenueQueryHandler(),
	}, httpin.NewAuthenticator([]byte(c.config.JWTSecret)), c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(jobs.Schedules{
		OverdueReport: c.config.OverdueReportSchedule,
	}, jobs.ReportHandlers{
		ListParcels:  c.CreateListParcelsQueryHandler(),
		ListInvoices: c.CreateListInvoicesQueryHandler(),
		GetRevenue:   c.CreateGetRevenueQueryHandler(),
	}, c.logger)
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}
