package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/postgres/invoicerepo"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/trackingrepo"
	"parcels/internal/core/domain/model/account"
	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var bookedAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []parcel.StatusChanged
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...parcel.StatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) published() []parcel.StatusChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]parcel.StatusChanged(nil), p.events...)
}

// UnitOfWorkIntegrationTestSuite runs the unit of work and the repositories against
// a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *recordingPublisher
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE invoices, tracking, parcels, accounts").Error
	suite.Require().NoError(err)

	suite.publisher = &recordingPublisher{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, nil, suite.publisher)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newParcel(trackingNumber string, sender kernel.UUID) *parcel.Parcel {
	recipient, err := parcel.NewRecipient("Jane Doe", "555-0100", "jane@example.com")
	suite.Require().NoError(err)
	contents, err := parcel.NewContents("Books", decimal.RequireFromString("2.5"), decimal.NewFromInt(40))
	suite.Require().NoError(err)
	pickup, err := kernel.NewLocation("1 Main St", "Springfield", "IL", "USA", "62701")
	suite.Require().NoError(err)
	delivery, err := kernel.NewLocation("9 Elm St", "Shelbyville", "IL", "USA", "62565")
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(parcel.Booking{
		ID:                kernel.NewUUID(),
		TrackingNumber:    trackingNumber,
		SenderID:          sender,
		ReceiverID:        kernel.NewUUID(),
		Recipient:         recipient,
		Contents:          contents,
		Pickup:            pickup,
		Delivery:          delivery,
		Priority:          parcel.PriorityExpress,
		ShippingCost:      decimal.RequireFromString("14.00"),
		EstimatedDelivery: bookedAt.AddDate(0, 0, 2),
		BookedAt:          bookedAt,
	})
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) book(p *parcel.Parcel) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	entry, err := tracking.NewEntry(p, "Springfield", tracking.StatusUpdateDescription(p.Status()), bookedAt, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TrackingRepository().Append(ctx, entry))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ParcelRepository())
	suite.NotNil(uow1.TrackingRepository())
	suite.NotNil(uow1.InvoiceRepository())
	suite.NotNil(uow1.AccountRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBooking_CommitPersistsParcelAndFirstEntry() {
	ctx := context.Background()
	p := suite.newParcel("TN1741597200000AAAA0001", kernel.NewUUID())

	suite.book(p)

	reader := parcelrepo.NewGormParcelReader(suite.db)
	stored, err := reader.GetByTrackingNumber(ctx, p.TrackingNumber())
	suite.Require().NoError(err)
	suite.True(stored.ID().IsEqual(p.ID()))
	suite.Equal(parcel.StatusPending, stored.Status())
	suite.Equal(parcel.PriorityExpress, stored.Priority())
	suite.True(stored.Contents().Weight().Equal(decimal.RequireFromString("2.5")))
	suite.True(stored.ShippingCost().Equal(decimal.RequireFromString("14")))
	suite.WithinDuration(bookedAt, stored.CreatedAt(), 0)
	suite.Equal("Shelbyville", stored.Delivery().City())
	suite.Nil(stored.ActualDelivery())

	history, err := trackingrepo.NewGormTrackingRepository(suite.db).History(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal(parcel.StatusPending, history[0].Status())
	suite.True(history[0].IsSystem())
	suite.Positive(history[0].Seq())

	events := suite.publisher.published()
	suite.Require().Len(events, 1)
	suite.Equal(parcel.StatusPending, events[0].To)
	suite.Equal(p.TrackingNumber(), events[0].TrackingNumber)
	suite.Empty(p.DomainEvents(), "events must be cleared after publishing")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBooking_RollbackDiscardsEverything() {
	ctx := context.Background()
	p := suite.newParcel("TN1741597200000AAAA0002", kernel.NewUUID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	entry, err := tracking.NewEntry(p, "Springfield", "Parcel created", bookedAt, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TrackingRepository().Append(ctx, entry))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = parcelrepo.NewGormParcelReader(suite.db).Get(ctx, p.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	history, err := trackingrepo.NewGormTrackingRepository(suite.db).History(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Empty(history)
	suite.Empty(suite.publisher.published(), "rolled back changes publish nothing")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestParcelRepository_DuplicateTrackingNumberConflicts() {
	ctx := context.Background()
	suite.book(suite.newParcel("TN1741597200000AAAA0003", kernel.NewUUID()))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err := uow.ParcelRepository().Add(ctx, suite.newParcel("TN1741597200000AAAA0003", kernel.NewUUID()))
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestParcelRepository_UpdateStatus() {
	ctx := context.Background()
	p := suite.newParcel("TN1741597200000AAAA0004", kernel.NewUUID())
	suite.book(p)

	staff := kernel.NewUUID()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	loaded, err := uow.ParcelRepository().GetForUpdate(ctx, p.ID())
	suite.Require().NoError(err)
	deliveredAt := bookedAt.Add(30 * time.Hour)
	suite.Require().NoError(loaded.ChangeStatus(parcel.StatusDelivered, deliveredAt, parcel.AnyTransition, &staff))
	suite.Require().NoError(uow.ParcelRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := parcelrepo.NewGormParcelReader(suite.db).Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusDelivered, stored.Status())
	suite.Require().NotNil(stored.ActualDelivery())
	suite.WithinDuration(deliveredAt, *stored.ActualDelivery(), 0)

	events := suite.publisher.published()
	suite.Require().Len(events, 2)
	suite.Equal(parcel.StatusDelivered, events[1].To)
	suite.Require().NotNil(events[1].ChangedBy)
	suite.True(events[1].ChangedBy.IsEqual(staff))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestParcelRepository_UpdateUnknownParcel() {
	ctx := context.Background()
	p := suite.newParcel("TN1741597200000AAAA0005", kernel.NewUUID())

	err := suite.factory.Create().ParcelRepository().Update(ctx, p)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestParcelReader_Listings() {
	ctx := context.Background()
	sender := kernel.NewUUID()
	first := suite.newParcel("TN1741597200000AAAA0006", sender)
	second := suite.newParcel("TN1741597200000AAAA0007", sender)
	other := suite.newParcel("TN1741597200000AAAA0008", kernel.NewUUID())
	suite.book(first)
	suite.book(second)
	suite.book(other)

	reader := parcelrepo.NewGormParcelReader(suite.db)

	sent, err := reader.ListBySender(ctx, sender)
	suite.Require().NoError(err)
	suite.Len(sent, 2)

	received, err := reader.ListByParty(ctx, other.ReceiverID())
	suite.Require().NoError(err)
	suite.Require().Len(received, 1)
	suite.Equal(other.TrackingNumber(), received[0].TrackingNumber())

	pending, err := reader.CountByStatus(ctx, parcel.StatusPending)
	suite.Require().NoError(err)
	suite.EqualValues(3, pending)

	inRange, err := reader.ListByStatusCreatedBetween(ctx, parcel.StatusPending, bookedAt.Add(-time.Hour), bookedAt.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Len(inRange, 3)

	none, err := reader.ListCreatedBetween(ctx, bookedAt.Add(time.Hour), bookedAt.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Empty(none)

	overdue, err := reader.ListOverdue(ctx, bookedAt.AddDate(0, 0, 3))
	suite.Require().NoError(err)
	suite.Len(overdue, 3)

	notYet, err := reader.ListOverdue(ctx, bookedAt.AddDate(0, 0, 1))
	suite.Require().NoError(err)
	suite.Empty(notYet)

	all, err := reader.ListAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 3)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackingRepository_HistoryIsNewestFirstWithInsertionTieBreak() {
	ctx := context.Background()
	p := suite.newParcel("TN1741597200000AAAA0009", kernel.NewUUID())
	suite.book(p)

	repo := trackingrepo.NewGormTrackingRepository(suite.db)
	same := bookedAt.Add(2 * time.Hour)
	mid, err := tracking.NewEntry(p, "Hub A", "first at same instant", same, nil)
	suite.Require().NoError(err)
	last, err := tracking.NewEntry(p, "Hub B", "second at same instant", same, nil)
	suite.Require().NoError(err)
	backdated, err := tracking.NewEntry(p, "Dock", "backdated scan", bookedAt.Add(time.Hour), nil)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Append(ctx, mid))
	suite.Require().NoError(repo.Append(ctx, last))
	suite.Require().NoError(repo.Append(ctx, backdated))

	history, err := repo.History(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 4)
	suite.Equal("Hub B", history[0].Location())
	suite.Equal("Hub A", history[1].Location())
	suite.Equal("Dock", history[2].Location())
	suite.Equal("Springfield", history[3].Location())

	combined, err := repo.HistoryOf(ctx, []kernel.UUID{p.ID(), kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Len(combined, 4)

	empty, err := repo.HistoryOf(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackingRepository_AppendForUnknownParcel() {
	ctx := context.Background()
	p := suite.newParcel("TN1741597200000AAAA0010", kernel.NewUUID())
	entry, err := tracking.NewEntry(p, "Hub", "orphan", bookedAt, nil)
	suite.Require().NoError(err)

	err = trackingrepo.NewGormTrackingRepository(suite.db).Append(ctx, entry)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) newInvoice(p *parcel.Parcel, number string) *invoice.Invoice {
	amounts, err := invoice.NewAmounts(decimal.RequireFromString("14"), decimal.RequireFromString("1.4"), decimal.Zero)
	suite.Require().NoError(err)
	inv, err := invoice.NewInvoice(kernel.NewUUID(), number, p.ID(), amounts, bookedAt, "")
	suite.Require().NoError(err)
	return inv
}

func (suite *UnitOfWorkIntegrationTestSuite) TestInvoiceRepository_OneInvoicePerParcel() {
	ctx := context.Background()
	p := suite.newParcel("TN1741597200000AAAA0011", kernel.NewUUID())
	suite.book(p)

	repo := invoicerepo.NewGormInvoiceRepository(suite.db)
	suite.Require().NoError(repo.Add(ctx, suite.newInvoice(p, "INV1741597200000AAAA0001")))

	err := repo.Add(ctx, suite.newInvoice(p, "INV1741597200000AAAA0002"))
	suite.ErrorIs(err, errs.ErrConflict)

	stored, err := repo.GetByParcel(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal("INV1741597200000AAAA0001", stored.Number())
	suite.True(stored.Amounts().Total().Equal(decimal.RequireFromString("15.4")))
	suite.Equal(invoice.PaymentPending, stored.PaymentStatus())
	suite.Nil(stored.PaymentMethod())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestInvoiceRepository_ConcurrentGenerationKeepsOne() {
	ctx := context.Background()
	p := suite.newParcel("TN1741597200000AAAA0012", kernel.NewUUID())
	suite.book(p)

	numbers := []string{"INV1741597200000AAAA0003", "INV1741597200000AAAA0004"}
	results := make([]error, len(numbers))
	var wg sync.WaitGroup
	for i, n := range numbers {
		i, n := i, n
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				results[i] = err
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()
			if err := uow.InvoiceRepository().Add(ctx, suite.newInvoice(p, n)); err != nil {
				results[i] = err
				return
			}
			results[i] = uow.Commit(ctx)
		}()
	}
	wg.Wait()

	var conflicts int
	for _, err := range results {
		if errors.Is(err, errs.ErrConflict) {
			conflicts++
		} else {
			suite.NoError(err)
		}
	}
	suite.Equal(1, conflicts)

	var count int64
	suite.Require().NoError(suite.db.Model(&invoicerepo.InvoiceDTO{}).Where("parcel_id = ?", p.ID().Bytes()).Count(&count).Error)
	suite.EqualValues(1, count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestInvoiceRepository_PaymentAndRevenue() {
	ctx := context.Background()
	sender := kernel.NewUUID()
	paidParcel := suite.newParcel("TN1741597200000AAAA0013", sender)
	pendingParcel := suite.newParcel("TN1741597200000AAAA0014", kernel.NewUUID())
	suite.book(paidParcel)
	suite.book(pendingParcel)

	repo := invoicerepo.NewGormInvoiceRepository(suite.db)
	paid := suite.newInvoice(paidParcel, "INV1741597200000AAAA0005")
	pending := suite.newInvoice(pendingParcel, "INV1741597200000AAAA0006")
	suite.Require().NoError(repo.Add(ctx, paid))
	suite.Require().NoError(repo.Add(ctx, pending))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	loaded, err := uow.InvoiceRepository().GetForUpdate(ctx, paid.ID())
	suite.Require().NoError(err)
	method := invoice.MethodCreditCard
	paidAt := bookedAt.Add(24 * time.Hour)
	suite.Require().NoError(loaded.UpdatePayment(invoice.PaymentPaid, &method, paidAt, invoice.StrictPayments))
	suite.Require().NoError(uow.InvoiceRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := repo.GetByNumber(ctx, paid.Number())
	suite.Require().NoError(err)
	suite.Equal(invoice.PaymentPaid, stored.PaymentStatus())
	suite.Require().NotNil(stored.PaymentMethod())
	suite.Equal(invoice.MethodCreditCard, *stored.PaymentMethod())
	suite.Require().NotNil(stored.PaidDate())

	revenue, err := repo.RevenueBetween(ctx, bookedAt, bookedAt.AddDate(0, 0, 7))
	suite.Require().NoError(err)
	suite.True(revenue.Equal(decimal.RequireFromString("15.4")), revenue.String())

	nothing, err := repo.RevenueBetween(ctx, bookedAt.AddDate(0, 1, 0), bookedAt.AddDate(0, 2, 0))
	suite.Require().NoError(err)
	suite.True(nothing.IsZero())

	mine, err := repo.ListBySender(ctx, sender)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Equal(paid.Number(), mine[0].Number())

	overdue, err := repo.ListOverdue(ctx, bookedAt.Add(invoice.PaymentTerm+time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(overdue, 1)
	suite.Equal(pending.Number(), overdue[0].Number())

	byStatus, err := repo.ListByPaymentStatus(ctx, invoice.PaymentPaid)
	suite.Require().NoError(err)
	suite.Len(byStatus, 1)

	all, err := repo.ListAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAccountRepository_FindByEmail() {
	ctx := context.Background()
	uow := suite.factory.Create()
	repo := uow.AccountRepository()

	created, err := account.NewUnclaimedCustomer(kernel.NewUUID(), "Jane", "Doe", "555-0100", "jane@example.com", bookedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, created))

	found, err := repo.FindByEmail(ctx, "Jane@Example.com ")
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(created.ID()))
	suite.False(found.Claimed())
	suite.Equal(kernel.RoleCustomer, found.Role())

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	duplicate, err := account.NewUnclaimedCustomer(kernel.NewUUID(), "J", "D", "555-0101", "jane@example.com", bookedAt)
	suite.Require().NoError(err)
	suite.ErrorIs(repo.Add(ctx, duplicate), errs.ErrConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAccountRepository_PlaceholderEmailIsShared() {
	ctx := context.Background()
	repo := suite.factory.Create().AccountRepository()

	for i := 0; i < 2; i++ {
		a, err := account.NewUnclaimedCustomer(kernel.NewUUID(), "No", "Mail", "555-0102", "", bookedAt)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(ctx, a))
	}

	_, err := repo.FindByEmail(ctx, account.PlaceholderEmail)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishFailureDoesNotFailCommit() {
	ctx := context.Background()
	suite.publisher.err = errors.New("broker down")
	p := suite.newParcel("TN1741597200000AAAA0015", kernel.NewUUID())

	suite.book(p)

	_, err := parcelrepo.NewGormParcelReader(suite.db).Get(ctx, p.ID())
	suite.NoError(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
