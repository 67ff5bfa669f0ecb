package commands_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/account"
	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Append(ctx context.Context, e *tracking.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByParcel(ctx context.Context, parcelID kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

// uowSequence hands out the given units of work in order, one per Create call.
type uowSequence struct {
	uows  []*MockUoW
	calls int
}

func newUoWSequence(uows ...*MockUoW) *uowSequence {
	return &uowSequence{uows: uows}
}

func (s *uowSequence) next() *MockUoW {
	u := s.uows[s.calls]
	s.calls++
	return u
}

type bookingFactory struct{ *uowSequence }

func (f bookingFactory) Create() commands.BookingUoW { return f.next() }

type shipmentFactory struct{ *uowSequence }

func (f shipmentFactory) Create() commands.ShipmentUoW { return f.next() }

type billingFactory struct{ *uowSequence }

func (f billingFactory) Create() commands.BillingUoW { return f.next() }

type MockNumberIssuer struct{ mock.Mock }

func (m *MockNumberIssuer) TrackingNumber() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockNumberIssuer) InvoiceNumber() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func actorFor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return a
}

func bookedParcel(t *testing.T, status parcel.Status) *parcel.Parcel {
	t.Helper()

	recipient, err := parcel.NewRecipient("Jane Doe", "555-0100", "jane@example.com")
	require.NoError(t, err)
	contents, err := parcel.NewContents("Books", decimal.NewFromInt(2), decimal.NewFromInt(40))
	require.NoError(t, err)
	loc, err := kernel.NewLocation("1 Main St", "Springfield", "IL", "USA", "62701")
	require.NoError(t, err)

	booking := parcel.Booking{
		ID:                kernel.NewUUID(),
		TrackingNumber:    "TRK1741597200000AAAABBBB",
		SenderID:          kernel.NewUUID(),
		ReceiverID:        kernel.NewUUID(),
		Recipient:         recipient,
		Contents:          contents,
		Pickup:            loc,
		Delivery:          loc,
		Priority:          parcel.PriorityOvernight,
		ShippingCost:      decimal.NewFromInt(18),
		EstimatedDelivery: fixedNow.AddDate(0, 0, 1),
		BookedAt:          fixedNow.Add(-time.Hour),
	}
	p, err := parcel.RestoreParcel(parcel.Snapshot{Booking: booking, Status: status, UpdatedAt: booking.BookedAt})
	require.NoError(t, err)
	return p
}
