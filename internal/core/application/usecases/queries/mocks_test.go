package queries_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/tracking"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelReader struct{ mock.Mock }

func (m *MockParcelReader) one(args mock.Arguments) (*parcel.Parcel, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelReader) many(args mock.Arguments) ([]*parcel.Parcel, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelReader) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockParcelReader) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error) {
	return m.one(m.Called(ctx, trackingNumber))
}

func (m *MockParcelReader) ListBySender(ctx context.Context, senderID kernel.UUID) ([]*parcel.Parcel, error) {
	return m.many(m.Called(ctx, senderID))
}

func (m *MockParcelReader) ListByReceiver(ctx context.Context, receiverID kernel.UUID) ([]*parcel.Parcel, error) {
	return m.many(m.Called(ctx, receiverID))
}

func (m *MockParcelReader) ListByParty(ctx context.Context, userID kernel.UUID) ([]*parcel.Parcel, error) {
	return m.many(m.Called(ctx, userID))
}

func (m *MockParcelReader) ListByStatus(ctx context.Context, status parcel.Status) ([]*parcel.Parcel, error) {
	return m.many(m.Called(ctx, status))
}

func (m *MockParcelReader) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*parcel.Parcel, error) {
	return m.many(m.Called(ctx, from, to))
}

func (m *MockParcelReader) ListByStatusCreatedBetween(ctx context.Context, status parcel.Status, from, to time.Time) ([]*parcel.Parcel, error) {
	return m.many(m.Called(ctx, status, from, to))
}

func (m *MockParcelReader) CountByStatus(ctx context.Context, status parcel.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockParcelReader) ListOverdue(ctx context.Context, now time.Time) ([]*parcel.Parcel, error) {
	return m.many(m.Called(ctx, now))
}

func (m *MockParcelReader) ListAll(ctx context.Context) ([]*parcel.Parcel, error) {
	return m.many(m.Called(ctx))
}

type MockTrackingReader struct{ mock.Mock }

func (m *MockTrackingReader) History(ctx context.Context, parcelID kernel.UUID) ([]*tracking.Entry, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.Entry), args.Error(1)
}

func (m *MockTrackingReader) HistoryOf(ctx context.Context, parcelIDs []kernel.UUID) ([]*tracking.Entry, error) {
	args := m.Called(ctx, parcelIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.Entry), args.Error(1)
}

type MockInvoiceReader struct{ mock.Mock }

func (m *MockInvoiceReader) one(args mock.Arguments) (*invoice.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceReader) many(args mock.Arguments) ([]*invoice.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceReader) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockInvoiceReader) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	return m.one(m.Called(ctx, number))
}

func (m *MockInvoiceReader) GetByParcel(ctx context.Context, parcelID kernel.UUID) (*invoice.Invoice, error) {
	return m.one(m.Called(ctx, parcelID))
}

func (m *MockInvoiceReader) ListByPaymentStatus(ctx context.Context, status invoice.PaymentStatus) ([]*invoice.Invoice, error) {
	return m.many(m.Called(ctx, status))
}

func (m *MockInvoiceReader) ListBySender(ctx context.Context, senderID kernel.UUID) ([]*invoice.Invoice, error) {
	return m.many(m.Called(ctx, senderID))
}

func (m *MockInvoiceReader) ListOverdue(ctx context.Context, now time.Time) ([]*invoice.Invoice, error) {
	return m.many(m.Called(ctx, now))
}

func (m *MockInvoiceReader) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceReader) ListAll(ctx context.Context) ([]*invoice.Invoice, error) {
	return m.many(m.Called(ctx))
}

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Get(ctx context.Context, trackingNumber string) ([]byte, bool, error) {
	args := m.Called(ctx, trackingNumber)
	payload, _ := args.Get(0).([]byte)
	return payload, args.Bool(1), args.Error(2)
}

func (m *MockTrackingCache) Set(ctx context.Context, trackingNumber string, payload []byte) error {
	args := m.Called(ctx, trackingNumber, payload)
	return args.Error(0)
}

func (m *MockTrackingCache) Invalidate(ctx context.Context, trackingNumber string) error {
	args := m.Called(ctx, trackingNumber)
	return args.Error(0)
}

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newActor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return a
}

func staffActor(t *testing.T) kernel.Actor {
	return newActor(t, kernel.NewUUID(), kernel.RoleStaff)
}

func stranger(t *testing.T) kernel.Actor {
	return newActor(t, kernel.NewUUID(), kernel.RoleCustomer)
}

func testParcel(t *testing.T, trackingNumber string) *parcel.Parcel {
	t.Helper()

	recipient, err := parcel.NewRecipient("Jane Doe", "555-0100", "jane@example.com")
	require.NoError(t, err)
	contents, err := parcel.NewContents("Books", decimal.NewFromInt(2), decimal.NewFromInt(40))
	require.NoError(t, err)
	pickup, err := kernel.NewLocation("1 Main St", "Springfield", "IL", "USA", "62701")
	require.NoError(t, err)
	delivery, err := kernel.NewLocation("9 Elm St", "Shelbyville", "IL", "USA", "62565")
	require.NoError(t, err)

	p, err := parcel.NewParcel(parcel.Booking{
		ID:                kernel.NewUUID(),
		TrackingNumber:    trackingNumber,
		SenderID:          kernel.NewUUID(),
		ReceiverID:        kernel.NewUUID(),
		Recipient:         recipient,
		Contents:          contents,
		Pickup:            pickup,
		Delivery:          delivery,
		Priority:          parcel.PriorityOvernight,
		ShippingCost:      decimal.NewFromInt(18),
		EstimatedDelivery: fixedNow.AddDate(0, 0, 1),
		BookedAt:          fixedNow,
	})
	require.NoError(t, err)
	return p
}

func testEntry(t *testing.T, p *parcel.Parcel, at time.Time, by *kernel.UUID) *tracking.Entry {
	t.Helper()
	e, err := tracking.NewEntry(p, "Hub", "Scanned", at, by)
	require.NoError(t, err)
	return e
}

func testInvoice(t *testing.T, p *parcel.Parcel) *invoice.Invoice {
	t.Helper()
	amounts, err := invoice.NewAmounts(decimal.NewFromInt(18), decimal.RequireFromString("1.8"), decimal.Zero)
	require.NoError(t, err)
	inv, err := invoice.NewInvoice(kernel.NewUUID(), "INV1741597200000ABCD1234", p.ID(), amounts, fixedNow, "")
	require.NoError(t, err)
	return inv
}
