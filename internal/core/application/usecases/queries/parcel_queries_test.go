package queries_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetParcelQuery_NotConstructed(t *testing.T) {
	var query queries.GetParcelQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetParcelQueryIsNotConstructed)

	_, err := queries.NewGetParcelByTrackingNumberQuery("   ", staffActor(t))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetParcelQueryHandler_Handle(t *testing.T) {
	p := testParcel(t, "TRK1741597200000AAAABBBB")

	tests := []struct {
		name    string
		actor   func(t *testing.T) kernel.Actor
		wantErr error
	}{
		{"sender", func(t *testing.T) kernel.Actor { return newActor(t, p.SenderID(), kernel.RoleCustomer) }, nil},
		{"receiver", func(t *testing.T) kernel.Actor { return newActor(t, p.ReceiverID(), kernel.RoleCustomer) }, nil},
		{"staff", staffActor, nil},
		{"stranger", stranger, errs.ErrForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			reader := new(MockParcelReader)
			reader.On("Get", ctx, p.ID()).Return(p, nil).Once()

			query, err := queries.NewGetParcelQuery(p.ID(), tc.actor(t))
			require.NoError(t, err)

			view, err := queries.NewGetParcelQueryHandler(reader, services.NewAccessGuard()).Handle(ctx, query)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, view.TrackingNumber)
			} else {
				require.NoError(t, err)
				assert.Equal(t, p.TrackingNumber(), view.TrackingNumber)
				assert.Equal(t, "18.00", view.ShippingCost)
				assert.Equal(t, "PENDING", view.Status)
				assert.Equal(t, "9 Elm St, Shelbyville, IL 62565, USA", view.Delivery.FullAddress)
			}
			reader.AssertExpectations(t)
		})
	}
}

func TestGetParcelQueryHandler_Handle_ByTrackingNumberNotFound(t *testing.T) {
	ctx := context.Background()
	reader := new(MockParcelReader)
	reader.On("GetByTrackingNumber", ctx, "TRK0").Return(nil, errs.NewObjectNotFoundError("trackingNumber", "TRK0")).Once()

	query, err := queries.NewGetParcelByTrackingNumberQuery(" TRK0 ", staffActor(t))
	require.NoError(t, err)

	_, err = queries.NewGetParcelQueryHandler(reader, services.NewAccessGuard()).Handle(ctx, query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	reader.AssertExpectations(t)
}

func TestListParcelsQueryHandler_CustomerScopes(t *testing.T) {
	customer := stranger(t)
	p := testParcel(t, "TRK1741597200000AAAABBBB")

	for _, tc := range []struct {
		scope  queries.ParcelScope
		method string
	}{
		{queries.ScopeMine, "ListByParty"},
		{queries.ScopeSent, "ListBySender"},
		{queries.ScopeReceived, "ListByReceiver"},
	} {
		t.Run(string(tc.scope), func(t *testing.T) {
			ctx := context.Background()
			reader := new(MockParcelReader)
			reader.On(tc.method, ctx, customer.ID()).Return([]*parcel.Parcel{p}, nil).Once()

			query, err := queries.NewListParcelsQuery(customer, tc.scope)
			require.NoError(t, err)

			views, err := queries.NewListParcelsQueryHandler(reader, services.NewAccessGuard()).Handle(ctx, query)

			require.NoError(t, err)
			require.Len(t, views, 1)
			assert.Equal(t, p.ID(), views[0].ID)
			reader.AssertExpectations(t)
		})
	}
}

func TestListParcelsQueryHandler_StaffScopesRejectCustomers(t *testing.T) {
	customer := stranger(t)

	for _, scope := range []queries.ParcelScope{queries.ScopeOverdue, queries.ScopeAll} {
		query, err := queries.NewListParcelsQuery(customer, scope)
		require.NoError(t, err)

		reader := new(MockParcelReader)
		_, err = queries.NewListParcelsQueryHandler(reader, services.NewAccessGuard()).Handle(context.Background(), query)

		require.ErrorIs(t, err, errs.ErrForbidden, scope)
		reader.AssertNotCalled(t, "ListAll", mock.Anything)
	}
}

func TestListParcelsQueryHandler_Overdue(t *testing.T) {
	ctx := context.Background()
	reader := new(MockParcelReader)
	reader.On("ListOverdue", ctx, fixedNow).Return([]*parcel.Parcel{}, nil).Once()

	query, err := queries.NewListParcelsQuery(staffActor(t), queries.ScopeOverdue)
	require.NoError(t, err)

	views, err := queries.NewListParcelsQueryHandler(reader, services.NewAccessGuard()).
		WithClock(fixedClock).Handle(ctx, query)

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
	reader.AssertExpectations(t)
}

func TestListParcelsQueryHandler_Search(t *testing.T) {
	from := fixedNow.Add(-24 * time.Hour)
	to := fixedNow

	tests := []struct {
		name   string
		status string
		from   *time.Time
		to     *time.Time
		setup  func(ctx any, r *MockParcelReader)
	}{
		{"status and range", "IN_TRANSIT", &from, &to, func(ctx any, r *MockParcelReader) {
			r.On("ListByStatusCreatedBetween", ctx, parcel.StatusInTransit, from, to).Return([]*parcel.Parcel{}, nil).Once()
		}},
		{"status only", "DELIVERED", nil, nil, func(ctx any, r *MockParcelReader) {
			r.On("ListByStatus", ctx, parcel.StatusDelivered).Return([]*parcel.Parcel{}, nil).Once()
		}},
		{"range only", "", &from, &to, func(ctx any, r *MockParcelReader) {
			r.On("ListCreatedBetween", ctx, from, to).Return([]*parcel.Parcel{}, nil).Once()
		}},
		{"no filter", "", nil, nil, func(ctx any, r *MockParcelReader) {
			r.On("ListAll", ctx).Return([]*parcel.Parcel{}, nil).Once()
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			reader := new(MockParcelReader)
			tc.setup(ctx, reader)

			query, err := queries.NewSearchParcelsQuery(staffActor(t), tc.status, tc.from, tc.to)
			require.NoError(t, err)

			_, err = queries.NewListParcelsQueryHandler(reader, services.NewAccessGuard()).Handle(ctx, query)

			require.NoError(t, err)
			reader.AssertExpectations(t)
		})
	}
}

func TestNewSearchParcelsQuery_Invalid(t *testing.T) {
	from := fixedNow
	before := fixedNow.Add(-time.Hour)

	_, err := queries.NewSearchParcelsQuery(staffActor(t), "", &from, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewSearchParcelsQuery(staffActor(t), "", &from, &before)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewSearchParcelsQuery(staffActor(t), "LOST", nil, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListParcelsQuery(staffActor(t), queries.ScopeSearch)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCountParcelsByStatusQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	reader := new(MockParcelReader)
	reader.On("CountByStatus", ctx, parcel.StatusInTransit).Return(int64(7), nil).Once()
	handler := queries.NewCountParcelsByStatusQueryHandler(reader, services.NewAccessGuard())

	query, err := queries.NewCountParcelsByStatusQuery(staffActor(t), "IN_TRANSIT")
	require.NoError(t, err)
	count, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	query, err = queries.NewCountParcelsByStatusQuery(stranger(t), "IN_TRANSIT")
	require.NoError(t, err)
	_, err = handler.Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrForbidden)

	reader.AssertExpectations(t)
}
