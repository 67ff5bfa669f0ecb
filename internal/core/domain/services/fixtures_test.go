package services_test

import (
	"testing"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func bookParcel(t *testing.T, sender, receiver kernel.UUID) *parcel.Parcel {
	t.Helper()

	recipient, err := parcel.NewRecipient("Jane Doe", "555-0100", "jane@example.com")
	require.NoError(t, err)
	contents, err := parcel.NewContents("Books", decimal.NewFromInt(2), decimal.NewFromInt(40))
	require.NoError(t, err)
	loc, err := kernel.NewLocation("1 Main St", "Springfield", "IL", "USA", "62701")
	require.NoError(t, err)

	p, err := parcel.NewParcel(parcel.Booking{
		ID:                kernel.NewUUID(),
		TrackingNumber:    "TRK1700000000000AAAAAAAA",
		SenderID:          sender,
		ReceiverID:        receiver,
		Recipient:         recipient,
		Contents:          contents,
		Pickup:            loc,
		Delivery:          loc,
		ShippingCost:      decimal.NewFromInt(9),
		EstimatedDelivery: time.Now().AddDate(0, 0, 5),
	})
	require.NoError(t, err)
	return p
}

func actor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return a
}
