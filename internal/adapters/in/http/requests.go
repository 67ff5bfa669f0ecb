package http

import (
	"fmt"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"

	"github.com/jinzhu/now"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// BookParcelRequest is the body of POST /api/parcels/book. Addresses are flat
// pickup*/delivery* fields. Weight and declared value accept JSON numbers or strings.
type BookParcelRequest struct {
	Description         string          `json:"description"`
	Weight              decimal.Decimal `json:"weight"`
	DeclaredValue       decimal.Decimal `json:"declaredValue"`
	Priority            string          `json:"priority"`
	ReceiverName        string          `json:"receiverName"`
	ReceiverPhone       string          `json:"receiverPhone"`
	ReceiverEmail       string          `json:"receiverEmail"`
	PickupAddress       string          `json:"pickupAddress"`
	PickupCity          string          `json:"pickupCity"`
	PickupState         string          `json:"pickupState"`
	PickupCountry       string          `json:"pickupCountry"`
	PickupZipCode       string          `json:"pickupZipCode"`
	DeliveryAddress     string          `json:"deliveryAddress"`
	DeliveryCity        string          `json:"deliveryCity"`
	DeliveryState       string          `json:"deliveryState"`
	DeliveryCountry     string          `json:"deliveryCountry"`
	DeliveryZipCode     string          `json:"deliveryZipCode"`
	SpecialInstructions string          `json:"specialInstructions"`
}

func (r BookParcelRequest) toBooking() commands.BookingRequest {
	return commands.BookingRequest{
		Description:   r.Description,
		Weight:        r.Weight,
		DeclaredValue: r.DeclaredValue,
		ReceiverName:  r.ReceiverName,
		ReceiverPhone: r.ReceiverPhone,
		ReceiverEmail: r.ReceiverEmail,
		Pickup: commands.Address{
			Address: r.PickupAddress,
			City:    r.PickupCity,
			State:   r.PickupState,
			Country: r.PickupCountry,
			ZipCode: r.PickupZipCode,
		},
		Delivery: commands.Address{
			Address: r.DeliveryAddress,
			City:    r.DeliveryCity,
			State:   r.DeliveryState,
			Country: r.DeliveryCountry,
			ZipCode: r.DeliveryZipCode,
		},
		Priority:            r.Priority,
		SpecialInstructions: r.SpecialInstructions,
	}
}

// TrackingUpdateRequest is the body of POST /api/tracking/parcel/:parcelId/update.
// A missing timestamp means now.
type TrackingUpdateRequest struct {
	Status      string     `json:"status"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp"`
}

// GenerateInvoiceRequest is the optional body of POST /api/invoices/generate/:parcelId.
type GenerateInvoiceRequest struct {
	Notes string `json:"notes"`
}

// CountView is the body of a count response.
type CountView struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

const dateLayout = "2006-01-02"

// queryTime parses an RFC 3339 timestamp or a plain date. A plain date marks the
// start of that day, or its end when endOfDay is set, so ranges are inclusive.
func queryTime(ctx echo.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%q is neither RFC 3339 nor YYYY-MM-DD", raw))
	}
	if endOfDay {
		day = now.With(day).EndOfDay()
	}
	return &day, nil
}
