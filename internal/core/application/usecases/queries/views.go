// Package queries contains the read operations of the parcel core.
// Handlers read through the ports readers and authorize every record against
// its owning parcel before returning a read model.
package queries

import (
	"time"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/tracking"
)

// SystemActor is how entries without an author are rendered.
const SystemActor = "System"

// AddressView is a postal address in the read model.
type AddressView struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	ZipCode     string `json:"zipCode"`
	FullAddress string `json:"fullAddress"`
}

// ParcelView is the read model of a parcel. Money and weight are fixed-point strings.
type ParcelView struct {
	ID                  kernel.UUID `json:"id"`
	TrackingNumber      string      `json:"trackingNumber"`
	SenderID            kernel.UUID `json:"senderId"`
	ReceiverID          kernel.UUID `json:"receiverId"`
	ReceiverName        string      `json:"receiverName"`
	ReceiverPhone       string      `json:"receiverPhone"`
	ReceiverEmail       string      `json:"receiverEmail,omitempty"`
	Description         string      `json:"description"`
	Weight              string      `json:"weight"`
	DeclaredValue       string      `json:"declaredValue"`
	Pickup              AddressView `json:"pickup"`
	Delivery            AddressView `json:"delivery"`
	Status              string      `json:"status"`
	Priority            string      `json:"priority"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	ShippingCost        string      `json:"shippingCost"`
	EstimatedDelivery   time.Time   `json:"estimatedDeliveryDate"`
	ActualDelivery      *time.Time  `json:"actualDeliveryDate,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// TrackingEntryView is one ledger entry in the read model.
type TrackingEntryView struct {
	ID          kernel.UUID `json:"id"`
	ParcelID    kernel.UUID `json:"parcelId"`
	Status      string      `json:"status"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Timestamp   time.Time   `json:"timestamp"`
	UpdatedBy   string      `json:"updatedBy"`
}

// InvoiceView is the read model of an invoice.
type InvoiceView struct {
	ID             kernel.UUID `json:"id"`
	InvoiceNumber  string      `json:"invoiceNumber"`
	ParcelID       kernel.UUID `json:"parcelId"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	BaseAmount     string      `json:"baseAmount"`
	TaxAmount      string      `json:"taxAmount"`
	DiscountAmount string      `json:"discountAmount"`
	TotalAmount    string      `json:"totalAmount"`
	PaymentStatus  string      `json:"paymentStatus"`
	PaymentMethod  string      `json:"paymentMethod,omitempty"`
	IssuedDate     time.Time   `json:"issuedDate"`
	DueDate        time.Time   `json:"dueDate"`
	PaidDate       *time.Time  `json:"paidDate,omitempty"`
	Notes          string      `json:"notes,omitempty"`
}

// PublicTrackingView is what anonymous callers see for a tracking number.
// It carries no contact details or money.
type PublicTrackingView struct {
	TrackingNumber    string              `json:"trackingNumber"`
	Status            string              `json:"status"`
	Priority          string              `json:"priority"`
	PickupCity        string              `json:"pickupCity"`
	DeliveryCity      string              `json:"deliveryCity"`
	EstimatedDelivery time.Time           `json:"estimatedDeliveryDate"`
	ActualDelivery    *time.Time          `json:"actualDeliveryDate,omitempty"`
	History           []TrackingEntryView `json:"history"`
}

func addressView(l kernel.Location) AddressView {
	return AddressView{
		Address:     l.Address(),
		City:        l.City(),
		State:       l.State(),
		Country:     l.Country(),
		ZipCode:     l.ZipCode(),
		FullAddress: l.FullAddress(),
	}
}

// NewParcelView maps a parcel aggregate to its read model.
func NewParcelView(p *parcel.Parcel) ParcelView {
	return ParcelView{
		ID:                  p.ID(),
		TrackingNumber:      p.TrackingNumber(),
		SenderID:            p.SenderID(),
		ReceiverID:          p.ReceiverID(),
		ReceiverName:        p.Recipient().Name(),
		ReceiverPhone:       p.Recipient().Phone(),
		ReceiverEmail:       p.Recipient().Email(),
		Description:         p.Contents().Description(),
		Weight:              p.Contents().Weight().StringFixed(2),
		DeclaredValue:       p.Contents().DeclaredValue().StringFixed(2),
		Pickup:              addressView(p.Pickup()),
		Delivery:            addressView(p.Delivery()),
		Status:              p.Status().String(),
		Priority:            p.Priority().String(),
		SpecialInstructions: p.SpecialInstructions(),
		ShippingCost:        p.ShippingCost().StringFixed(2),
		EstimatedDelivery:   p.EstimatedDelivery(),
		ActualDelivery:      p.ActualDelivery(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

func newParcelViews(parcels []*parcel.Parcel) []ParcelView {
	views := make([]ParcelView, 0, len(parcels))
	for _, p := range parcels {
		views = append(views, NewParcelView(p))
	}
	return views
}

// NewTrackingEntryView maps a ledger entry; entries without an author read as SystemActor.
func NewTrackingEntryView(e *tracking.Entry) TrackingEntryView {
	updatedBy := SystemActor
	if !e.IsSystem() {
		updatedBy = e.UpdatedBy().String()
	}
	return TrackingEntryView{
		ID:          e.ID(),
		ParcelID:    e.ParcelID(),
		Status:      e.Status().String(),
		Location:    e.Location(),
		Description: e.Description(),
		Timestamp:   e.Timestamp(),
		UpdatedBy:   updatedBy,
	}
}

func newTrackingEntryViews(entries []*tracking.Entry) []TrackingEntryView {
	views := make([]TrackingEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, NewTrackingEntryView(e))
	}
	return views
}

// NewInvoiceView maps an invoice. trackingNumber may be empty when the parcel was not loaded.
func NewInvoiceView(inv *invoice.Invoice, trackingNumber string) InvoiceView {
	view := InvoiceView{
		ID:             inv.ID(),
		InvoiceNumber:  inv.Number(),
		ParcelID:       inv.ParcelID(),
		TrackingNumber: trackingNumber,
		BaseAmount:     inv.Amounts().Base().StringFixed(2),
		TaxAmount:      inv.Amounts().Tax().StringFixed(2),
		DiscountAmount: inv.Amounts().Discount().StringFixed(2),
		TotalAmount:    inv.Amounts().Total().StringFixed(2),
		PaymentStatus:  inv.PaymentStatus().String(),
		IssuedDate:     inv.IssuedDate(),
		DueDate:        inv.DueDate(),
		PaidDate:       inv.PaidDate(),
		Notes:          inv.Notes(),
	}
	if m := inv.PaymentMethod(); m != nil {
		view.PaymentMethod = m.String()
	}
	return view
}

func newInvoiceViews(invoices []*invoice.Invoice) []InvoiceView {
	views := make([]InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, NewInvoiceView(inv, ""))
	}
	return views
}
