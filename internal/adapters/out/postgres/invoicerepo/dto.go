// Package invoicerepo persists invoices and serves the billing read queries.
package invoicerepo

import (
	"time"

	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDTO is the invoices table. The unique index on ParcelID is what keeps a
// parcel to one invoice under concurrent generation. TotalAmount is stored for
// revenue aggregation and recomputed from the inputs on load.
type InvoiceDTO struct {
	ID             uuid.UUID             `gorm:"type:uuid;primaryKey"`
	InvoiceNumber  string                `gorm:"size:64;not null;uniqueIndex"`
	ParcelID       uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex"`
	Parcel         *parcelrepo.ParcelDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:RESTRICT"`
	BaseAmount     decimal.Decimal       `gorm:"type:numeric;not null"`
	TaxAmount      decimal.Decimal       `gorm:"type:numeric;not null"`
	DiscountAmount decimal.Decimal       `gorm:"type:numeric;not null"`
	TotalAmount    decimal.Decimal       `gorm:"type:numeric;not null"`
	PaymentStatus  string                `gorm:"size:16;not null;index"`
	PaymentMethod  *string               `gorm:"size:32"`
	IssuedDate     time.Time             `gorm:"not null"`
	DueDate        time.Time             `gorm:"not null;index"`
	PaidDate       *time.Time            `gorm:"index"`
	Notes          string                `gorm:"type:text"`
	UpdatedAt      time.Time             `gorm:"not null;autoUpdateTime:false"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	var method *string
	if m := inv.PaymentMethod(); m != nil {
		raw := m.String()
		method = &raw
	}

	return InvoiceDTO{
		ID:             inv.ID().Bytes(),
		InvoiceNumber:  inv.Number(),
		ParcelID:       inv.ParcelID().Bytes(),
		BaseAmount:     inv.Amounts().Base(),
		TaxAmount:      inv.Amounts().Tax(),
		DiscountAmount: inv.Amounts().Discount(),
		TotalAmount:    inv.Amounts().Total(),
		PaymentStatus:  inv.PaymentStatus().String(),
		PaymentMethod:  method,
		IssuedDate:     inv.IssuedDate(),
		DueDate:        inv.DueDate(),
		PaidDate:       inv.PaidDate(),
		Notes:          inv.Notes(),
		UpdatedAt:      inv.UpdatedAt(),
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	parcelID, err := kernel.UUIDFromGoogle(dto.ParcelID)
	if err != nil {
		return nil, err
	}
	amounts, err := invoice.NewAmounts(dto.BaseAmount, dto.TaxAmount, dto.DiscountAmount)
	if err != nil {
		return nil, err
	}

	var method *invoice.PaymentMethod
	if dto.PaymentMethod != nil {
		m := invoice.PaymentMethod(*dto.PaymentMethod)
		method = &m
	}

	return invoice.RestoreInvoice(invoice.Snapshot{
		ID:            id,
		Number:        dto.InvoiceNumber,
		ParcelID:      parcelID,
		Amounts:       amounts,
		PaymentStatus: invoice.PaymentStatus(dto.PaymentStatus),
		PaymentMethod: method,
		IssuedDate:    dto.IssuedDate,
		DueDate:       dto.DueDate,
		PaidDate:      dto.PaidDate,
		Notes:         dto.Notes,
		UpdatedAt:     dto.UpdatedAt,
	})
}

func toDomainList(dtos []InvoiceDTO) ([]*invoice.Invoice, error) {
	invoices := make([]*invoice.Invoice, 0, len(dtos))
	for _, dto := range dtos {
		inv, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}
