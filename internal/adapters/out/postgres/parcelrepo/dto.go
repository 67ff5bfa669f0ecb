// Package parcelrepo persists parcel aggregates and serves the parcel read queries.
package parcelrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO is the parcels table. Money and weight use unconstrained numeric so
// values round-trip exactly; enums are stored as their string literals.
type ParcelDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingNumber      string          `gorm:"size:64;not null;uniqueIndex"`
	SenderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceiverID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceiverName        string          `gorm:"not null"`
	ReceiverPhone       string          `gorm:"not null"`
	ReceiverEmail       string          `gorm:"size:255"`
	Description         string          `gorm:"not null"`
	Weight              decimal.Decimal `gorm:"type:numeric;not null"`
	DeclaredValue       decimal.Decimal `gorm:"type:numeric;not null"`
	Pickup              LocationDTO     `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery            LocationDTO     `gorm:"embedded;embeddedPrefix:delivery_"`
	Status              string          `gorm:"size:32;not null;index"`
	Priority            string          `gorm:"size:16;not null"`
	SpecialInstructions string          `gorm:"type:text"`
	ShippingCost        decimal.Decimal `gorm:"type:numeric;not null"`
	EstimatedDelivery   time.Time       `gorm:"not null;index"`
	ActualDelivery      *time.Time      `gorm:"column:actual_delivery"`
	CreatedAt           time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt           time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// LocationDTO is a postal address embedded twice, for pickup and delivery.
type LocationDTO struct {
	Address string `gorm:"not null"`
	City    string `gorm:"not null"`
	State   string `gorm:"not null"`
	Country string `gorm:"not null"`
	ZipCode string `gorm:"not null"`
}

func locationFromDomain(l kernel.Location) LocationDTO {
	return LocationDTO{
		Address: l.Address(),
		City:    l.City(),
		State:   l.State(),
		Country: l.Country(),
		ZipCode: l.ZipCode(),
	}
}

func (l LocationDTO) toDomain() (kernel.Location, error) {
	return kernel.NewLocation(l.Address, l.City, l.State, l.Country, l.ZipCode)
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:                  p.ID().Bytes(),
		TrackingNumber:      p.TrackingNumber(),
		SenderID:            p.SenderID().Bytes(),
		ReceiverID:          p.ReceiverID().Bytes(),
		ReceiverName:        p.Recipient().Name(),
		ReceiverPhone:       p.Recipient().Phone(),
		ReceiverEmail:       p.Recipient().Email(),
		Description:         p.Contents().Description(),
		Weight:              p.Contents().Weight(),
		DeclaredValue:       p.Contents().DeclaredValue(),
		Pickup:              locationFromDomain(p.Pickup()),
		Delivery:            locationFromDomain(p.Delivery()),
		Status:              p.Status().String(),
		Priority:            p.Priority().String(),
		SpecialInstructions: p.SpecialInstructions(),
		ShippingCost:        p.ShippingCost(),
		EstimatedDelivery:   p.EstimatedDelivery(),
		ActualDelivery:      p.ActualDelivery(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromGoogle(dto.SenderID)
	if err != nil {
		return nil, err
	}
	receiverID, err := kernel.UUIDFromGoogle(dto.ReceiverID)
	if err != nil {
		return nil, err
	}
	recipient, err := parcel.NewRecipient(dto.ReceiverName, dto.ReceiverPhone, dto.ReceiverEmail)
	if err != nil {
		return nil, err
	}
	contents, err := parcel.NewContents(dto.Description, dto.Weight, dto.DeclaredValue)
	if err != nil {
		return nil, err
	}
	pickup, err := dto.Pickup.toDomain()
	if err != nil {
		return nil, err
	}
	delivery, err := dto.Delivery.toDomain()
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(parcel.Snapshot{
		Booking: parcel.Booking{
			ID:                  id,
			TrackingNumber:      dto.TrackingNumber,
			SenderID:            senderID,
			ReceiverID:          receiverID,
			Recipient:           recipient,
			Contents:            contents,
			Pickup:              pickup,
			Delivery:            delivery,
			Priority:            parcel.Priority(dto.Priority),
			SpecialInstructions: dto.SpecialInstructions,
			ShippingCost:        dto.ShippingCost,
			EstimatedDelivery:   dto.EstimatedDelivery,
			BookedAt:            dto.CreatedAt,
		},
		Status:         parcel.Status(dto.Status),
		UpdatedAt:      dto.UpdatedAt,
		ActualDelivery: dto.ActualDelivery,
	})
}

func toDomainList(dtos []ParcelDTO) ([]*parcel.Parcel, error) {
	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}
