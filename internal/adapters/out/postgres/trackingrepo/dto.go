// Package trackingrepo persists the append-only tracking ledger.
package trackingrepo

import (
	"time"

	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// EntryDTO is the tracking table. Seq is a store-assigned serial that orders
// entries sharing a timestamp.
type EntryDTO struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Seq         int64                 `gorm:"autoIncrement;not null;uniqueIndex"`
	ParcelID    uuid.UUID             `gorm:"type:uuid;not null;index:idx_tracking_parcel_order,priority:1"`
	Parcel      *parcelrepo.ParcelDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
	Status      string                `gorm:"size:32;not null"`
	Location    string                `gorm:"not null"`
	Description string                `gorm:"type:text;not null"`
	Timestamp   time.Time             `gorm:"column:recorded_at;not null;index:idx_tracking_parcel_order,priority:2,sort:desc"`
	UpdatedBy   *uuid.UUID            `gorm:"type:uuid"`
}

func (EntryDTO) TableName() string {
	return "tracking"
}

func fromDomain(e *tracking.Entry) EntryDTO {
	var updatedBy *uuid.UUID
	if by := e.UpdatedBy(); by != nil {
		raw := by.Bytes()
		updatedBy = &raw
	}

	return EntryDTO{
		ID:          e.ID().Bytes(),
		ParcelID:    e.ParcelID().Bytes(),
		Status:      e.Status().String(),
		Location:    e.Location(),
		Description: e.Description(),
		Timestamp:   e.Timestamp(),
		UpdatedBy:   updatedBy,
	}
}

func toDomain(dto EntryDTO) (*tracking.Entry, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	parcelID, err := kernel.UUIDFromGoogle(dto.ParcelID)
	if err != nil {
		return nil, err
	}

	var updatedBy *kernel.UUID
	if dto.UpdatedBy != nil {
		by, byErr := kernel.UUIDFromGoogle(*dto.UpdatedBy)
		if byErr != nil {
			return nil, byErr
		}
		updatedBy = &by
	}

	return tracking.RestoreEntry(
		id, parcelID, parcel.Status(dto.Status), dto.Location, dto.Description, dto.Timestamp, updatedBy, dto.Seq,
	)
}
