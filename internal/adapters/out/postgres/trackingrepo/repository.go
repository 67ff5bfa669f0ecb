package trackingrepo

import (
	"context"

	"parcels/internal/adapters/out/postgres/dberr"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// newestFirst is the ledger order: timestamp descending, then insertion order descending.
const newestFirst = "recorded_at DESC, seq DESC"

// GormTrackingRepository implements ports.TrackingRepository and ports.TrackingReader.
// Entries are inserted only; nothing here updates or deletes them.
type GormTrackingRepository struct {
	db *gorm.DB
}

func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// Append inserts the entry. An unknown parcel surfaces as an ObjectNotFoundError
// through the foreign key.
func (r *GormTrackingRepository) Append(ctx context.Context, entry *tracking.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error
	return dberr.Write("tracking", "parcel", entry.ParcelID().String(), err)
}

// History returns one parcel's ledger, newest first.
func (r *GormTrackingRepository) History(ctx context.Context, parcelID kernel.UUID) ([]*tracking.Entry, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx).Where("parcel_id = ?", parcelID.Bytes()))
}

// HistoryOf returns the merged ledgers of several parcels, newest first.
func (r *GormTrackingRepository) HistoryOf(ctx context.Context, parcelIDs []kernel.UUID) ([]*tracking.Entry, error) {
	if len(parcelIDs) == 0 {
		return []*tracking.Entry{}, nil
	}

	ids := make([]uuid.UUID, 0, len(parcelIDs))
	for _, id := range parcelIDs {
		ids = append(ids, id.Bytes())
	}
	return r.find(r.db.WithContext(ctx).Where("parcel_id IN ?", ids))
}

func (r *GormTrackingRepository) find(db *gorm.DB) ([]*tracking.Entry, error) {
	var dtos []EntryDTO
	if err := db.Order(newestFirst).Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*tracking.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
