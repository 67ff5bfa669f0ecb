package parcelrepo

import (
	"context"
	"time"

	"parcels/internal/adapters/out/postgres/dberr"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ports.ParcelRepository and ports.ParcelReader.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// noTracking is used by read-only repositories built outside a unit of work.
type noTracking struct{}

func (noTracking) TrackAggregate(kernel.UUID, any) {}

// NewGormParcelRepository creates a repository on db; saved aggregates are reported to tracker.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// NewGormParcelReader creates a repository for queries only.
func NewGormParcelReader(db *gorm.DB) *GormParcelRepository {
	return NewGormParcelRepository(db, noTracking{})
}

// Add saves a newly booked parcel.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Write("parcel", "parcel", aggregate.ID().String(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the mutable state of an existing parcel.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", dto.ID).
		Select("status", "actual_delivery", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a parcel with SELECT ... FOR UPDATE. Outside a transaction
// the lock is released immediately.
func (r *GormParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormParcelRepository) get(db *gorm.DB, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Read("parcel", id.String(), err)
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves a parcel by its tracking number.
func (r *GormParcelRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error) {
	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		return nil, dberr.Read("trackingNumber", trackingNumber, err)
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) ListBySender(ctx context.Context, senderID kernel.UUID) ([]*parcel.Parcel, error) {
	return r.list(ctx, "sender_id = ?", senderID.Bytes())
}

func (r *GormParcelRepository) ListByReceiver(ctx context.Context, receiverID kernel.UUID) ([]*parcel.Parcel, error) {
	return r.list(ctx, "receiver_id = ?", receiverID.Bytes())
}

func (r *GormParcelRepository) ListByParty(ctx context.Context, userID kernel.UUID) ([]*parcel.Parcel, error) {
	return r.list(ctx, "sender_id = @id OR receiver_id = @id", map[string]any{"id": userID.Bytes()})
}

func (r *GormParcelRepository) ListByStatus(ctx context.Context, status parcel.Status) ([]*parcel.Parcel, error) {
	return r.list(ctx, "status = ?", status.String())
}

func (r *GormParcelRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*parcel.Parcel, error) {
	return r.list(ctx, "created_at BETWEEN ? AND ?", from, to)
}

func (r *GormParcelRepository) ListByStatusCreatedBetween(
	ctx context.Context,
	status parcel.Status,
	from, to time.Time,
) ([]*parcel.Parcel, error) {
	return r.list(ctx, "status = ? AND created_at BETWEEN ? AND ?", status.String(), from, to)
}

func (r *GormParcelRepository) CountByStatus(ctx context.Context, status parcel.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("status = ?", status.String()).Count(&count).Error
	return count, err
}

// ListOverdue returns parcels past their estimated delivery that are neither delivered nor cancelled.
func (r *GormParcelRepository) ListOverdue(ctx context.Context, now time.Time) ([]*parcel.Parcel, error) {
	return r.list(ctx, "estimated_delivery < ? AND status NOT IN ?",
		now, []string{parcel.StatusDelivered.String(), parcel.StatusCancelled.String()})
}

func (r *GormParcelRepository) ListAll(ctx context.Context) ([]*parcel.Parcel, error) {
	return r.list(ctx, "")
}

func (r *GormParcelRepository) list(ctx context.Context, where string, args ...any) ([]*parcel.Parcel, error) {
	db := r.db.WithContext(ctx)
	if where != "" {
		db = db.Where(where, args...)
	}

	var dtos []ParcelDTO
	if err := db.Order("created_at DESC").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}
