package postgres

import (
	"parcels/internal/adapters/out/postgres/accountrepo"
	"parcels/internal/adapters/out/postgres/invoicerepo"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Parcels precede the tables referencing them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountrepo.AccountDTO{},
		&parcelrepo.ParcelDTO{},
		&trackingrepo.EntryDTO{},
		&invoicerepo.InvoiceDTO{},
	)
}
