package repository

import (
	"context"

	"gorm.io/gorm"

	"studiodesk/internal/modules/booking"
)

// Store is the persistence facade. One value serves every module; the
// modules each declare the narrow interface they consume.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ booking.Repository = (*Store)(nil)

// InTx runs fn against a store bound to a single transaction. A lifecycle
// operation's booking write and journal appends commit or roll back as one
// unit.
func (s *Store) InTx(ctx context.Context, fn func(booking.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&bookingModel{},
		&paymentModel{},
		&expenseModel{},
		&pricingSettingsModel{},
		&userModel{},
	)
}
