package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"studiodesk/internal/domain"
)

type pricingSettingsModel struct {
	ID                     int64     `gorm:"column:id;primaryKey"`
	HourlyRate             int64     `gorm:"column:hourly_rate"`
	ExtraPersonRatePerHour int64     `gorm:"column:extra_person_rate_per_hour"`
	HalfDayHours           int       `gorm:"column:half_day_hours"`
	HalfDayPrice           int64     `gorm:"column:half_day_price"`
	HalfDayAllowedPersons  int       `gorm:"column:half_day_allowed_persons"`
	FullDayHours           int       `gorm:"column:full_day_hours"`
	FullDayPrice           int64     `gorm:"column:full_day_price"`
	FullDayAllowedPersons  int       `gorm:"column:full_day_allowed_persons"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

func (pricingSettingsModel) TableName() string { return "pricing_settings" }

func toDomainSettings(m pricingSettingsModel) *domain.PricingSettings {
	return &domain.PricingSettings{
		ID:                     m.ID,
		HourlyRate:             m.HourlyRate,
		ExtraPersonRatePerHour: m.ExtraPersonRatePerHour,
		HalfDay: domain.DayPackage{
			Hours:          m.HalfDayHours,
			Price:          m.HalfDayPrice,
			AllowedPersons: m.HalfDayAllowedPersons,
		},
		FullDay: domain.DayPackage{
			Hours:          m.FullDayHours,
			Price:          m.FullDayPrice,
			AllowedPersons: m.FullDayAllowedPersons,
		},
		UpdatedAt: m.UpdatedAt,
	}
}

func toSettingsModel(s *domain.PricingSettings) pricingSettingsModel {
	return pricingSettingsModel{
		ID:                     s.ID,
		HourlyRate:             s.HourlyRate,
		ExtraPersonRatePerHour: s.ExtraPersonRatePerHour,
		HalfDayHours:           s.HalfDay.Hours,
		HalfDayPrice:           s.HalfDay.Price,
		HalfDayAllowedPersons:  s.HalfDay.AllowedPersons,
		FullDayHours:           s.FullDay.Hours,
		FullDayPrice:           s.FullDay.Price,
		FullDayAllowedPersons:  s.FullDay.AllowedPersons,
	}
}

// GetSettings returns the single settings row, creating the default tariff
// on first use.
func (s *Store) GetSettings(ctx context.Context) (*domain.PricingSettings, error) {
	var m pricingSettingsModel
	tx := s.db.WithContext(ctx).Order("id ASC").First(&m)
	if tx.Error == nil {
		return toDomainSettings(m), nil
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, tx.Error
	}

	def := domain.DefaultPricingSettings()
	m = toSettingsModel(def)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return toDomainSettings(m), nil
}

func (s *Store) SaveSettings(ctx context.Context, settings *domain.PricingSettings) error {
	m := toSettingsModel(settings)
	m.UpdatedAt = time.Now()
	tx := s.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*settings = *toDomainSettings(m)
	return nil
}
