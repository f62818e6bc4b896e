package domain

import "time"

// DayPackage is a named multi-hour tariff (half day / full day).
type DayPackage struct {
	Hours          int   `json:"hours"`
	Price          int64 `json:"price"`
	AllowedPersons int   `json:"allowedPersons"`
}

// PricingSettings is the studio-wide tariff configuration. It is read once
// at booking creation/update time; each booking then keeps its own frozen
// PricingSnapshot, so editing these settings never reprices history.
type PricingSettings struct {
	ID                     int64      `json:"id"`
	HourlyRate             int64      `json:"hourlyRate"`
	ExtraPersonRatePerHour int64      `json:"extraPersonRatePerHour"`
	HalfDay                DayPackage `json:"halfDay"`
	FullDay                DayPackage `json:"fullDay"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// DefaultPricingSettings mirrors the studio's launch tariff.
func DefaultPricingSettings() *PricingSettings {
	return &PricingSettings{
		HourlyRate:             500,
		ExtraPersonRatePerHour: 500,
		HalfDay:                DayPackage{Hours: 5, Price: 12000, AllowedPersons: 8},
		FullDay:                DayPackage{Hours: 11, Price: 20000, AllowedPersons: 8},
	}
}
