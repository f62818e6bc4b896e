package booking

import (
	"time"

	"studiodesk/internal/domain"
)

// overtimeGrace is how long past the booked end a guest may stay before
// overtime starts counting.
const overtimeGrace = 10 * time.Minute

// resolveHours maps a session type to billable hours. The half/full-day
// durations are fixed by the tariff card, not by the mutable settings row.
// An unexpected non-CUSTOM type falls back to one hour rather than
// producing a zero-duration, zero-cost booking.
func resolveHours(sessionType domain.SessionType, customHours int) int {
	var hours int
	switch sessionType {
	case domain.SessionOneHour:
		hours = 1
	case domain.SessionTwoHour:
		hours = 2
	case domain.SessionThreeHour:
		hours = 3
	case domain.SessionHalfDay:
		hours = 5
	case domain.SessionFullDay:
		hours = 11
	case domain.SessionCustom:
		hours = customHours
	}

	if hours == 0 && sessionType != domain.SessionCustom {
		hours = 1
	}
	return hours
}

// computeGross prices a session. Whole-rupee integer arithmetic throughout;
// no rounding exists anywhere in the pipeline.
func computeGross(ratePerPersonPerHour int64, persons, hours int) int64 {
	return ratePerPersonPerHour * int64(persons) * int64(hours)
}

func clampDiscount(discount, gross int64) int64 {
	if discount < 0 {
		return 0
	}
	if discount > gross {
		return gross
	}
	return discount
}

// Overtime is the reference figure shown to the operator at checkout. It
// is advisory: the charge actually applied to the ledger is whatever the
// operator enters.
type Overtime struct {
	ExtraHours  int   `json:"extraHours"`
	ExtraCharge int64 `json:"extraCharge"`
}

// referenceOvertime bills whole started hours past endTime+grace at the
// booking's frozen snapshot rate. Leaving exactly at the grace cutoff is
// free; one second later starts the first hour.
func referenceOvertime(endTime, exit time.Time, rate int64, persons int) Overtime {
	cutoff := endTime.Add(overtimeGrace)
	if !exit.After(cutoff) {
		return Overtime{}
	}

	over := exit.Sub(cutoff)
	minutes := int64((over + time.Minute - 1) / time.Minute)
	hours := (minutes + 59) / 60

	return Overtime{
		ExtraHours:  int(hours),
		ExtraCharge: rate * int64(persons) * hours,
	}
}
