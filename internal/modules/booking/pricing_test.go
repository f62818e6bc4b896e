package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studiodesk/internal/domain"
)

func TestResolveHours(t *testing.T) {
	tests := []struct {
		name        string
		sessionType domain.SessionType
		customHours int
		want        int
	}{
		{"one hour", domain.SessionOneHour, 0, 1},
		{"two hour", domain.SessionTwoHour, 0, 2},
		{"three hour", domain.SessionThreeHour, 0, 3},
		{"half day", domain.SessionHalfDay, 0, 5},
		{"full day", domain.SessionFullDay, 0, 11},
		{"custom", domain.SessionCustom, 7, 7},
		{"unknown type falls back to one hour", domain.SessionType("BOGUS"), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveHours(tt.sessionType, tt.customHours))
		})
	}
}

func TestComputeGross(t *testing.T) {
	assert.Equal(t, int64(3000), computeGross(500, 3, 2))
	assert.Equal(t, int64(500), computeGross(500, 1, 1))
	assert.Equal(t, int64(0), computeGross(500, 0, 2))
}

func TestClampDiscount(t *testing.T) {
	assert.Equal(t, int64(0), clampDiscount(-100, 1000))
	assert.Equal(t, int64(300), clampDiscount(300, 1000))
	assert.Equal(t, int64(1000), clampDiscount(5000, 1000))
}

func TestReferenceOvertime(t *testing.T) {
	end := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	rate := int64(500)
	persons := 2

	t.Run("leaving before end is free", func(t *testing.T) {
		ot := referenceOvertime(end, end.Add(-30*time.Minute), rate, persons)
		assert.Equal(t, Overtime{}, ot)
	})

	t.Run("leaving exactly at the grace cutoff is free", func(t *testing.T) {
		ot := referenceOvertime(end, end.Add(10*time.Minute), rate, persons)
		assert.Equal(t, Overtime{}, ot)
	})

	t.Run("one second past the cutoff starts the first hour", func(t *testing.T) {
		ot := referenceOvertime(end, end.Add(10*time.Minute+time.Second), rate, persons)
		assert.Equal(t, 1, ot.ExtraHours)
		assert.Equal(t, int64(1000), ot.ExtraCharge)
	})

	t.Run("sixty minutes past the cutoff is still one hour", func(t *testing.T) {
		ot := referenceOvertime(end, end.Add(10*time.Minute+60*time.Minute), rate, persons)
		assert.Equal(t, 1, ot.ExtraHours)
	})

	t.Run("sixty-one minutes past the cutoff rounds up to two hours", func(t *testing.T) {
		ot := referenceOvertime(end, end.Add(10*time.Minute+61*time.Minute), rate, persons)
		assert.Equal(t, 2, ot.ExtraHours)
		assert.Equal(t, int64(2000), ot.ExtraCharge)
	})
}
