package booking

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestBuildBookingCode(t *testing.T) {
	start := time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "HOW-20260901-0001", buildBookingCode("HOW", start, 1))
	assert.Equal(t, "HOW-20260901-0042", buildBookingCode("HOW", start, 42))
	assert.Equal(t, "HOW-20260901-12345", buildBookingCode("HOW", start, 12345))
}

func TestBuildBookingCode_UsesUTCDate(t *testing.T) {
	// 23:30 IST on Sep 1 is 18:00 UTC on Sep 1; 02:30 IST on Sep 2 is
	// still Sep 1 in UTC. Codes follow UTC so the sequence never forks.
	ist := time.FixedZone("IST", 5*3600+1800)
	lateNight := time.Date(2026, 9, 2, 2, 30, 0, 0, ist)

	assert.Equal(t, "HOW-20260901-0001", buildBookingCode("HOW", lateNight, 1))
}

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name string
		last string
		want int
	}{
		{"empty day starts at one", "", 1},
		{"increments the trailing number", "HOW-20260901-0007", 8},
		{"carries past four digits", "HOW-20260901-9999", 10000},
		{"malformed code restarts", "HOW-20260901-xyz", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextSequence(tt.last))
		})
	}
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))

	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))

	pgErr := &pgconn.PgError{Code: "23505"}
	assert.True(t, IsDuplicateKey(fmt.Errorf("create: %w", pgErr)))
	assert.False(t, IsDuplicateKey(&pgconn.PgError{Code: "23503"}))

	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: bookings.booking_code")))
}
