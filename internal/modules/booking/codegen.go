package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Codes look like HOW-20260901-0042: a fixed prefix, the start date, and a
// per-day sequence starting at 0001. Uniqueness is guaranteed by the
// booking_code index; concurrent creations that land on the same sequence
// are retried (see Service.Create).
const maxCodeAttempts = 5

func dayPrefix(prefix string, start time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, start.UTC().Format("20060102"))
}

func buildBookingCode(prefix string, start time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", dayPrefix(prefix, start), seq)
}

// nextSequence parses the trailing number of the greatest existing code for
// the day. An empty or malformed code restarts the day at 1.
func nextSequence(lastCode string) int {
	if lastCode == "" {
		return 1
	}
	parts := strings.Split(lastCode, "-")
	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 1
	}
	return seq + 1
}

// IsDuplicateKey reports whether err is a unique-constraint violation on
// any supported backend.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// modernc sqlite errors reach us untranslated
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
