package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculateRenewalDate(t *testing.T) {
	tests := []struct {
		name          string
		admissionDate time.Time
		months        int
		want          time.Time
	}{
		{"mid-month", date(2024, time.March, 15), 2, date(2024, time.May, 15)},
		{"jan 31 into leap february clamps to 29", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 into non-leap february clamps to 28", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"may 31 into june clamps to 30", date(2024, time.May, 31), 1, date(2024, time.June, 30)},
		{"year rollover", date(2024, time.December, 15), 1, date(2025, time.January, 15)},
		{"full year", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
		{"rollover with clamp", date(2024, time.October, 31), 4, date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateRenewalDate(tt.admissionDate, tt.months))
		})
	}
}

func TestDaysUntilExpiry(t *testing.T) {
	now := date(2024, time.June, 10)

	assert.Equal(t, 0, DaysUntilExpiryFrom(date(2024, time.June, 10), now))
	assert.Equal(t, 2, DaysUntilExpiryFrom(date(2024, time.June, 12), now))
	assert.Equal(t, -1, DaysUntilExpiryFrom(date(2024, time.June, 9), now))

	// Time-of-day must not shift the day count.
	lateEvening := time.Date(2024, time.June, 10, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysUntilExpiryFrom(date(2024, time.June, 12), lateEvening))
}

func TestExpiryClassificationConsistency(t *testing.T) {
	now := date(2024, time.June, 10)

	tests := []struct {
		name         string
		renewalDate  time.Time
		expired      bool
		expiringSoon bool
	}{
		{"expired yesterday", date(2024, time.June, 9), true, false},
		{"expires today", date(2024, time.June, 10), false, true},
		{"expires at window edge", date(2024, time.June, 12), false, true},
		{"expires past window", date(2024, time.June, 13), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, IsExpiredFrom(tt.renewalDate, now))
			assert.Equal(t, tt.expiringSoon, IsExpiringSoonFrom(tt.renewalDate, now))
		})
	}
}

func TestComputeFee(t *testing.T) {
	assert.Equal(t, 3700.0, ComputeFee(1300, 3, 200))
	assert.Equal(t, 2600.0, ComputeFee(1300, 2, 0))
	assert.Equal(t, 0.0, ComputeFee(1100, 1, 5000), "fee never goes negative")
	assert.InDelta(t, 3701.25, ComputeFee(1300.50, 3, 200.25), 0.001)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-15")
	assert.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 15), parsed)

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}
