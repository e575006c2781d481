package utils

import (
	"fmt"
	"math"
	"time"
)

// ExpiryWarningDays is how many days before the renewal date an admission
// counts as "expiring soon".
const ExpiryWarningDays = 2

// CalculateRenewalDate adds durationMonths calendar months to admissionDate.
// Unlike time.Time.AddDate, an overflowing day-of-month clamps to the last
// valid day of the target month: Jan 31 + 1 month is Feb 29 in a leap year
// and Feb 28 otherwise, never Mar 2.
func CalculateRenewalDate(admissionDate time.Time, durationMonths int) time.Time {
	y, m, d := admissionDate.Date()
	firstOfTarget := time.Date(y, m+time.Month(durationMonths), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}

// StartOfDay strips the time-of-day component, keeping only the calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntilExpiryFrom is the signed day count from now's calendar date to
// renewalDate's. Negative means already expired.
func DaysUntilExpiryFrom(renewalDate, now time.Time) int {
	return int(StartOfDay(renewalDate).Sub(StartOfDay(now)).Hours() / 24)
}

func DaysUntilExpiry(renewalDate time.Time) int {
	return DaysUntilExpiryFrom(renewalDate, time.Now())
}

func IsExpiredFrom(renewalDate, now time.Time) bool {
	return DaysUntilExpiryFrom(renewalDate, now) < 0
}

func IsExpired(renewalDate time.Time) bool {
	return IsExpiredFrom(renewalDate, time.Now())
}

func IsExpiringSoonFrom(renewalDate, now time.Time) bool {
	days := DaysUntilExpiryFrom(renewalDate, now)
	return days >= 0 && days <= ExpiryWarningDays
}

func IsExpiringSoon(renewalDate time.Time) bool {
	return IsExpiringSoonFrom(renewalDate, time.Now())
}

// ComputeFee is rate x durationMonths minus discount, floored at zero and
// rounded to the paisa.
func ComputeFee(rate float64, durationMonths int, discount float64) float64 {
	total := rate*float64(durationMonths) - discount
	if total < 0 {
		return 0
	}
	return math.Round(total*100) / 100
}

// ParseDate parses the YYYY-MM-DD form the dashboard submits.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func DurationText(durationMonths int) string {
	if durationMonths == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", durationMonths)
}
