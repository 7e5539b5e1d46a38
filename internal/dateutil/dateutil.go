// Package dateutil holds the date arithmetic used across menu browsing and
// status derivation. All functions are pure. Dates travel as strings in the
// upstream's two wire formats: ISO yyyy-MM-dd and localized dd/MM/yyyy.
// Inputs are trusted; malformed strings are a caller contract violation.
package dateutil

import (
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// ToLocal converts yyyy-MM-dd into dd/MM/yyyy by reversing the segments.
func ToLocal(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// ToISO converts dd/MM/yyyy back into yyyy-MM-dd.
func ToISO(localDate string) string {
	parts := strings.Split(localDate, "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "-")
}

// Today returns the current date in ISO form, system local timezone.
func Today() string {
	return time.Now().Format(dateLayout)
}

// CombineDateTime joins an ISO date and an HH:mm:ss clock into
// yyyy-MM-ddTHH:mm:ss.
func CombineDateTime(isoDate, clock string) string {
	return isoDate + "T" + clock
}

// HoursUntil returns how many hours separate now from the given
// yyyy-MM-ddTHH:mm:ss instant, interpreted in local time. Positive means the
// instant is in the future.
func HoursUntil(now time.Time, dateTime string) float64 {
	target, err := time.ParseInLocation(dateTimeLayout, dateTime, time.Local)
	if err != nil {
		return 0
	}
	return target.Sub(now).Hours()
}

// DaysBetween returns b minus a in days, positive when b is later.
func DaysBetween(isoA, isoB string) float64 {
	a, errA := time.Parse(dateLayout, isoA)
	b, errB := time.Parse(dateLayout, isoB)
	if errA != nil || errB != nil {
		return 0
	}
	return b.Sub(a).Hours() / 24
}

// ShiftDay adds deltaDays to the given ISO date, handling month and year
// rollover.
func ShiftDay(isoDate string, deltaDays int) string {
	d, err := time.Parse(dateLayout, isoDate)
	if err != nil {
		return isoDate
	}
	return d.AddDate(0, 0, deltaDays).Format(dateLayout)
}

// StripSeconds shortens HH:mm:ss to HH:mm.
func StripSeconds(clock string) string {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return clock
	}
	return parts[0] + ":" + parts[1]
}
