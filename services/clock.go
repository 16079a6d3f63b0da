package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock supplies the reference instant for one operation.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}

// NormalizeSlot parses a booking date and time and returns them in the stored layouts.
func NormalizeSlot(date, clock string) (string, string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return "", "", fmt.Errorf("invalid time %q: expected HH:MM", clock)
	}
	return d.Format(DateLayout), t.Format(TimeLayout), nil
}

// SlotInstant combines a booking date and time into one instant in loc.
func SlotInstant(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
}

// activeReservations limits a reservations query to bookings whose instant
// is strictly after now, the same test Cancel applies. Slots are whole
// minutes, so that is any slot later than now's minute. Stored layouts sort
// lexically in time order.
func activeReservations(now time.Time, loc *time.Location) func(*gorm.DB) *gorm.DB {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	today := local.Format(DateLayout)
	minute := local.Format(TimeLayout)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("((booking_date > ?) OR (booking_date = ? AND booking_time > ?))", today, today, minute)
	}
}
