package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/littlelemon/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Candidate is an already-parsed booking request.
type Candidate struct {
	Name    string `json:"name" validate:"max=100"`
	Guests  int    `json:"guest_count" validate:"min=1"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,datetime=15:04"`
	TableID uint   `json:"table_id" validate:"required"`
}

// OpeningHours is the half-open range [Open, Close) of whole hours in which
// bookings may start. Open == Close disables the check.
type OpeningHours struct {
	Open  int
	Close int
}

func (h OpeningHours) Contains(clock string) bool {
	if h.Open == h.Close {
		return true
	}
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return false
	}
	return t.Hour() >= h.Open && t.Hour() < h.Close
}

type ReservationValidator struct {
	Now      Clock
	Location *time.Location
	Hours    OpeningHours
	structs  *validator.Validate
}

func NewReservationValidator(now Clock, loc *time.Location, hours OpeningHours) *ReservationValidator {
	if now == nil {
		now = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return &ReservationValidator{Now: now, Location: loc, Hours: hours, structs: v}
}

// CheckStructure rejects malformed candidates before any rule or read runs.
func (v *ReservationValidator) CheckStructure(c Candidate) error {
	if err := v.structs.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return validationError(ReasonInvalidRequest, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
		return validationError(ReasonInvalidRequest, err.Error())
	}
	return nil
}

// Check applies the admission rules in order: future instant, capacity,
// opening hours, slot exclusivity. conflicts holds the reservations already
// stored for the candidate's slot; excludeID is ignored among them so an
// update does not conflict with itself.
func (v *ReservationValidator) Check(c Candidate, table models.Table, conflicts []models.Reservation, excludeID uint, now time.Time) error {
	instant, err := SlotInstant(c.Date, c.Time, v.Location)
	if err != nil {
		return validationError(ReasonInvalidRequest, err.Error())
	}
	if !instant.After(now) {
		return validationError(ReasonPastDatetime, "the reservation date and time cannot be in the past")
	}

	if c.Guests > table.Seats {
		return validationError(ReasonOverCapacity,
			fmt.Sprintf("the number of guests (%d) exceeds the table capacity (%d)", c.Guests, table.Seats))
	}

	if !v.Hours.Contains(c.Time) {
		return validationError(ReasonOutsideHours,
			fmt.Sprintf("reservations are accepted from %02d:00 to %02d:00", v.Hours.Open, v.Hours.Close))
	}

	for _, existing := range conflicts {
		if excludeID != 0 && existing.ID == excludeID {
			continue
		}
		if existing.TableID == table.ID && existing.BookingDate == c.Date && existing.BookingTime == c.Time {
			return slotTakenError(nil)
		}
	}
	return nil
}

// Validate reads the target table (row-locked where the driver supports it)
// and the reservations on the candidate's slot through db, then runs Check.
// The candidate must already be normalized.
func (v *ReservationValidator) Validate(ctx context.Context, db *gorm.DB, c Candidate, excludeID uint) (models.Table, error) {
	if err := v.CheckStructure(c); err != nil {
		return models.Table{}, err
	}

	var table models.Table
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&table, c.TableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Table{}, notFoundError(ReasonTableNotFound, fmt.Sprintf("table %d not found", c.TableID))
		}
		return models.Table{}, fmt.Errorf("load table %d: %w", c.TableID, err)
	}

	var conflicts []models.Reservation
	if err := db.WithContext(ctx).
		Where("table_id = ? AND booking_date = ? AND booking_time = ?", table.ID, c.Date, c.Time).
		Find(&conflicts).Error; err != nil {
		return models.Table{}, fmt.Errorf("load slot reservations: %w", err)
	}

	if err := v.Check(c, table, conflicts, excludeID, v.Now()); err != nil {
		return models.Table{}, err
	}
	return table, nil
}

// Normalize trims the name and rewrites date and time into the stored layouts.
// Malformed values are left untouched for CheckStructure to report.
func (c Candidate) Normalize() Candidate {
	c.Name = strings.TrimSpace(c.Name)
	if date, clock, err := NormalizeSlot(c.Date, c.Time); err == nil {
		c.Date, c.Time = date, clock
	}
	return c
}
