package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/littlelemon/models"
)

func newTestValidator() *ReservationValidator {
	return NewReservationValidator(fixedClock, time.UTC, OpeningHours{Open: 11, Close: 23})
}

func TestCheckStructure(t *testing.T) {
	v := newTestValidator()
	valid := Candidate{Name: "Ana", Guests: 2, Date: "2025-06-10", Time: "19:00", TableID: 1}
	require.NoError(t, v.CheckStructure(valid))

	cases := map[string]func(c *Candidate){
		"zero guests":    func(c *Candidate) { c.Guests = 0 },
		"too many":       func(c *Candidate) { c.Guests = 21 },
		"bad date":       func(c *Candidate) { c.Date = "10/06/2025" },
		"bad time":       func(c *Candidate) { c.Time = "7pm" },
		"missing table":  func(c *Candidate) { c.TableID = 0 },
		"empty date":     func(c *Candidate) { c.Date = "" },
		"name too long":  func(c *Candidate) { c.Name = string(make([]byte, 101)) },
		"impossible day": func(c *Candidate) { c.Date = "2025-02-30" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			err := v.CheckStructure(c)
			assert.True(t, HasReason(err, ReasonInvalidRequest), "got %v", err)
		})
	}
}

func TestCheckRuleOrder(t *testing.T) {
	v := newTestValidator()
	table := models.Table{ID: 3, Name: "Mesa 3", Seats: 4}

	tests := []struct {
		name      string
		candidate Candidate
		conflicts []models.Reservation
		exclude   uint
		reason    string
	}{
		{
			name:      "accepted",
			candidate: Candidate{Guests: 4, Date: "2025-06-01", Time: "19:00", TableID: 3},
		},
		{
			name:      "exactly now is past",
			candidate: Candidate{Guests: 2, Date: "2025-06-01", Time: "12:00", TableID: 3},
			reason:    ReasonPastDatetime,
		},
		{
			name:      "past wins over capacity",
			candidate: Candidate{Guests: 9, Date: "2025-05-31", Time: "19:00", TableID: 3},
			reason:    ReasonPastDatetime,
		},
		{
			name:      "over capacity",
			candidate: Candidate{Guests: 5, Date: "2025-06-02", Time: "19:00", TableID: 3},
			reason:    ReasonOverCapacity,
		},
		{
			name:      "capacity wins over opening hours",
			candidate: Candidate{Guests: 5, Date: "2025-06-02", Time: "08:00", TableID: 3},
			reason:    ReasonOverCapacity,
		},
		{
			name:      "before opening",
			candidate: Candidate{Guests: 2, Date: "2025-06-02", Time: "10:59", TableID: 3},
			reason:    ReasonOutsideHours,
		},
		{
			name:      "closing hour excluded",
			candidate: Candidate{Guests: 2, Date: "2025-06-02", Time: "23:00", TableID: 3},
			reason:    ReasonOutsideHours,
		},
		{
			name:      "slot taken",
			candidate: Candidate{Guests: 2, Date: "2025-06-02", Time: "19:00", TableID: 3},
			conflicts: []models.Reservation{{ID: 7, TableID: 3, BookingDate: "2025-06-02", BookingTime: "19:00"}},
			reason:    ReasonSlotTaken,
		},
		{
			name:      "own slot on update",
			candidate: Candidate{Guests: 2, Date: "2025-06-02", Time: "19:00", TableID: 3},
			conflicts: []models.Reservation{{ID: 7, TableID: 3, BookingDate: "2025-06-02", BookingTime: "19:00"}},
			exclude:   7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Check(tt.candidate, table, tt.conflicts, tt.exclude, fixedNow)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, HasReason(err, tt.reason), "want %s, got %v", tt.reason, err)
		})
	}
}

func TestCheckUsesRestaurantLocation(t *testing.T) {
	// 13:00 in UTC+2 is 11:00 UTC, one hour before fixedNow.
	loc := time.FixedZone("CEST", 2*60*60)
	v := NewReservationValidator(fixedClock, loc, OpeningHours{})
	table := models.Table{ID: 1, Seats: 2}

	err := v.Check(Candidate{Guests: 2, Date: "2025-06-01", Time: "13:00", TableID: 1}, table, nil, 0, fixedNow)
	assert.True(t, HasReason(err, ReasonPastDatetime))

	err = v.Check(Candidate{Guests: 2, Date: "2025-06-01", Time: "14:30", TableID: 1}, table, nil, 0, fixedNow)
	assert.NoError(t, err)
}

func TestOpeningHoursDisabled(t *testing.T) {
	assert.True(t, OpeningHours{}.Contains("03:00"))
	assert.True(t, OpeningHours{Open: 11, Close: 23}.Contains("22:59"))
	assert.False(t, OpeningHours{Open: 11, Close: 23}.Contains("nope"))
}

func TestValidateUnknownTable(t *testing.T) {
	db := setupTestDB(t)
	v := newTestValidator()

	_, err := v.Validate(context.Background(), db, Candidate{Guests: 2, Date: "2025-06-02", Time: "19:00", TableID: 99}, 0)
	require.Error(t, err)
	typed := AsServiceError(err)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code)
	assert.Equal(t, ReasonTableNotFound, typed.Reason)
}

func TestCandidateNormalize(t *testing.T) {
	c := Candidate{Name: "  Ana  ", Date: "2025-06-02", Time: "09:05"}.Normalize()
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "09:05", c.Time)

	bad := Candidate{Date: "junk", Time: "19:00"}.Normalize()
	assert.Equal(t, "junk", bad.Date)
}
