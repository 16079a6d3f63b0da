package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/littlelemon/models"
	"gorm.io/gorm"
)

// TableState owns the Table.Available flag. Its methods take the caller's
// transaction so the flag is written together with the reservation row that
// justifies it; the ledger and its reconciler are the only callers.
type TableState struct{}

func (TableState) MarkUnavailable(tx *gorm.DB, tableID uint) error {
	return setAvailable(tx, tableID, false)
}

func (TableState) MarkAvailable(tx *gorm.DB, tableID uint) error {
	return setAvailable(tx, tableID, true)
}

// Refresh recomputes the flag for one table: available iff it holds no
// reservation that is still active at now. It reports the resulting flag and
// whether it had to change.
func (s TableState) Refresh(tx *gorm.DB, table models.Table, now time.Time, loc *time.Location) (bool, bool, error) {
	var active int64
	if err := tx.Model(&models.Reservation{}).
		Where("table_id = ?", table.ID).
		Scopes(activeReservations(now, loc)).
		Count(&active).Error; err != nil {
		return table.Available, false, fmt.Errorf("count active reservations for table %d: %w", table.ID, err)
	}

	want := active == 0
	if want == table.Available {
		return want, false, nil
	}
	if want {
		if err := s.MarkAvailable(tx, table.ID); err != nil {
			return table.Available, false, err
		}
	} else {
		if err := s.MarkUnavailable(tx, table.ID); err != nil {
			return table.Available, false, err
		}
	}
	return want, true, nil
}

func setAvailable(tx *gorm.DB, tableID uint, available bool) error {
	if err := tx.Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("available", available).Error; err != nil {
		return fmt.Errorf("set table %d available=%t: %w", tableID, available, err)
	}
	return nil
}
