package models

import "time"

// Table is a bookable dining table. Available is a cache of "has no active
// reservations" and is only written by services.TableState.
type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Seats     int       `gorm:"column:no_of_seats;not null;default:0" json:"no_of_seats"`
	Available bool      `gorm:"not null" json:"available"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}
