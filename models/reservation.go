package models

import "time"

// Reservation books one slot, the (TableID, BookingDate, BookingTime) triple.
// BookingDate is stored as YYYY-MM-DD and BookingTime as HH:MM so that the
// slot index compares identically on every driver.
type Reservation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     *uint     `gorm:"index" json:"owner_id,omitempty"`
	Owner       *User     `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Guests      int       `gorm:"column:no_of_guest;not null" json:"no_of_guest"`
	BookingDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_reservation_slot,priority:2" json:"booking_date"`
	BookingTime string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_reservation_slot,priority:3" json:"booking_time"`
	TableID     uint      `gorm:"not null;uniqueIndex:idx_reservation_slot,priority:1" json:"table_id"`
	Table       Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"table"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"-"`
}
