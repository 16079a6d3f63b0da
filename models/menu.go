package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Menu struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category"`
	Title       string          `gorm:"type:varchar(100);not null" json:"title"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"type:varchar(255)" json:"image"`
	CreatedAt   time.Time       `gorm:"not null" json:"-"`
	UpdatedAt   time.Time       `gorm:"not null" json:"-"`
}
