package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/littlelemon/models"
	"gorm.io/gorm"
)

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// FindAvailable lists tables flagged available that seat at least minCapacity
// guests and hold no reservation on the given slot, smallest first.
func (s *AvailabilityService) FindAvailable(ctx context.Context, date, clock string, minCapacity int) ([]models.Table, error) {
	if minCapacity < 1 {
		return nil, validationError(ReasonInvalidRequest, "guests must be at least 1")
	}
	date, clock, err := NormalizeSlot(date, clock)
	if err != nil {
		return nil, validationError(ReasonInvalidRequest, err.Error())
	}

	tables := []models.Table{}
	booked := s.DB.Model(&models.Reservation{}).
		Select("1").
		Where("reservations.table_id = tables.id AND reservations.booking_date = ? AND reservations.booking_time = ?", date, clock)
	if err := s.DB.WithContext(ctx).
		Where("available = ? AND no_of_seats >= ?", true, minCapacity).
		Where("NOT EXISTS (?)", booked).
		Order("no_of_seats ASC, id ASC").
		Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("find available tables: %w", err)
	}
	return tables, nil
}

// ListFlaggedAvailable returns the tables whose flag currently reads available.
func (s *AvailabilityService) ListFlaggedAvailable(ctx context.Context) ([]models.Table, error) {
	tables := []models.Table{}
	if err := s.DB.WithContext(ctx).
		Where("available = ?", true).
		Order("no_of_seats ASC, id ASC").
		Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list available tables: %w", err)
	}
	return tables, nil
}
