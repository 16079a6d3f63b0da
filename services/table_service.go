package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/littlelemon/models"
	"gorm.io/gorm"
)

// TableInput carries the editable table fields. Availability is not one of
// them.
type TableInput struct {
	Name  string `json:"name" binding:"required,max=100"`
	Seats int    `json:"no_of_seats" binding:"required,min=1,max=20"`
}

type TableService struct {
	DB *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db}
}

func (s *TableService) List(ctx context.Context) ([]models.Table, error) {
	tables := []models.Table{}
	if err := s.DB.WithContext(ctx).Order("no_of_seats ASC, name ASC").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (s *TableService) Get(ctx context.Context, id uint) (models.Table, error) {
	var table models.Table
	if err := s.DB.WithContext(ctx).First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return table, notFoundError(ReasonTableNotFound, fmt.Sprintf("table %d not found", id))
		}
		return table, fmt.Errorf("load table %d: %w", id, err)
	}
	return table, nil
}

// Create adds a table. New tables start available.
func (s *TableService) Create(ctx context.Context, in TableInput) (models.Table, error) {
	table := models.Table{Name: strings.TrimSpace(in.Name), Seats: in.Seats, Available: true}
	if err := s.DB.WithContext(ctx).Create(&table).Error; err != nil {
		return models.Table{}, fmt.Errorf("create table: %w", err)
	}
	return table, nil
}

// Update renames or resizes a table.
func (s *TableService) Update(ctx context.Context, id uint, in TableInput) (models.Table, error) {
	table, err := s.Get(ctx, id)
	if err != nil {
		return table, err
	}
	if err := s.DB.WithContext(ctx).Model(&table).Updates(map[string]interface{}{
		"name":        strings.TrimSpace(in.Name),
		"no_of_seats": in.Seats,
	}).Error; err != nil {
		return models.Table{}, fmt.Errorf("update table %d: %w", id, err)
	}
	table.Name = strings.TrimSpace(in.Name)
	table.Seats = in.Seats
	return table, nil
}

// Delete removes a table together with its reservations.
func (s *TableService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError(ReasonTableNotFound, fmt.Sprintf("table %d not found", id))
			}
			return fmt.Errorf("load table %d: %w", id, err)
		}
		if err := tx.Where("table_id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
			return fmt.Errorf("delete reservations of table %d: %w", id, err)
		}
		if err := tx.Delete(&table).Error; err != nil {
			return fmt.Errorf("delete table %d: %w", id, err)
		}
		return nil
	})
}
