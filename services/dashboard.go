package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/littlelemon/models"
)

type TableStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Held      int64 `json:"held"`
}

type ReservationStats struct {
	Today       int64 `json:"today"`
	GuestsToday int64 `json:"guests_today"`
	Upcoming    int64 `json:"upcoming"`
}

type DashboardStats struct {
	Date         string           `json:"date"`
	Tables       TableStats       `json:"table_stats"`
	Reservations ReservationStats `json:"reservation_stats"`
}

// Dashboard summarises today's floor in the restaurant's timezone.
func (l *ReservationLedger) Dashboard(ctx context.Context) (DashboardStats, error) {
	now := l.now()
	stats := DashboardStats{Date: now.In(l.location()).Format(DateLayout)}
	db := l.DB.WithContext(ctx)

	if err := db.Model(&models.Table{}).Count(&stats.Tables.Total).Error; err != nil {
		return stats, fmt.Errorf("count tables: %w", err)
	}
	if err := db.Model(&models.Table{}).Where("available = ?", true).Count(&stats.Tables.Available).Error; err != nil {
		return stats, fmt.Errorf("count available tables: %w", err)
	}
	stats.Tables.Held = stats.Tables.Total - stats.Tables.Available

	if err := db.Model(&models.Reservation{}).Where("booking_date = ?", stats.Date).Count(&stats.Reservations.Today).Error; err != nil {
		return stats, fmt.Errorf("count today's reservations: %w", err)
	}
	if err := db.Model(&models.Reservation{}).
		Where("booking_date = ?", stats.Date).
		Select("COALESCE(SUM(no_of_guest), 0)").
		Scan(&stats.Reservations.GuestsToday).Error; err != nil {
		return stats, fmt.Errorf("sum today's guests: %w", err)
	}
	if err := db.Model(&models.Reservation{}).
		Scopes(activeReservations(now, l.location())).
		Count(&stats.Reservations.Upcoming).Error; err != nil {
		return stats, fmt.Errorf("count upcoming reservations: %w", err)
	}
	return stats, nil
}
