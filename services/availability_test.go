package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/littlelemon/models"
)

func tableNames(tables []models.Table) []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	return names
}

func TestFindAvailable(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, "Mesa 1", 2)
	mesa3 := seedTable(t, db, "Mesa 3", 4)
	seedTable(t, db, "Mesa 4", 4)
	seedTable(t, db, "Mesa 7", 8)
	closed := seedTable(t, db, "Mesa 5", 6)
	require.NoError(t, db.Model(&models.Table{}).Where("id = ?", closed.ID).Update("available", false).Error)

	// Mesa 3 still reads available; only the slot check excludes it.
	booked := models.Reservation{Name: "Ana", Guests: 2, BookingDate: "2025-06-02", BookingTime: "19:00", TableID: mesa3.ID}
	require.NoError(t, db.Omit("Table", "Owner").Create(&booked).Error)

	svc := NewAvailabilityService(db)

	tables, err := svc.FindAvailable(context.Background(), "2025-06-02", "19:00", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mesa 4", "Mesa 7"}, tableNames(tables))

	tables, err = svc.FindAvailable(context.Background(), "2025-06-02", "20:00", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mesa 3", "Mesa 4", "Mesa 7"}, tableNames(tables))

	tables, err = svc.FindAvailable(context.Background(), "2025-06-02", "19:00", 12)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestFindAvailableRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAvailabilityService(db)

	_, err := svc.FindAvailable(context.Background(), "02/06/2025", "19:00", 2)
	assert.True(t, HasReason(err, ReasonInvalidRequest))

	_, err = svc.FindAvailable(context.Background(), "2025-06-02", "late", 2)
	assert.True(t, HasReason(err, ReasonInvalidRequest))

	_, err = svc.FindAvailable(context.Background(), "2025-06-02", "19:00", 0)
	assert.True(t, HasReason(err, ReasonInvalidRequest))
}

func TestListFlaggedAvailable(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, "Mesa 7", 8)
	seedTable(t, db, "Mesa 1", 2)
	busy := seedTable(t, db, "Mesa 3", 4)
	require.NoError(t, db.Model(&models.Table{}).Where("id = ?", busy.ID).Update("available", false).Error)

	tables, err := NewAvailabilityService(db).ListFlaggedAvailable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Mesa 1", "Mesa 7"}, tableNames(tables))
}
