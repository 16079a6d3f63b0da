package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/littlelemon/models"
)

func TestTableServiceCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)
	ctx := context.Background()

	vip, err := svc.Create(ctx, TableInput{Name: "Mesa VIP", Seats: 10})
	require.NoError(t, err)
	assert.True(t, vip.Available)
	_, err = svc.Create(ctx, TableInput{Name: "Mesa 1", Seats: 2})
	require.NoError(t, err)

	tables, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mesa 1", "Mesa VIP"}, tableNames(tables))

	updated, err := svc.Update(ctx, vip.ID, TableInput{Name: "Mesa Terraza", Seats: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Seats)
	assert.True(t, updated.Available)

	_, err = svc.Get(ctx, 999)
	assert.True(t, HasReason(err, ReasonTableNotFound))
	_, err = svc.Update(ctx, 999, TableInput{Name: "x", Seats: 1})
	assert.True(t, HasReason(err, ReasonTableNotFound))
}

func TestDeleteTableCascadesToReservations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)
	ctx := context.Background()
	ana := seedUser(t, db, "Ana", models.RoleCustomer)
	ledger := newTestLedger(db)

	doomed, err := svc.Create(ctx, TableInput{Name: "Mesa 3", Seats: 4})
	require.NoError(t, err)
	kept, err := svc.Create(ctx, TableInput{Name: "Mesa 4", Seats: 4})
	require.NoError(t, err)

	for _, id := range []uint{doomed.ID, kept.ID} {
		_, err := ledger.Create(ctx, requesterFor(ana), Candidate{Guests: 2, Date: "2025-06-02", Time: "19:00", TableID: id})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, doomed.ID))

	var left []models.Reservation
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, kept.ID, left[0].TableID)

	assert.True(t, HasReason(svc.Delete(ctx, doomed.ID), ReasonTableNotFound))
}
