package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/littlelemon/models"
)

func TestGetAllTables(t *testing.T) {
	app := setupApp(t)
	app.table(t, "Mesa VIP", 10)
	app.table(t, "Mesa 1", 2)

	w := app.do(t, http.MethodGet, "/tables", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, "List of tables", env.Message)

	var tables []models.Table
	require.NoError(t, json.Unmarshal(env.Data, &tables))
	require.Len(t, tables, 2)
	assert.Equal(t, "Mesa 1", tables[0].Name)
	assert.Equal(t, 2, tables[0].Seats)
}

func TestFindAvailableTables(t *testing.T) {
	app := setupApp(t)
	mesa3 := app.table(t, "Mesa 3", 4)
	app.table(t, "Mesa 1", 2)
	app.table(t, "Mesa 7", 8)
	_, token := app.user(t, "Ana", models.RoleCustomer)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/reservations", token, booking(mesa3.ID, 2, "2025-06-02", "19:00")).Code)

	type result struct {
		Available bool `json:"available"`
		Tables    []struct {
			ID       uint   `json:"id"`
			Name     string `json:"name"`
			Capacity int    `json:"capacity"`
		} `json:"tables"`
		Message string `json:"message"`
	}

	w := app.do(t, http.MethodGet, "/tables/available?date=2025-06-02&time=19:00&guests=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got result
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.True(t, got.Available)
	require.Len(t, got.Tables, 1)
	assert.Equal(t, "Mesa 7", got.Tables[0].Name)
	assert.Equal(t, 8, got.Tables[0].Capacity)

	w = app.do(t, http.MethodGet, "/tables/available?date=2025-06-02&time=19:00&guests=12", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.False(t, got.Available)
	assert.Empty(t, got.Tables)

	w = app.do(t, http.MethodGet, "/tables/available?date=2025-06-02", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/tables/available?date=junk&time=19:00&guests=2", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w).Reason)

	// no query: tables whose flag reads available
	w = app.do(t, http.MethodGet, "/tables/available", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var flagged []models.Table
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &flagged))
	assert.Len(t, flagged, 2)
}

func TestAdminTableCRUD(t *testing.T) {
	app := setupApp(t)
	_, staffToken := app.user(t, "Host", models.RoleStaff)

	w := app.do(t, http.MethodPost, "/admin/tables", staffToken, map[string]interface{}{"name": "Mesa Terraza", "no_of_seats": 6})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var table models.Table
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &table))
	assert.True(t, table.Available)

	// availability is not part of the editable fields
	w = app.do(t, http.MethodPatch, fmt.Sprintf("/admin/tables/%d", table.ID), staffToken,
		map[string]interface{}{"name": "Mesa Terraza", "no_of_seats": 4, "available": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, app.db.First(&table, table.ID).Error)
	assert.Equal(t, 4, table.Seats)
	assert.True(t, table.Available)

	w = app.do(t, http.MethodPost, "/admin/tables", staffToken, map[string]interface{}{"name": "Mesa X", "no_of_seats": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodDelete, fmt.Sprintf("/admin/tables/%d", table.ID), staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodGet, fmt.Sprintf("/tables/%d", table.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminDashboardAndReconcile(t *testing.T) {
	app := setupApp(t)
	mesa3 := app.table(t, "Mesa 3", 4)
	stale := app.table(t, "Mesa 1", 2)
	require.NoError(t, app.db.Model(&models.Table{}).Where("id = ?", stale.ID).Update("available", false).Error)
	_, token := app.user(t, "Ana", models.RoleCustomer)
	_, staffToken := app.user(t, "Host", models.RoleStaff)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/reservations", token, booking(mesa3.ID, 3, "2025-06-01", "20:00")).Code)

	w := app.do(t, http.MethodGet, "/admin/dashboard/stats", staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Date   string `json:"date"`
		Tables struct {
			Total     int `json:"total"`
			Available int `json:"available"`
		} `json:"table_stats"`
		Reservations struct {
			Today       int `json:"today"`
			GuestsToday int `json:"guests_today"`
			Upcoming    int `json:"upcoming"`
		} `json:"reservation_stats"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Equal(t, "2025-06-01", stats.Date)
	assert.Equal(t, 2, stats.Tables.Total)
	assert.Equal(t, 0, stats.Tables.Available)
	assert.Equal(t, 1, stats.Reservations.Today)
	assert.Equal(t, 3, stats.Reservations.GuestsToday)
	assert.Equal(t, 1, stats.Reservations.Upcoming)

	w = app.do(t, http.MethodPost, "/admin/tables/reconcile", staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Repaired []models.Table `json:"repaired"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &out))
	require.Len(t, out.Repaired, 1)
	assert.Equal(t, stale.ID, out.Repaired[0].ID)
	assert.True(t, out.Repaired[0].Available)
}
