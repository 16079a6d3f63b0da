package services

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/littlelemon/database"
	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow is 2025-06-01 12:00 UTC; every test date is relative to it.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestMain(m *testing.M) {
	utils.InitLoggerWithLevel("error")
	os.Exit(m.Run())
}

// setupTestDB opens a private in-memory database with the full schema. A
// single connection serialises transactions the way row locks would.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedTable(t *testing.T, db *gorm.DB, name string, seats int) models.Table {
	t.Helper()
	table := models.Table{Name: name, Seats: seats, Available: true}
	require.NoError(t, db.Create(&table).Error)
	return table
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: uuid.NewString() + "@littlelemon.test", Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func requesterFor(u models.User) Requester {
	return Requester{UserID: u.ID, Name: u.Name, Staff: u.IsStaff()}
}

func newTestLedger(db *gorm.DB) *ReservationLedger {
	v := NewReservationValidator(fixedClock, time.UTC, OpeningHours{Open: 11, Close: 23})
	return NewReservationLedger(db, v, nil, nil)
}

// recordingEvents captures ledger notifications.
type recordingEvents struct {
	created   []models.Reservation
	updated   []models.Reservation
	cancelled []models.Reservation
	tables    map[uint]bool
}

func newRecordingEvents() *recordingEvents {
	return &recordingEvents{tables: map[uint]bool{}}
}

func (r *recordingEvents) ReservationCreated(res models.Reservation) {
	r.created = append(r.created, res)
}

func (r *recordingEvents) ReservationUpdated(res models.Reservation) {
	r.updated = append(r.updated, res)
}

func (r *recordingEvents) ReservationCancelled(res models.Reservation) {
	r.cancelled = append(r.cancelled, res)
}

func (r *recordingEvents) TableAvailabilityChanged(tableID uint, available bool) {
	r.tables[tableID] = available
}
