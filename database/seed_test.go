package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLoggerWithLevel("error")
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestMigrateCreatesSlotIndex(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.Reservation{}))
	assert.True(t, db.Migrator().HasIndex(&models.Reservation{}, "idx_reservation_slot"))
	assert.True(t, db.Migrator().HasColumn(&models.Reservation{}, "owner_id"))

	// idempotent
	require.NoError(t, Migrate(db))
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var categories, tables, menus, users int64
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.Table{}).Count(&tables)
	db.Model(&models.Menu{}).Count(&menus)
	db.Model(&models.User{}).Count(&users)
	assert.EqualValues(t, 5, categories)
	assert.EqualValues(t, 8, tables)
	assert.EqualValues(t, 17, menus)
	assert.EqualValues(t, 1, users)

	var vip models.Table
	require.NoError(t, db.Where("name = ?", "Mesa VIP").First(&vip).Error)
	assert.Equal(t, 10, vip.Seats)
	assert.True(t, vip.Available)

	var demo models.User
	require.NoError(t, db.Where("email = ?", "demo@littlelemon.com").First(&demo).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(demo.Password), []byte("demo123")))
	assert.Equal(t, models.RoleCustomer, demo.Role)
}
