package services

import (
	"fmt"
	"testing"

	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))
	return db
}

func TestNextReceiptNumberSequence(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Setting{Key: models.SettingReceiptCounter, Value: "1000"}).Error)

	var issued []string
	for i := 0; i < 3; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			receiptNo, _, err := NextReceiptNumber(tx)
			if err != nil {
				return err
			}
			issued = append(issued, receiptNo)
			return nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"RCP-1001", "RCP-1002", "RCP-1003"}, issued)

	var setting models.Setting
	require.NoError(t, db.Where("key = ?", models.SettingReceiptCounter).First(&setting).Error)
	assert.Equal(t, "1003", setting.Value)
}

func TestNextReceiptNumberRollsBackWithCaller(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Setting{Key: models.SettingReceiptCounter, Value: "1000"}).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		receiptNo, next, err := NextReceiptNumber(tx)
		if err != nil {
			return err
		}
		assert.Equal(t, "RCP-1001", receiptNo)
		assert.Equal(t, 1001, next)
		// Simulate the dependent insert failing after the reservation.
		return fmt.Errorf("admission insert failed")
	})
	require.Error(t, err)

	// The counter must not have burned the number.
	var setting models.Setting
	require.NoError(t, db.Where("key = ?", models.SettingReceiptCounter).First(&setting).Error)
	assert.Equal(t, "1000", setting.Value)
}

func TestNextReceiptNumberMissingCounter(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := NextReceiptNumber(tx)
		return err
	})
	assert.Error(t, err)
}

func TestNextReceiptNumberGarbageCounter(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Setting{Key: models.SettingReceiptCounter, Value: "not-a-number"}).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := NextReceiptNumber(tx)
		return err
	})
	assert.Error(t, err)
}
