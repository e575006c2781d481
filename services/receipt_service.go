package services

import (
	"fmt"
	"strconv"

	"github.com/akashpawar6363/sanjay-study-center/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NextReceiptNumber reserves the next sequential receipt number inside the
// caller's transaction. The counter row is locked for the duration of the
// transaction, so the reservation and the admission insert that depends on it
// commit or roll back together and two concurrent creates can never be issued
// the same number.
func NextReceiptNumber(tx *gorm.DB) (string, int, error) {
	query := tx.Where("key = ?", models.SettingReceiptCounter)
	// sqlite (used in tests) has no FOR UPDATE; its single-writer lock
	// serializes the transaction anyway.
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var setting models.Setting
	if err := query.First(&setting).Error; err != nil {
		return "", 0, fmt.Errorf("receipt counter not available: %w", err)
	}

	current, err := strconv.Atoi(setting.Value)
	if err != nil {
		return "", 0, fmt.Errorf("receipt counter %q is not an integer: %w", setting.Value, err)
	}

	next := current + 1
	setting.Value = strconv.Itoa(next)
	if err := tx.Save(&setting).Error; err != nil {
		return "", 0, fmt.Errorf("failed to advance receipt counter: %w", err)
	}

	return fmt.Sprintf("RCP-%d", next), next, nil
}
