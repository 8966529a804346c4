package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "topup.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string, balance int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.UserModel{
		ID:      id,
		Email:   id + "@example.com",
		Balance: decimal.NewFromInt(balance),
	}).Error)
}

func seedOrder(t *testing.T, db *gorm.DB, id, userID string, amount int64, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.OrderModel{
		ID:        id,
		UserID:    userID,
		GatewayID: "gw-1",
		Amount:    decimal.NewFromInt(amount),
		Status:    domain.StatusPending,
		CreatedAt: createdAt,
	}).Error)
}

func balanceOf(t *testing.T, db *gorm.DB, userID string) decimal.Decimal {
	t.Helper()
	var user models.UserModel
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.Balance
}

func countTransactions(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.TransactionModel{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}
