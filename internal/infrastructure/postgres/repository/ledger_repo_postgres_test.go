//go:build integration

package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run with: TOPUP_TEST_POSTGRES_DSN=... go test -tags integration ./internal/infrastructure/postgres/repository/
func newPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TOPUP_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TOPUP_TEST_POSTGRES_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(16)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestLedgerRepository_CommitTopUp_ConcurrentPostgres(t *testing.T) {
	ctx := context.Background()
	db := newPostgresTestDB(t)
	ledger := NewDefaultLedgerRepository(db)

	userID := "it-" + uuid.NewString()
	orderID := "TRN-" + uuid.NewString()[:16]
	seedUser(t, db, userID, 0)
	seedOrder(t, db, orderID, userID, 500, time.Now())
	t.Cleanup(func() {
		db.Where("user_id = ?", userID).Delete(&models.TransactionModel{})
		db.Where("id = ?", orderID).Delete(&models.OrderModel{})
		db.Where("id = ?", userID).Delete(&models.UserModel{})
	})

	const deliveries = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan error, deliveries)
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := ledger.CommitTopUp(ctx, domain.TopUpCommit{OrderID: orderID, UserID: userID, Amount: decimal.NewFromInt(500)})
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrOrderNotPending)
	}
	require.Equal(t, 1, succeeded)
	require.True(t, decimal.NewFromInt(500).Equal(balanceOf(t, db, userID)))
	require.EqualValues(t, 1, countTransactions(t, db, userID))
}
