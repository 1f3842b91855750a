package workflow

import (
	"context"
	"testing"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.MigrateTable(db))
	return db
}

func create(t *testing.T, db *gorm.DB, rows ...interface{}) {
	t.Helper()
	for _, r := range rows {
		require.NoError(t, db.Create(r).Error)
	}
}

func intPtr(i int) *int {
	return &i
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	c := &models.Customer{Name: name, Currency: "ILS"}
	create(t, db, c)
	return c
}

func confirmedSale(t *testing.T, db *gorm.DB, customerId int, amount string) *models.Sale {
	t.Helper()
	s := &models.Sale{
		CustomerId:  customerId,
		SaleDate:    testDate,
		Status:      models.SaleStatusConfirmed,
		Currency:    "ILS",
		TotalAmount: dec(amount),
	}
	create(t, db, s)
	return s
}

func storedBalance(t *testing.T, db *gorm.DB, kind models.SubjectType, id int) decimal.Decimal {
	t.Helper()
	s, err := models.FetchSubject(context.Background(), db, kind, id)
	require.NoError(t, err)
	return s.Ledger().CurrentBalance
}
