package models

import (
	"gorm.io/gorm"
)

// MigrateTable creates/updates every table the balance engine reads or writes.
func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&Customer{}, &Supplier{}, &Partner{},
		&Sale{}, &SaleReturn{}, &Invoice{}, &ServiceRequest{},
		&PreOrder{}, &OnlinePreOrder{},
		&Payment{}, &PaymentSplit{}, &Check{}, &Expense{},
		&BalanceAdjustment{}, &ExchangeRate{}, &StakeSnapshot{},
		&BalanceDriftReport{}, &IdempotencyKey{},
	)
}
