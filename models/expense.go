package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cost incurred with a supplier (purchase) or a partner.
type Expense struct {
	ID          int             `gorm:"primary_key" json:"id"`
	SupplierId  *int            `gorm:"index" json:"supplier_id"`
	PartnerId   *int            `gorm:"index" json:"partner_id"`
	ExpenseDate time.Time       `gorm:"not null" json:"expense_date"`
	Description string          `gorm:"size:255" json:"description"`
	Currency    string          `gorm:"size:3" json:"currency"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	IsCancelled bool            `gorm:"not null;default:false" json:"is_cancelled"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
