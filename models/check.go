package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Check is a paper cheque. Checks created for a payment carry PaymentId (and PaymentSplitId for
// a split); manual checks carry neither and belong to their subject directly.
type Check struct {
	ID             int              `gorm:"primary_key" json:"id"`
	CheckNumber    string           `gorm:"size:50" json:"check_number"`
	BankName       string           `gorm:"size:100" json:"bank_name"`
	PaymentId      *int             `gorm:"index" json:"payment_id"`
	PaymentSplitId *int             `gorm:"index" json:"payment_split_id"`
	CustomerId     *int             `gorm:"index" json:"customer_id"`
	SupplierId     *int             `gorm:"index" json:"supplier_id"`
	PartnerId      *int             `gorm:"index" json:"partner_id"`
	Direction      PaymentDirection `gorm:"size:3;index;not null" json:"direction"`
	Status         CheckStatus      `gorm:"size:20;index;not null;default:'PENDING'" json:"status"`
	Currency       string           `gorm:"size:3" json:"currency"`
	Amount         decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CheckDate      time.Time        `gorm:"not null" json:"check_date"`
	DueDate        *time.Time       `json:"due_date"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}
