package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice may be issued to a customer, a supplier or a partner; at most one FK is set.
type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	InvoiceNumber string          `gorm:"size:50" json:"invoice_number"`
	CustomerId    *int            `gorm:"index" json:"customer_id"`
	SupplierId    *int            `gorm:"index" json:"supplier_id"`
	PartnerId     *int            `gorm:"index" json:"partner_id"`
	InvoiceDate   time.Time       `gorm:"not null" json:"invoice_date"`
	Status        InvoiceStatus   `gorm:"size:20;index;not null;default:'UNPAID'" json:"status"`
	Currency      string          `gorm:"size:3" json:"currency"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
