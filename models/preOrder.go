package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PreOrder reserves goods ahead of delivery. Its value is booked by the Sale created on
// fulfilment; until then only PrepaidAmount moves the owner's balance.
type PreOrder struct {
	ID            int             `gorm:"primary_key" json:"id"`
	CustomerId    *int            `gorm:"index" json:"customer_id"`
	SupplierId    *int            `gorm:"index" json:"supplier_id"`
	PartnerId     *int            `gorm:"index" json:"partner_id"`
	PreorderDate  time.Time       `gorm:"not null" json:"preorder_date"`
	Status        PreOrderStatus  `gorm:"size:20;index;not null;default:'PENDING'" json:"status"`
	Currency      string          `gorm:"size:3" json:"currency"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	PrepaidAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"prepaid_amount"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type OnlinePreOrder struct {
	ID          int             `gorm:"primary_key" json:"id"`
	OrderNumber string          `gorm:"size:50" json:"order_number"`
	CustomerId  int             `gorm:"index;not null" json:"customer_id"`
	OrderDate   time.Time       `gorm:"not null" json:"order_date"`
	Status      PreOrderStatus  `gorm:"size:20;index;not null;default:'PENDING'" json:"status"`
	Currency    string          `gorm:"size:3" json:"currency"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
