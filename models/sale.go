package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID          int             `gorm:"primary_key" json:"id"`
	SaleNumber  string          `gorm:"size:50" json:"sale_number"`
	CustomerId  int             `gorm:"index;not null" json:"customer_id"`
	SaleDate    time.Time       `gorm:"not null" json:"sale_date"`
	Status      SaleStatus      `gorm:"size:20;index;not null;default:'DRAFT'" json:"status"`
	Currency    string          `gorm:"size:3" json:"currency"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type SaleReturn struct {
	ID          int              `gorm:"primary_key" json:"id"`
	SaleId      *int             `gorm:"index" json:"sale_id"`
	CustomerId  int              `gorm:"index;not null" json:"customer_id"`
	ReturnDate  time.Time        `gorm:"not null" json:"return_date"`
	Status      SaleReturnStatus `gorm:"size:20;index;not null;default:'DRAFT'" json:"status"`
	Currency    string           `gorm:"size:3" json:"currency"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}
