package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceRequest struct {
	ID            int             `gorm:"primary_key" json:"id"`
	ServiceNumber string          `gorm:"size:50" json:"service_number"`
	CustomerId    int             `gorm:"index;not null" json:"customer_id"`
	ReceivedAt    time.Time       `gorm:"not null" json:"received_at"`
	Status        ServiceStatus   `gorm:"size:20;index;not null;default:'PENDING'" json:"status"`
	Currency      string          `gorm:"size:3" json:"currency"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
