package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceAdjustment is a manual correction. Positive amounts are in the subject's favor.
type BalanceAdjustment struct {
	ID             int             `gorm:"primary_key" json:"id"`
	SubjectType    SubjectType     `gorm:"size:20;not null;index:idx_adjustment_subject" json:"subject_type"`
	SubjectId      int             `gorm:"not null;index:idx_adjustment_subject" json:"subject_id"`
	AdjustmentDate time.Time       `gorm:"not null" json:"adjustment_date"`
	Currency       string          `gorm:"size:3" json:"currency"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Reason         string          `gorm:"type:text" json:"reason"`
	CreatedBy      int             `json:"created_by"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
