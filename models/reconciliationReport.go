package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceDriftReport is one finding of the drift sweep (nightly/admin-triggered):
// a subject whose stored balance disagrees with a fresh computation.
type BalanceDriftReport struct {
	ID            int             `gorm:"primary_key" json:"id"`
	SubjectType   SubjectType     `gorm:"size:20;index;not null" json:"subject_type"`
	SubjectId     int             `gorm:"index;not null" json:"subject_id"`
	Stored        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"stored"`
	Computed      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"computed"`
	Difference    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"difference"`
	Fixed         bool            `gorm:"not null;default:false" json:"fixed"`
	Details       string          `gorm:"type:text" json:"details"` // human-readable mismatch detail
	CorrelationId string          `gorm:"size:64;index" json:"correlation_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
