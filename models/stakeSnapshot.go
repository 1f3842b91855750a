package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StakeSnapshot is published by the inventory/settlement services: what a supplier's or
// partner's stake in our stock, sales and damages is worth as of a date.
type StakeSnapshot struct {
	ID              int             `gorm:"primary_key" json:"id"`
	SubjectType     SubjectType     `gorm:"size:20;not null;index:idx_stake_subject" json:"subject_type"`
	SubjectId       int             `gorm:"not null;index:idx_stake_subject" json:"subject_id"`
	InventoryValue  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"inventory_value"`
	SalesShareValue decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sales_share_value"`
	DamagedValue    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"damaged_value"`
	SettledAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"settled_amount"`
	Currency        string          `gorm:"size:3" json:"currency"`
	AsOf            time.Time       `gorm:"not null;index" json:"as_of"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// LatestStakeSnapshot returns the newest snapshot for a subject, or nil when none was published.
func LatestStakeSnapshot(ctx context.Context, db *gorm.DB, kind SubjectType, id int) (*StakeSnapshot, error) {
	var snap StakeSnapshot
	err := db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ?", kind, id).
		Order("as_of DESC").Order("id DESC").
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
