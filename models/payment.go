package models

import (
	"strings"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/shopspring/decimal"
)

// Payment may reach its subject directly (customer_id/supplier_id/partner_id) or through the
// document it settles (sale/invoice/service/preorder/expense). Both paths can point at the
// same subject.
type Payment struct {
	ID            int              `gorm:"primary_key" json:"id"`
	PaymentNumber string           `gorm:"size:50" json:"payment_number"`
	Direction     PaymentDirection `gorm:"size:3;index;not null" json:"direction"`
	Status        PaymentStatus    `gorm:"size:20;index;not null;default:'PENDING'" json:"status"`
	Method        PaymentMethod    `gorm:"size:20;not null;default:'CASH'" json:"method"`
	Currency      string           `gorm:"size:3" json:"currency"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	PaymentDate   time.Time        `gorm:"not null" json:"payment_date"`
	CustomerId    *int             `gorm:"index" json:"customer_id"`
	SupplierId    *int             `gorm:"index" json:"supplier_id"`
	PartnerId     *int             `gorm:"index" json:"partner_id"`
	SaleId        *int             `gorm:"index" json:"sale_id"`
	InvoiceId     *int             `gorm:"index" json:"invoice_id"`
	ServiceId     *int             `gorm:"index" json:"service_id"`
	PreorderId    *int             `gorm:"index" json:"preorder_id"`
	ExpenseId     *int             `gorm:"index" json:"expense_id"`
	Notes         string           `gorm:"type:text" json:"notes"`
	Splits        []PaymentSplit   `gorm:"foreignKey:PaymentId" json:"splits"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// PaymentSplit is one method/currency slice of a mixed payment.
// ConvertedAmount, when set, is the slice already expressed in ConvertedCurrency.
type PaymentSplit struct {
	ID                int             `gorm:"primary_key" json:"id"`
	PaymentId         int             `gorm:"index;not null" json:"payment_id"`
	Method            PaymentMethod   `gorm:"size:20;not null" json:"method"`
	Amount            decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Currency          string          `gorm:"size:3" json:"currency"`
	ConvertedAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"converted_amount"`
	ConvertedCurrency string          `gorm:"size:3" json:"converted_currency"`
	Details           string          `gorm:"type:text" json:"details"` // JSON: check_number, check_status, converted_amount, ...
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// SplitDetails is the subset of split metadata the balance engine reads.
type SplitDetails struct {
	CheckNumber       string      `json:"check_number"`
	CheckStatus       string      `json:"check_status"`
	ConvertedAmount   interface{} `json:"converted_amount"`
	ConvertedCurrency string      `json:"converted_currency"`
}

// ParsedDetails decodes Details; empty or malformed metadata yields a zero value.
func (s PaymentSplit) ParsedDetails() SplitDetails {
	var d SplitDetails
	raw := strings.TrimSpace(s.Details)
	if raw == "" {
		return d
	}
	if err := utils.UnmarshalFromJSON([]byte(raw), &d); err != nil {
		return SplitDetails{}
	}
	return d
}

// DetailsCheckStatus is the check status recorded in the split metadata, upper-cased.
func (s PaymentSplit) DetailsCheckStatus() CheckStatus {
	return CheckStatus(strings.ToUpper(strings.TrimSpace(s.ParsedDetails().CheckStatus)))
}

// ConvertedOverride returns the pre-converted amount and its currency, if the split carries one.
// The column wins over metadata.
func (s PaymentSplit) ConvertedOverride() (decimal.Decimal, string, bool) {
	if s.ConvertedAmount.IsPositive() && s.ConvertedCurrency != "" {
		return s.ConvertedAmount, strings.ToUpper(s.ConvertedCurrency), true
	}
	d := s.ParsedDetails()
	if d.ConvertedAmount == nil || d.ConvertedCurrency == "" {
		return decimal.Zero, "", false
	}
	amt, err := utils.ParseLooseDecimal(d.ConvertedAmount)
	if err != nil || !amt.IsPositive() {
		return decimal.Zero, "", false
	}
	return amt, strings.ToUpper(d.ConvertedCurrency), true
}

// IsChequeBearing is true when the payment or any of its splits is a cheque.
func (p Payment) IsChequeBearing() bool {
	if p.Method.IsCheque() {
		return true
	}
	for _, s := range p.Splits {
		if s.Method.IsCheque() {
			return true
		}
	}
	return false
}
