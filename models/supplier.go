package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Phone          string          `gorm:"size:20" json:"phone"`
	Email          string          `gorm:"size:100" json:"email"`
	Currency       string          `gorm:"size:3;not null;default:'ILS'" json:"currency"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	// CustomerId links the customer row used when this supplier buys from us.
	CustomerId  *int  `gorm:"index" json:"customer_id"`
	IsActive    *bool `gorm:"not null;default:true" json:"is_active"`
	LedgerState `gorm:"embedded"`

	PurchasesBalance         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"purchases_balance"`
	InventoryBalance         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"inventory_balance"`
	ReturnsBalance           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"returns_balance"`
	SalesBalance             decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sales_balance"`
	InvoicesBalance          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"invoices_balance"`
	ServicesBalance          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"services_balance"`
	PreordersBalance         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"preorders_balance"`
	PaymentsInBalance        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"payments_in_balance"`
	PaymentsOutBalance       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"payments_out_balance"`
	ChecksInBalance          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"checks_in_balance"`
	ChecksOutBalance         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"checks_out_balance"`
	ReturnedChecksInBalance  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"returned_checks_in_balance"`
	ReturnedChecksOutBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"returned_checks_out_balance"`
	DamagedItemsBalance      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"damaged_items_balance"`
	SettlementsBalance       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"settlements_balance"`
	AdjustmentsBalance       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"adjustments_balance"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Supplier) SubjectType() SubjectType           { return SubjectTypeSupplier }
func (s *Supplier) SubjectId() int                     { return s.ID }
func (s *Supplier) GetName() string                    { return s.Name }
func (s *Supplier) GetCurrency() string                { return s.Currency }
func (s *Supplier) GetOpeningBalance() decimal.Decimal { return s.OpeningBalance }
func (s *Supplier) LinkedCustomerId() *int             { return s.CustomerId }
func (s *Supplier) Ledger() *LedgerState               { return &s.LedgerState }

func (s *Supplier) ComponentFields() map[string]*decimal.Decimal {
	return map[string]*decimal.Decimal{
		"purchases_balance":           &s.PurchasesBalance,
		"inventory_balance":           &s.InventoryBalance,
		"returns_balance":             &s.ReturnsBalance,
		"sales_balance":               &s.SalesBalance,
		"invoices_balance":            &s.InvoicesBalance,
		"services_balance":            &s.ServicesBalance,
		"preorders_balance":           &s.PreordersBalance,
		"payments_in_balance":         &s.PaymentsInBalance,
		"payments_out_balance":        &s.PaymentsOutBalance,
		"checks_in_balance":           &s.ChecksInBalance,
		"checks_out_balance":          &s.ChecksOutBalance,
		"returned_checks_in_balance":  &s.ReturnedChecksInBalance,
		"returned_checks_out_balance": &s.ReturnedChecksOutBalance,
		"damaged_items_balance":       &s.DamagedItemsBalance,
		"settlements_balance":         &s.SettlementsBalance,
		"adjustments_balance":         &s.AdjustmentsBalance,
	}
}
