package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partner is a co-owner of stock who shares in sales and bears a share of damaged items.
type Partner struct {
	ID              int             `gorm:"primary_key" json:"id"`
	Name            string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Phone           string          `gorm:"size:20" json:"phone"`
	Email           string          `gorm:"size:100" json:"email"`
	Currency        string          `gorm:"size:3;not null;default:'ILS'" json:"currency"`
	OpeningBalance  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	SharePercentage decimal.Decimal `gorm:"type:decimal(7,4);default:0" json:"share_percentage"`
	CustomerId      *int            `gorm:"index" json:"customer_id"`
	IsActive        *bool           `gorm:"not null;default:true" json:"is_active"`
	LedgerState     `gorm:"embedded"`

	InventoryBalance         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"inventory_balance"`
	SalesShareBalance        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sales_share_balance"`
	ExpensesBalance          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"expenses_balance"`
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

func (p *Partner) SubjectType() SubjectType           { return SubjectTypePartner }
func (p *Partner) SubjectId() int                     { return p.ID }
func (p *Partner) GetName() string                    { return p.Name }
func (p *Partner) GetCurrency() string                { return p.Currency }
func (p *Partner) GetOpeningBalance() decimal.Decimal { return p.OpeningBalance }
func (p *Partner) LinkedCustomerId() *int             { return p.CustomerId }
func (p *Partner) Ledger() *LedgerState               { return &p.LedgerState }

func (p *Partner) ComponentFields() map[string]*decimal.Decimal {
	return map[string]*decimal.Decimal{
		"inventory_balance":           &p.InventoryBalance,
		"sales_share_balance":         &p.SalesShareBalance,
		"expenses_balance":            &p.ExpensesBalance,
		"returns_balance":             &p.ReturnsBalance,
		"sales_balance":               &p.SalesBalance,
		"invoices_balance":            &p.InvoicesBalance,
		"services_balance":            &p.ServicesBalance,
		"preorders_balance":           &p.PreordersBalance,
		"payments_in_balance":         &p.PaymentsInBalance,
		"payments_out_balance":        &p.PaymentsOutBalance,
		"checks_in_balance":           &p.ChecksInBalance,
		"checks_out_balance":          &p.ChecksOutBalance,
		"returned_checks_in_balance":  &p.ReturnedChecksInBalance,
		"returned_checks_out_balance": &p.ReturnedChecksOutBalance,
		"damaged_items_balance":       &p.DamagedItemsBalance,
		"settlements_balance":         &p.SettlementsBalance,
		"adjustments_balance":         &p.AdjustmentsBalance,
	}
}
