package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Phone          string          `gorm:"size:20" json:"phone"`
	Email          string          `gorm:"size:100" json:"email"`
	Currency       string          `gorm:"size:3;not null;default:'ILS'" json:"currency"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	IsActive       *bool           `gorm:"not null;default:true" json:"is_active"`
	LedgerState    `gorm:"embedded"`

	SalesBalance             decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sales_balance"`
	ReturnsBalance           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"returns_balance"`
	InvoicesBalance          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"invoices_balance"`
	ServicesBalance          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"services_balance"`
	PreordersBalance         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"preorders_balance"`
	OnlineOrdersBalance      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"online_orders_balance"`
	PaymentsInBalance        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"payments_in_balance"`
	PaymentsOutBalance       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"payments_out_balance"`
	ChecksInBalance          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"checks_in_balance"`
	ChecksOutBalance         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"checks_out_balance"`
	ReturnedChecksInBalance  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"returned_checks_in_balance"`
	ReturnedChecksOutBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"returned_checks_out_balance"`
	AdjustmentsBalance       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"adjustments_balance"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Customer) SubjectType() SubjectType           { return SubjectTypeCustomer }
func (c *Customer) SubjectId() int                     { return c.ID }
func (c *Customer) GetName() string                    { return c.Name }
func (c *Customer) GetCurrency() string                { return c.Currency }
func (c *Customer) GetOpeningBalance() decimal.Decimal { return c.OpeningBalance }
func (c *Customer) LinkedCustomerId() *int             { return nil }
func (c *Customer) Ledger() *LedgerState               { return &c.LedgerState }

func (c *Customer) ComponentFields() map[string]*decimal.Decimal {
	return map[string]*decimal.Decimal{
		"sales_balance":               &c.SalesBalance,
		"returns_balance":             &c.ReturnsBalance,
		"invoices_balance":            &c.InvoicesBalance,
		"services_balance":            &c.ServicesBalance,
		"preorders_balance":           &c.PreordersBalance,
		"online_orders_balance":       &c.OnlineOrdersBalance,
		"payments_in_balance":         &c.PaymentsInBalance,
		"payments_out_balance":        &c.PaymentsOutBalance,
		"checks_in_balance":           &c.ChecksInBalance,
		"checks_out_balance":          &c.ChecksOutBalance,
		"returned_checks_in_balance":  &c.ReturnedChecksInBalance,
		"returned_checks_out_balance": &c.ReturnedChecksOutBalance,
		"adjustments_balance":         &c.AdjustmentsBalance,
	}
}
