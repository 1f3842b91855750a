package balance

import (
	"sort"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/shopspring/decimal"
)

// Component keys. Each is also the column caching it on the subject row.
const (
	KeySales             = "sales_balance"
	KeyReturns           = "returns_balance"
	KeyInvoices          = "invoices_balance"
	KeyServices          = "services_balance"
	KeyPreorders         = "preorders_balance"
	KeyOnlineOrders      = "online_orders_balance"
	KeyPaymentsIn        = "payments_in_balance"
	KeyPaymentsOut       = "payments_out_balance"
	KeyChecksIn          = "checks_in_balance"
	KeyChecksOut         = "checks_out_balance"
	KeyReturnedChecksIn  = "returned_checks_in_balance"
	KeyReturnedChecksOut = "returned_checks_out_balance"
	KeyAdjustments       = "adjustments_balance"
	KeyPurchases         = "purchases_balance"
	KeyInventory         = "inventory_balance"
	KeySalesShare        = "sales_share_balance"
	KeyExpenses          = "expenses_balance"
	KeyDamagedItems      = "damaged_items_balance"
	KeySettlements       = "settlements_balance"
)

// KeyOpeningBalance marks an opening balance that could not be converted in Components.Incomplete.
const KeyOpeningBalance = "opening_balance"

var customerRights = []string{
	KeyReturns, KeyPaymentsIn, KeyChecksIn, KeyReturnedChecksOut, KeyAdjustments,
}

var customerObligations = []string{
	KeySales, KeyInvoices, KeyServices, KeyPreorders, KeyOnlineOrders,
	KeyPaymentsOut, KeyChecksOut, KeyReturnedChecksIn,
}

var supplierRights = []string{
	KeyPurchases, KeyInventory, KeyReturns, KeyPaymentsIn, KeyChecksIn,
	KeyReturnedChecksOut, KeyAdjustments,
}

// payments_out is an obligation here although the component table lists it as a supplier and
// partner right ("we paid them, reducing what we owe"). A positive balance is owed to them, so
// reducing it means subtracting. Listing it as a right would raise the balance on every payment.
var counterpartyObligations = []string{
	KeySales, KeyInvoices, KeyServices, KeyPreorders, KeyPaymentsOut, KeyChecksOut,
	KeyReturnedChecksIn, KeyDamagedItems, KeySettlements,
}

var partnerRights = []string{
	KeyInventory, KeySalesShare, KeyExpenses, KeyReturns, KeyPaymentsIn, KeyChecksIn,
	KeyReturnedChecksOut, KeyAdjustments,
}

// Partition returns the rights and obligation keys of kind. Callers must not modify the slices.
func Partition(kind models.SubjectType) (rights []string, obligations []string) {
	switch kind {
	case models.SubjectTypeCustomer:
		return customerRights, customerObligations
	case models.SubjectTypeSupplier:
		return supplierRights, counterpartyObligations
	case models.SubjectTypePartner:
		return partnerRights, counterpartyObligations
	}
	return nil, nil
}

// ComponentKeys lists every component of kind, sorted.
func ComponentKeys(kind models.SubjectType) []string {
	rights, obligations := Partition(kind)
	keys := make([]string, 0, len(rights)+len(obligations))
	keys = append(keys, rights...)
	keys = append(keys, obligations...)
	sort.Strings(keys)
	return keys
}

// Components is one calculator run: every component of the subject's kind, in ledger currency.
type Components struct {
	Kind      models.SubjectType
	SubjectId int

	Values map[string]decimal.Decimal
	// Incomplete marks components holding at least one amount that could not be converted.
	Incomplete map[string]bool
	Warnings   []string

	// OpeningBalance is in ledger currency; the original amount and currency are kept for display.
	OpeningBalance  decimal.Decimal
	OpeningOriginal decimal.Decimal
	OpeningCurrency string
}

func newComponents(kind models.SubjectType, id int) *Components {
	c := &Components{
		Kind:       kind,
		SubjectId:  id,
		Values:     map[string]decimal.Decimal{},
		Incomplete: map[string]bool{},
	}
	for _, k := range ComponentKeys(kind) {
		c.Values[k] = decimal.Zero
	}
	return c
}

func (c *Components) add(key string, amount decimal.Decimal) {
	c.Values[key] = c.Values[key].Add(amount)
}

func (c *Components) warn(key string, msg string) {
	c.Incomplete[key] = true
	c.Warnings = append(c.Warnings, msg)
}

// Get returns the value of key, zero when the kind has no such component.
func (c *Components) Get(key string) decimal.Decimal {
	return c.Values[key]
}

// IsIncomplete is true when any amount (opening balance included) was left unconverted.
func (c *Components) IsIncomplete() bool {
	for _, v := range c.Incomplete {
		if v {
			return true
		}
	}
	return false
}

// finalize rounds every value to money scale.
func (c *Components) finalize() {
	for k, v := range c.Values {
		c.Values[k] = utils.RoundMoney(v)
	}
	c.OpeningBalance = utils.RoundMoney(c.OpeningBalance)
}
