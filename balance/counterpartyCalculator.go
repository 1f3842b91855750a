package balance

import (
	"fmt"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
)

// counterparty computes suppliers and partners. Both see the documents of their proxy customer
// (sales, returns, services) next to the rows that carry their own FK.
func (r *run) counterparty(stakes StakeProvider) error {
	for _, step := range []func() error{
		r.sales,
		r.saleReturns,
		r.invoices,
		r.services,
		r.expenses,
		func() error { return r.stake(stakes) },
		r.manualChecks,
		r.adjustments,
	} {
		if err := step(); err != nil {
			return err
		}
	}
	covered, err := r.payments()
	if err != nil {
		return err
	}
	return r.preorders(covered)
}

// expenses: goods bought from a supplier, or costs a partner carried for us.
func (r *run) expenses() error {
	key := KeyPurchases
	if r.scope.kind == models.SubjectTypePartner {
		key = KeyExpenses
	}
	var rows []models.Expense
	err := r.db.Where(r.scope.kind.ForeignKey()+" = ?", r.scope.id).
		Where("is_cancelled = ?", false).
		Order("id").Find(&rows).Error
	if err != nil {
		return err
	}
	for _, e := range rows {
		r.add(key, e.Amount, e.Currency, e.ExpenseDate, fmt.Sprintf("expense #%d", e.ID))
	}
	return nil
}

func (r *run) stake(stakes StakeProvider) error {
	if stakes == nil {
		return nil
	}
	snap, err := stakes.Stake(r.ctx, r.scope.kind, r.scope.id)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}
	ref := fmt.Sprintf("stake snapshot #%d", snap.ID)
	r.add(KeyInventory, snap.InventoryValue, snap.Currency, snap.AsOf, ref)
	if r.scope.kind == models.SubjectTypePartner {
		r.add(KeySalesShare, snap.SalesShareValue, snap.Currency, snap.AsOf, ref)
	}
	r.add(KeyDamagedItems, snap.DamagedValue, snap.Currency, snap.AsOf, ref)
	r.add(KeySettlements, snap.SettledAmount, snap.Currency, snap.AsOf, ref)
	return nil
}
