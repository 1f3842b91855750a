package balance

import (
	"fmt"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
)

func (r *run) customer() error {
	for _, step := range []func() error{
		r.sales,
		r.saleReturns,
		r.invoices,
		r.services,
		r.onlineOrders,
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

func (r *run) sales() error {
	q, ok := r.scope.customerOwned(r.db.Model(&models.Sale{}))
	if !ok {
		return nil
	}
	var rows []models.Sale
	if err := q.Where("status = ?", models.SaleStatusConfirmed).Order("id").Find(&rows).Error; err != nil {
		return err
	}
	for _, s := range rows {
		r.add(KeySales, s.TotalAmount, s.Currency, s.SaleDate, fmt.Sprintf("sale #%d", s.ID))
	}
	return nil
}

func (r *run) saleReturns() error {
	q, ok := r.scope.customerOwned(r.db.Model(&models.SaleReturn{}))
	if !ok {
		return nil
	}
	var rows []models.SaleReturn
	if err := q.Where("status = ?", models.SaleReturnStatusConfirmed).Order("id").Find(&rows).Error; err != nil {
		return err
	}
	for _, s := range rows {
		r.add(KeyReturns, s.TotalAmount, s.Currency, s.ReturnDate, fmt.Sprintf("sale return #%d", s.ID))
	}
	return nil
}

func (r *run) invoices() error {
	var rows []models.Invoice
	err := r.scope.owned(r.db.Model(&models.Invoice{})).
		Where("status NOT IN ?", []models.InvoiceStatus{models.InvoiceStatusCancelled, models.InvoiceStatusRefunded}).
		Order("id").Find(&rows).Error
	if err != nil {
		return err
	}
	for _, inv := range rows {
		r.add(KeyInvoices, inv.TotalAmount, inv.Currency, inv.InvoiceDate, fmt.Sprintf("invoice #%d", inv.ID))
	}
	return nil
}

func (r *run) services() error {
	q, ok := r.scope.customerOwned(r.db.Model(&models.ServiceRequest{}))
	if !ok {
		return nil
	}
	var rows []models.ServiceRequest
	if err := q.Where("status <> ?", models.ServiceStatusCancelled).Order("id").Find(&rows).Error; err != nil {
		return err
	}
	for _, s := range rows {
		r.add(KeyServices, s.TotalAmount, s.Currency, s.ReceivedAt, fmt.Sprintf("service #%d", s.ID))
	}
	return nil
}

func (r *run) onlineOrders() error {
	q, ok := r.scope.customerOwned(r.db.Model(&models.OnlinePreOrder{}))
	if !ok {
		return nil
	}
	var rows []models.OnlinePreOrder
	err := q.Where("status IN ?", []models.PreOrderStatus{models.PreOrderStatusConfirmed, models.PreOrderStatusFulfilled}).
		Order("id").Find(&rows).Error
	if err != nil {
		return err
	}
	for _, o := range rows {
		r.add(KeyOnlineOrders, o.TotalAmount, o.Currency, o.OrderDate, fmt.Sprintf("online order #%d", o.ID))
	}
	return nil
}

// preorders never books the order value: the fulfilling sale does. A deposit on a live preorder
// counts as received unless a qualifying payment already records it.
func (r *run) preorders(covered map[int]bool) error {
	var rows []models.PreOrder
	err := r.scope.owned(r.db.Model(&models.PreOrder{})).
		Where("status <> ?", models.PreOrderStatusCancelled).
		Order("id").Find(&rows).Error
	if err != nil {
		return err
	}
	for _, po := range rows {
		if covered[po.ID] || !po.PrepaidAmount.IsPositive() {
			continue
		}
		r.add(KeyPaymentsIn, po.PrepaidAmount, po.Currency, po.PreorderDate, fmt.Sprintf("preorder #%d deposit", po.ID))
	}
	return nil
}
