package balance

import (
	"fmt"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const idBatchSize = 500

// paymentIds collects every payment reachable from the subject, direct FK first and then through
// the documents it owns. A payment found on several paths is kept once, in first-seen order.
func (r *run) paymentIds() ([]int, error) {
	seen := map[int]struct{}{}
	var ordered []int

	collect := func(q *gorm.DB) error {
		var ids []int
		if err := q.Order("id").Pluck("id", &ids).Error; err != nil {
			return err
		}
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ordered = append(ordered, id)
		}
		return nil
	}

	payments := func() *gorm.DB { return r.db.Model(&models.Payment{}) }

	paths := []*gorm.DB{
		r.scope.owned(payments()),
		payments().Where("invoice_id IN (?)", r.scope.owned(r.db.Model(&models.Invoice{})).Select("id")),
		payments().Where("preorder_id IN (?)", r.scope.owned(r.db.Model(&models.PreOrder{})).Select("id")),
	}
	if sales, ok := r.scope.customerOwned(r.db.Model(&models.Sale{})); ok {
		paths = append(paths, payments().Where("sale_id IN (?)", sales.Select("id")))
	}
	if services, ok := r.scope.customerOwned(r.db.Model(&models.ServiceRequest{})); ok {
		paths = append(paths, payments().Where("service_id IN (?)", services.Select("id")))
	}
	if r.scope.kind != models.SubjectTypeCustomer {
		expenses := r.db.Model(&models.Expense{}).Where(r.scope.kind.ForeignKey()+" = ?", r.scope.id).Select("id")
		paths = append(paths, payments().Where("expense_id IN (?)", expenses))
	}

	for _, q := range paths {
		if err := collect(q); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

func (r *run) loadPayments(ids []int) ([]models.Payment, map[int][]models.Check, error) {
	var payments []models.Payment
	checks := map[int][]models.Check{}
	for start := 0; start < len(ids); start += idBatchSize {
		end := start + idBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		var rows []models.Payment
		err := r.db.Preload("Splits", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
			Where("id IN ?", batch).Order("id").Find(&rows).Error
		if err != nil {
			return nil, nil, err
		}
		payments = append(payments, rows...)

		var linked []models.Check
		if err := r.db.Where("payment_id IN ?", batch).Order("id").Find(&linked).Error; err != nil {
			return nil, nil, err
		}
		for _, c := range linked {
			checks[*c.PaymentId] = append(checks[*c.PaymentId], c)
		}
	}
	return payments, checks, nil
}

// payments fills the payment and payment-linked returned-check components. It returns the
// preorders whose deposit an incoming qualifying payment already records.
func (r *run) payments() (map[int]bool, error) {
	ids, err := r.paymentIds()
	if err != nil {
		return nil, err
	}
	covered := map[int]bool{}
	if len(ids) == 0 {
		return covered, nil
	}
	payments, checks, err := r.loadPayments(ids)
	if err != nil {
		return nil, err
	}

	for _, p := range payments {
		if !paymentQualifies(p) {
			continue
		}
		// a refund of the deposit is a payment out; the deposit itself still counts
		if p.PreorderId != nil && p.Direction.IsIn() {
			covered[*p.PreorderId] = true
		}

		key, returnedKey := KeyPaymentsIn, KeyReturnedChecksIn
		if p.Direction.IsOut() {
			key, returnedKey = KeyPaymentsOut, KeyReturnedChecksOut
		}
		linked := checks[p.ID]

		if len(p.Splits) == 0 {
			ref := fmt.Sprintf("payment #%d", p.ID)
			amount, ok := r.convert(key, p.TotalAmount, p.Currency, p.PaymentDate, ref)
			r.addLedger(key, amount)
			if paymentReturned(p, linked) {
				r.addReturned(returnedKey, amount, ok)
			}
			continue
		}

		completed := p.Status.Normalized() == models.PaymentStatusCompleted
		bySplit := assignSplitChecks(p.Splits, linked)
		for _, s := range p.Splits {
			// an uncleared payment only stands for the cheques recorded on it
			if !completed && !s.Method.IsCheque() {
				continue
			}
			amount, ok := r.splitAmount(key, p, s)
			r.addLedger(key, amount)
			if splitReturned(p, s, bySplit[s.ID], len(linked) > 0) {
				r.addReturned(returnedKey, amount, ok)
			}
		}
	}
	return covered, nil
}

func (r *run) splitAmount(key string, p models.Payment, s models.PaymentSplit) (decimal.Decimal, bool) {
	ref := fmt.Sprintf("payment #%d split #%d", p.ID, s.ID)
	if amount, currency, has := s.ConvertedOverride(); has {
		return r.convert(key, amount, currency, p.PaymentDate, ref)
	}
	currency := s.Currency
	if currency == "" {
		currency = p.Currency
	}
	return r.convert(key, s.Amount, currency, p.PaymentDate, ref)
}

func (r *run) addReturned(key string, amount decimal.Decimal, converted bool) {
	r.addLedger(key, amount)
	if !converted {
		r.comps.Incomplete[key] = true
	}
}

// paymentQualifies: completed payments, and pending or failed ones carrying a cheque. A recorded
// cheque is reversed only through the returned-check buckets.
func paymentQualifies(p models.Payment) bool {
	switch p.Status.Normalized() {
	case models.PaymentStatusCompleted:
		return true
	case models.PaymentStatusPending, models.PaymentStatusFailed:
		return p.IsChequeBearing()
	}
	return false
}

// paymentReturned decides for a payment without splits: its check rows, else a failed cheque
// payment that never got a check row.
func paymentReturned(p models.Payment, checks []models.Check) bool {
	if len(checks) > 0 {
		return anyReturned(checks)
	}
	return p.Status.Normalized() == models.PaymentStatusFailed && p.Method.IsCheque()
}

// assignSplitChecks maps split id to its check rows. Rows naming a split go to that split. A row
// recorded against the whole payment goes to one cheque split that has no row yet: the first
// whose amount matches, else the first in order. Rows left over are dropped.
func assignSplitChecks(splits []models.PaymentSplit, checks []models.Check) map[int][]models.Check {
	bySplit := map[int][]models.Check{}
	var unsplit []models.Check
	for _, c := range checks {
		if c.PaymentSplitId != nil {
			bySplit[*c.PaymentSplitId] = append(bySplit[*c.PaymentSplitId], c)
		} else {
			unsplit = append(unsplit, c)
		}
	}

	free := func(match func(models.PaymentSplit) bool) (int, bool) {
		for _, s := range splits {
			if s.Method.IsCheque() && len(bySplit[s.ID]) == 0 && match(s) {
				return s.ID, true
			}
		}
		return 0, false
	}
	for _, c := range unsplit {
		id, ok := free(func(s models.PaymentSplit) bool { return s.Amount.Equal(c.Amount) })
		if !ok {
			id, ok = free(func(models.PaymentSplit) bool { return true })
		}
		if ok {
			bySplit[id] = append(bySplit[id], c)
		}
	}
	return bySplit
}

// splitReturned applies, in order, the first signal present: the split's check rows, the
// check_status recorded in its details, a failed cheque payment with no check rows at all.
func splitReturned(p models.Payment, s models.PaymentSplit, own []models.Check, paymentHasChecks bool) bool {
	if len(own) > 0 {
		return anyReturned(own)
	}
	if status := s.DetailsCheckStatus(); status != "" {
		return status.IsReturned()
	}
	return p.Status.Normalized() == models.PaymentStatusFailed && s.Method.IsCheque() && !paymentHasChecks
}

func anyReturned(checks []models.Check) bool {
	for _, c := range checks {
		if c.Status.IsReturned() {
			return true
		}
	}
	return false
}
