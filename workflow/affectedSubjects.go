package workflow

import (
	"context"
	"errors"
	"sort"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"gorm.io/gorm"
)

// BalanceReferenceType names the record a balance refresh message points at.
type BalanceReferenceType string

const (
	ReferenceTypeCustomer          BalanceReferenceType = "Customer"
	ReferenceTypeSupplier          BalanceReferenceType = "Supplier"
	ReferenceTypePartner           BalanceReferenceType = "Partner"
	ReferenceTypeSale              BalanceReferenceType = "Sale"
	ReferenceTypeSaleReturn        BalanceReferenceType = "SaleReturn"
	ReferenceTypeInvoice           BalanceReferenceType = "Invoice"
	ReferenceTypeServiceRequest    BalanceReferenceType = "ServiceRequest"
	ReferenceTypePreOrder          BalanceReferenceType = "PreOrder"
	ReferenceTypeOnlinePreOrder    BalanceReferenceType = "OnlinePreOrder"
	ReferenceTypePayment           BalanceReferenceType = "Payment"
	ReferenceTypeCheck             BalanceReferenceType = "Check"
	ReferenceTypeExpense           BalanceReferenceType = "Expense"
	ReferenceTypeBalanceAdjustment BalanceReferenceType = "BalanceAdjustment"
	ReferenceTypeStakeSnapshot     BalanceReferenceType = "StakeSnapshot"
)

var ErrUnknownReferenceType = errors.New("unknown balance reference type")

// SubjectRef identifies one ledger subject.
type SubjectRef struct {
	Kind models.SubjectType
	Id   int
}

type affected struct {
	tx   *gorm.DB
	seen map[SubjectRef]bool
	refs []SubjectRef
}

func (a *affected) add(kind models.SubjectType, id *int) {
	if id == nil || *id <= 0 {
		return
	}
	ref := SubjectRef{Kind: kind, Id: *id}
	if a.seen[ref] {
		return
	}
	a.seen[ref] = true
	a.refs = append(a.refs, ref)
}

func (a *affected) parties(customerId, supplierId, partnerId *int) {
	a.add(models.SubjectTypeCustomer, customerId)
	a.add(models.SubjectTypeSupplier, supplierId)
	a.add(models.SubjectTypePartner, partnerId)
}

// load fetches one row; a missing row is not an error (the record was deleted).
func load[T any](tx *gorm.DB, id int) (*T, error) {
	row, err := utils.FetchModel[T](context.Background(), tx, id)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, nil
	}
	return row, err
}

// AffectedSubjects resolves which ledger subjects a transaction record touches: the parties it
// names directly, the owners of the documents it links to, and every supplier or partner whose
// proxy customer is among them. The result is ordered by kind, then id.
func AffectedSubjects(tx *gorm.DB, referenceType string, referenceId int) ([]SubjectRef, error) {
	a := &affected{tx: tx, seen: map[SubjectRef]bool{}}
	if err := a.resolve(BalanceReferenceType(referenceType), referenceId); err != nil {
		return nil, err
	}
	if err := a.proxies(); err != nil {
		return nil, err
	}
	sort.Slice(a.refs, func(i, j int) bool {
		if a.refs[i].Kind != a.refs[j].Kind {
			return kindOrder(a.refs[i].Kind) < kindOrder(a.refs[j].Kind)
		}
		return a.refs[i].Id < a.refs[j].Id
	})
	return a.refs, nil
}

func kindOrder(kind models.SubjectType) int {
	for i, k := range models.AllSubjectTypes {
		if k == kind {
			return i
		}
	}
	return len(models.AllSubjectTypes)
}

func (a *affected) resolve(refType BalanceReferenceType, id int) error {
	switch refType {
	case ReferenceTypeCustomer:
		a.add(models.SubjectTypeCustomer, &id)
	case ReferenceTypeSupplier:
		a.add(models.SubjectTypeSupplier, &id)
	case ReferenceTypePartner:
		a.add(models.SubjectTypePartner, &id)
	case ReferenceTypeSale:
		row, err := load[models.Sale](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.add(models.SubjectTypeCustomer, &row.CustomerId)
	case ReferenceTypeSaleReturn:
		row, err := load[models.SaleReturn](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.add(models.SubjectTypeCustomer, &row.CustomerId)
	case ReferenceTypeInvoice:
		row, err := load[models.Invoice](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.parties(row.CustomerId, row.SupplierId, row.PartnerId)
	case ReferenceTypeServiceRequest:
		row, err := load[models.ServiceRequest](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.add(models.SubjectTypeCustomer, &row.CustomerId)
	case ReferenceTypePreOrder:
		row, err := load[models.PreOrder](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.parties(row.CustomerId, row.SupplierId, row.PartnerId)
	case ReferenceTypeOnlinePreOrder:
		row, err := load[models.OnlinePreOrder](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.add(models.SubjectTypeCustomer, &row.CustomerId)
	case ReferenceTypeExpense:
		row, err := load[models.Expense](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.parties(nil, row.SupplierId, row.PartnerId)
	case ReferenceTypePayment:
		return a.payment(id)
	case ReferenceTypeCheck:
		row, err := load[models.Check](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.parties(row.CustomerId, row.SupplierId, row.PartnerId)
		if row.PaymentId != nil {
			return a.payment(*row.PaymentId)
		}
	case ReferenceTypeBalanceAdjustment:
		row, err := load[models.BalanceAdjustment](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.add(row.SubjectType, &row.SubjectId)
	case ReferenceTypeStakeSnapshot:
		row, err := load[models.StakeSnapshot](a.tx, id)
		if err != nil || row == nil {
			return err
		}
		a.add(row.SubjectType, &row.SubjectId)
	default:
		return ErrUnknownReferenceType
	}
	return nil
}

// payment adds the payment's direct parties and the owners of every document it settles.
func (a *affected) payment(id int) error {
	row, err := load[models.Payment](a.tx, id)
	if err != nil || row == nil {
		return err
	}
	a.parties(row.CustomerId, row.SupplierId, row.PartnerId)
	linked := []struct {
		refType BalanceReferenceType
		id      *int
	}{
		{ReferenceTypeSale, row.SaleId},
		{ReferenceTypeInvoice, row.InvoiceId},
		{ReferenceTypeServiceRequest, row.ServiceId},
		{ReferenceTypePreOrder, row.PreorderId},
		{ReferenceTypeExpense, row.ExpenseId},
	}
	for _, l := range linked {
		if l.id == nil {
			continue
		}
		if err := a.resolve(l.refType, *l.id); err != nil {
			return err
		}
	}
	return nil
}

// proxies adds suppliers and partners that trade through one of the collected customers.
func (a *affected) proxies() error {
	var customerIds []int
	for _, ref := range a.refs {
		if ref.Kind == models.SubjectTypeCustomer {
			customerIds = append(customerIds, ref.Id)
		}
	}
	if len(customerIds) == 0 {
		return nil
	}
	var supplierIds, partnerIds []int
	if err := a.tx.Model(&models.Supplier{}).Where("customer_id IN ?", customerIds).Order("id").Pluck("id", &supplierIds).Error; err != nil {
		return err
	}
	if err := a.tx.Model(&models.Partner{}).Where("customer_id IN ?", customerIds).Order("id").Pluck("id", &partnerIds).Error; err != nil {
		return err
	}
	for i := range supplierIds {
		a.add(models.SubjectTypeSupplier, &supplierIds[i])
	}
	for i := range partnerIds {
		a.add(models.SubjectTypePartner, &partnerIds[i])
	}
	return nil
}
