package workflow

import (
	"testing"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestAffectedSubjects_PaymentReachesDocumentOwnersAndProxies(t *testing.T) {
	db := newTestDB(t)
	c1 := newCustomer(t, db, "Walk-in")
	c2 := newCustomer(t, db, "Garage")
	proxied := &models.Supplier{Name: "Parts Co", Currency: "ILS", CustomerId: &c1.ID}
	billed := &models.Supplier{Name: "Tyres Ltd", Currency: "ILS"}
	partner := &models.Partner{Name: "Partner", Currency: "ILS", CustomerId: &c2.ID}
	create(t, db, proxied, billed, partner)

	sale := confirmedSale(t, db, c2.ID, "40")
	invoice := &models.Invoice{SupplierId: &billed.ID, InvoiceDate: testDate, Status: models.InvoiceStatusUnpaid, Currency: "ILS", TotalAmount: dec("10")}
	create(t, db, invoice)
	payment := &models.Payment{
		Direction:   models.PaymentDirectionIn,
		Status:      models.PaymentStatusCompleted,
		Method:      models.PaymentMethodCash,
		Currency:    "ILS",
		TotalAmount: dec("50"),
		PaymentDate: testDate,
		CustomerId:  &c1.ID,
		SaleId:      &sale.ID,
		InvoiceId:   &invoice.ID,
	}
	create(t, db, payment)

	refs, err := AffectedSubjects(db, string(ReferenceTypePayment), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, []SubjectRef{
		{Kind: models.SubjectTypeCustomer, Id: c1.ID},
		{Kind: models.SubjectTypeCustomer, Id: c2.ID},
		{Kind: models.SubjectTypeSupplier, Id: proxied.ID},
		{Kind: models.SubjectTypeSupplier, Id: billed.ID},
		{Kind: models.SubjectTypePartner, Id: partner.ID},
	}, refs)
}

func TestAffectedSubjects_CheckFollowsItsPayment(t *testing.T) {
	db := newTestDB(t)
	c := newCustomer(t, db, "Customer")
	payment := &models.Payment{
		Direction:   models.PaymentDirectionIn,
		Status:      models.PaymentStatusPending,
		Method:      models.PaymentMethodCheque,
		Currency:    "ILS",
		TotalAmount: dec("80"),
		PaymentDate: testDate,
		CustomerId:  &c.ID,
	}
	create(t, db, payment)
	check := &models.Check{PaymentId: &payment.ID, Direction: models.PaymentDirectionIn, Status: models.CheckStatusReturned, Currency: "ILS", Amount: dec("80"), CheckDate: testDate}
	create(t, db, check)

	refs, err := AffectedSubjects(db, string(ReferenceTypeCheck), check.ID)
	require.NoError(t, err)
	assert.Equal(t, []SubjectRef{{Kind: models.SubjectTypeCustomer, Id: c.ID}}, refs)
}

func TestAffectedSubjects_AdjustmentAndStakeNameTheirSubject(t *testing.T) {
	db := newTestDB(t)
	p := &models.Partner{Name: "Partner", Currency: "ILS"}
	create(t, db, p)
	adj := &models.BalanceAdjustment{SubjectType: models.SubjectTypePartner, SubjectId: p.ID, AdjustmentDate: testDate, Currency: "ILS", Amount: dec("5")}
	snap := &models.StakeSnapshot{SubjectType: models.SubjectTypePartner, SubjectId: p.ID, Currency: "ILS", AsOf: testDate}
	create(t, db, adj, snap)

	for refType, id := range map[BalanceReferenceType]int{
		ReferenceTypeBalanceAdjustment: adj.ID,
		ReferenceTypeStakeSnapshot:     snap.ID,
		ReferenceTypePartner:           p.ID,
	} {
		refs, err := AffectedSubjects(db, string(refType), id)
		require.NoError(t, err, refType)
		assert.Equal(t, []SubjectRef{{Kind: models.SubjectTypePartner, Id: p.ID}}, refs, refType)
	}
}

func TestAffectedSubjects_ExpenseSkipsCustomers(t *testing.T) {
	db := newTestDB(t)
	s := &models.Supplier{Name: "Supplier", Currency: "ILS"}
	create(t, db, s)
	exp := &models.Expense{SupplierId: &s.ID, ExpenseDate: testDate, Currency: "ILS", Amount: dec("12")}
	create(t, db, exp)

	refs, err := AffectedSubjects(db, string(ReferenceTypeExpense), exp.ID)
	require.NoError(t, err)
	assert.Equal(t, []SubjectRef{{Kind: models.SubjectTypeSupplier, Id: s.ID}}, refs)
}

func TestAffectedSubjects_DeletedRecordResolvesNothing(t *testing.T) {
	db := newTestDB(t)
	refs, err := AffectedSubjects(db, string(ReferenceTypeSale), 999)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestAffectedSubjects_UnknownReferenceType(t *testing.T) {
	db := newTestDB(t)
	_, err := AffectedSubjects(db, "Journal", 1)
	assert.ErrorIs(t, err, ErrUnknownReferenceType)
}
