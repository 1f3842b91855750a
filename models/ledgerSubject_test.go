package models

import (
	"context"
	"testing"

	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubjectType(t *testing.T) {
	for in, want := range map[string]SubjectType{
		"Customer":   SubjectTypeCustomer,
		" supplier ": SubjectTypeSupplier,
		"PARTNERS":   SubjectTypePartner,
	} {
		got, err := ParseSubjectType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseSubjectType("vendor")
	assert.ErrorIs(t, err, ErrInvalidSubjectType)
}

func TestApplyComponents_ZeroFillsMissing(t *testing.T) {
	c := &Customer{SalesBalance: decimal.NewFromInt(7), ReturnsBalance: decimal.NewFromInt(3)}

	ApplyComponents(c, map[string]decimal.Decimal{"returns_balance": decimal.NewFromInt(4), "not_a_column": decimal.NewFromInt(1)})

	assert.True(t, c.SalesBalance.IsZero())
	assert.True(t, decimal.NewFromInt(4).Equal(c.ReturnsBalance))
	assert.Len(t, StoredComponents(c), len(c.ComponentFields()))
}

func TestFetchSubject(t *testing.T) {
	db := newTestDB(t)
	s := &Supplier{Name: "Acme", Currency: "USD", CustomerId: nil}
	require.NoError(t, db.Create(s).Error)

	got, err := FetchSubject(context.Background(), db, SubjectTypeSupplier, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.GetName())
	assert.Equal(t, SubjectTypeSupplier, got.SubjectType())

	_, err = FetchSubject(context.Background(), db, SubjectTypeSupplier, s.ID+1)
	assert.ErrorIs(t, err, utils.ErrorRecordNotFound)

	_, err = FetchSubject(context.Background(), db, SubjectType("x"), 1)
	assert.ErrorIs(t, err, ErrInvalidSubjectType)

	ids, err := FetchSubjectIds(context.Background(), db, SubjectTypeSupplier)
	require.NoError(t, err)
	assert.Equal(t, []int{s.ID}, ids)
}

func TestSplitDetails(t *testing.T) {
	s := PaymentSplit{Details: `{"check_status":" bounced ","converted_amount":"1,250.50","converted_currency":"ils"}`}
	assert.Equal(t, CheckStatusBounced, s.DetailsCheckStatus())
	amt, cur, ok := s.ConvertedOverride()
	require.True(t, ok)
	assert.Equal(t, "ILS", cur)
	assert.True(t, decimal.RequireFromString("1250.50").Equal(amt))

	broken := PaymentSplit{Details: `{not json`}
	assert.Equal(t, CheckStatus(""), broken.DetailsCheckStatus())
	_, _, ok = broken.ConvertedOverride()
	assert.False(t, ok)

	column := PaymentSplit{ConvertedAmount: decimal.NewFromInt(9), ConvertedCurrency: "usd", Details: `{"converted_amount": 1, "converted_currency": "ILS"}`}
	amt, cur, ok = column.ConvertedOverride()
	require.True(t, ok)
	assert.Equal(t, "USD", cur)
	assert.True(t, decimal.NewFromInt(9).Equal(amt))
}

func TestPaymentIsChequeBearing(t *testing.T) {
	assert.True(t, Payment{Method: "check"}.IsChequeBearing())
	assert.False(t, Payment{Method: PaymentMethodCash}.IsChequeBearing())
	assert.True(t, Payment{Method: PaymentMethodCash, Splits: []PaymentSplit{{Method: PaymentMethodCheque}}}.IsChequeBearing())
}
