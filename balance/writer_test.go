package balance

import (
	"context"
	"fmt"
	"testing"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWrite(kind models.SubjectType, id int, version int) BalanceWrite {
	values := map[string]decimal.Decimal{}
	for _, k := range ComponentKeys(kind) {
		values[k] = decimal.Zero
	}
	values[KeyPaymentsIn] = dec("12.34")
	return BalanceWrite{
		Kind:            kind,
		SubjectId:       id,
		Components:      values,
		Balance:         dec("12.34"),
		Incomplete:      true,
		ComputedAt:      testNow,
		ExpectedVersion: version,
	}
}

func TestWriters_PersistSameRow(t *testing.T) {
	h := newHarness(t)
	c := h.customer(t, "0", "ILS")
	writers := map[string]LedgerWriter{
		"orm": NewORMWriter(h.db, true),
		"sql": NewSQLWriter(mustSQL(t, h), true),
	}

	version := 0
	for name, w := range writers {
		require.NoError(t, w.WriteBalance(context.Background(), sampleWrite(models.SubjectTypeCustomer, c.ID, version)), name)
		version++

		var stored models.Customer
		require.NoError(t, h.db.First(&stored, c.ID).Error)
		assertDecimal(t, "12.34", stored.CurrentBalance, name)
		assertDecimal(t, "12.34", stored.PaymentsInBalance, name)
		assert.True(t, stored.BalanceIncomplete, name)
		assert.Equal(t, version, stored.BalanceVersion, name)
		require.NotNil(t, stored.BalanceComputedAt, name)
	}
}

func TestWriters_StaleVersionConflicts(t *testing.T) {
	h := newHarness(t)
	s := h.supplier(t, "0", "ILS", nil)
	require.NoError(t, h.db.Exec("UPDATE suppliers SET balance_version = 4 WHERE id = ?", s.ID).Error)

	for name, w := range map[string]LedgerWriter{
		"orm": NewORMWriter(h.db, true),
		"sql": NewSQLWriter(mustSQL(t, h), true),
	} {
		err := w.WriteBalance(context.Background(), sampleWrite(models.SubjectTypeSupplier, s.ID, 3))
		assert.ErrorIs(t, err, ErrVersionConflict, name)
	}
	assertDecimal(t, "0", h.stored(t, models.SubjectTypeSupplier, s.ID).Ledger().CurrentBalance)
}

func TestWriters_LastWriteWinsWhenOptimisticLockingOff(t *testing.T) {
	h := newHarness(t)
	p := h.partner(t, "0", "ILS", nil)
	require.NoError(t, h.db.Exec("UPDATE partners SET balance_version = 4 WHERE id = ?", p.ID).Error)

	require.NoError(t, NewSQLWriter(mustSQL(t, h), false).WriteBalance(context.Background(), sampleWrite(models.SubjectTypePartner, p.ID, 0)))
	require.NoError(t, NewORMWriter(h.db, false).WriteBalance(context.Background(), sampleWrite(models.SubjectTypePartner, p.ID, 0)))

	assertDecimal(t, "12.34", h.stored(t, models.SubjectTypePartner, p.ID).Ledger().CurrentBalance)
}

func TestWriters_MissingRow(t *testing.T) {
	h := newHarness(t)
	for name, w := range map[string]LedgerWriter{
		"orm": NewORMWriter(h.db, true),
		"sql": NewSQLWriter(mustSQL(t, h), true),
	} {
		err := w.WriteBalance(context.Background(), sampleWrite(models.SubjectTypeCustomer, 404, 0))
		assert.ErrorIs(t, err, ErrSubjectNotFound, name)
	}
}

func TestSQLWriter_UnknownKind(t *testing.T) {
	h := newHarness(t)
	err := NewSQLWriter(mustSQL(t, h), true).WriteBalance(context.Background(), BalanceWrite{Kind: "Vendor", SubjectId: 1})
	assert.ErrorIs(t, err, ErrUnknownSubjectType)
}

func TestIsRetryableWriteErr(t *testing.T) {
	assert.True(t, isRetryableWriteErr(ErrVersionConflict))
	assert.False(t, isRetryableWriteErr(&mysqlErr1213))
	assert.False(t, isRetryableWriteErr(&mysqlErr1205))
	assert.False(t, isRetryableWriteErr(&mysqlErr1062))
	assert.False(t, isRetryableWriteErr(ErrSubjectNotFound))
}

func TestIsTransactionAborted(t *testing.T) {
	assert.True(t, IsTransactionAborted(&mysqlErr1213))
	assert.True(t, IsTransactionAborted(fmt.Errorf("wrapped: %w", &mysqlErr1205)))
	assert.False(t, IsTransactionAborted(&mysqlErr1062))
	assert.False(t, IsTransactionAborted(ErrVersionConflict))
}

var (
	mysqlErr1213 = mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
	mysqlErr1205 = mysqlDriver.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
	mysqlErr1062 = mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}
)
