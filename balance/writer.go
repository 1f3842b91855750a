package balance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BalanceWrite is everything persisted for one subject after a calculation.
type BalanceWrite struct {
	Kind       models.SubjectType
	SubjectId  int
	Components map[string]decimal.Decimal
	Balance    decimal.Decimal
	Incomplete bool
	ComputedAt time.Time
	// ExpectedVersion is the balance_version the calculation started from.
	ExpectedVersion int
}

// LedgerWriter persists a balance. Implementations return ErrVersionConflict when the row's
// version moved since ExpectedVersion, and ErrSubjectNotFound when the row is gone.
type LedgerWriter interface {
	WriteBalance(ctx context.Context, w BalanceWrite) error
}

// ORMWriter writes through a gorm session by mutating the model and saving the balance columns.
type ORMWriter struct {
	db         *gorm.DB
	optimistic bool
}

func NewORMWriter(db *gorm.DB, optimistic bool) *ORMWriter {
	return &ORMWriter{db: db, optimistic: optimistic}
}

func (w *ORMWriter) WriteBalance(ctx context.Context, bw BalanceWrite) error {
	subject, err := models.NewSubject(bw.Kind)
	if err != nil {
		return err
	}
	db := w.db.WithContext(ctx)
	if err := db.First(subject, bw.SubjectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	models.ApplyComponents(subject, bw.Components)
	ledger := subject.Ledger()
	if w.optimistic && ledger.BalanceVersion != bw.ExpectedVersion {
		return ErrVersionConflict
	}
	ledger.CurrentBalance = bw.Balance
	ledger.BalanceIncomplete = bw.Incomplete
	computedAt := bw.ComputedAt
	ledger.BalanceComputedAt = &computedAt
	ledger.BalanceVersion = bw.ExpectedVersion + 1

	columns := append(ComponentKeys(bw.Kind), ledgerColumns...)
	q := db.Model(subject).Select(columns)
	if w.optimistic {
		q = q.Where("balance_version = ?", bw.ExpectedVersion)
	}
	res := q.Updates(subject)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if !w.optimistic {
			return ErrSubjectNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

var ledgerColumns = []string{"current_balance", "balance_version", "balance_computed_at", "balance_incomplete", "updated_at"}

// SQLWriter issues a hand-written UPDATE over a plain connection, for tools that run without an
// ORM session.
type SQLWriter struct {
	conn       *sql.DB
	optimistic bool
}

func NewSQLWriter(conn *sql.DB, optimistic bool) *SQLWriter {
	return &SQLWriter{conn: conn, optimistic: optimistic}
}

func (w *SQLWriter) WriteBalance(ctx context.Context, bw BalanceWrite) error {
	if !bw.Kind.IsValid() {
		return ErrUnknownSubjectType
	}
	keys := ComponentKeys(bw.Kind)
	sets := make([]string, 0, len(keys)+5)
	args := make([]interface{}, 0, len(keys)+7)
	for _, k := range keys {
		sets = append(sets, k+" = ?")
		args = append(args, bw.Components[k].String())
	}
	sets = append(sets,
		"current_balance = ?",
		"balance_version = ?",
		"balance_computed_at = ?",
		"balance_incomplete = ?",
		"updated_at = ?",
	)
	args = append(args, bw.Balance.String(), bw.ExpectedVersion+1, bw.ComputedAt, bw.Incomplete, bw.ComputedAt)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", bw.Kind.TableName(), strings.Join(sets, ", "))
	args = append(args, bw.SubjectId)
	if w.optimistic {
		stmt += " AND balance_version = ?"
		args = append(args, bw.ExpectedVersion)
	}

	res, err := w.conn.ExecContext(ctx, stmt, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists int
	row := w.conn.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", bw.Kind.TableName()), bw.SubjectId)
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrSubjectNotFound
	}
	return ErrVersionConflict
}
