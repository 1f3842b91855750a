package models

import (
	"context"
	"errors"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerState is the derived balance block shared by customers, suppliers and partners.
// Every column here is a cache written wholesale by the balance updater; nothing else writes it.
type LedgerState struct {
	CurrentBalance    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_balance"`
	BalanceVersion    int             `gorm:"not null;default:0" json:"balance_version"`
	BalanceComputedAt *time.Time      `json:"balance_computed_at"`
	BalanceIncomplete bool            `gorm:"not null;default:false" json:"balance_incomplete"`
}

// LedgerSubject is implemented by *Customer, *Supplier and *Partner.
type LedgerSubject interface {
	SubjectType() SubjectType
	SubjectId() int
	GetName() string
	GetCurrency() string
	GetOpeningBalance() decimal.Decimal
	// LinkedCustomerId is the proxy customer row whose documents also belong to this subject.
	LinkedCustomerId() *int
	Ledger() *LedgerState
	// ComponentFields maps component keys (column names) to the struct fields caching them.
	ComponentFields() map[string]*decimal.Decimal
}

// StoredComponents copies the cached component columns of s.
func StoredComponents(s LedgerSubject) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for k, p := range s.ComponentFields() {
		out[k] = *p
	}
	return out
}

// ApplyComponents overwrites every cached component of s; keys s does not cache are ignored.
func ApplyComponents(s LedgerSubject, values map[string]decimal.Decimal) {
	for k, p := range s.ComponentFields() {
		if v, ok := values[k]; ok {
			*p = v
		} else {
			*p = decimal.Zero
		}
	}
}

// NewSubject returns an empty model for kind.
func NewSubject(kind SubjectType) (LedgerSubject, error) {
	switch kind {
	case SubjectTypeCustomer:
		return &Customer{}, nil
	case SubjectTypeSupplier:
		return &Supplier{}, nil
	case SubjectTypePartner:
		return &Partner{}, nil
	}
	return nil, ErrInvalidSubjectType
}

// FetchSubject loads a ledger subject by kind and id.
// (may return utils.ErrorRecordNotFound)
func FetchSubject(ctx context.Context, db *gorm.DB, kind SubjectType, id int) (LedgerSubject, error) {
	subject, err := NewSubject(kind)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).First(subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return subject, nil
}

// FetchSubjectForUpdate reads the row with SELECT ... FOR UPDATE. Inside a transaction this is
// a current read that holds the row lock until commit. SQLite ignores the clause.
func FetchSubjectForUpdate(ctx context.Context, db *gorm.DB, kind SubjectType, id int) (LedgerSubject, error) {
	return FetchSubject(ctx, db.Clauses(clause.Locking{Strength: "UPDATE"}), kind, id)
}

// FetchSubjectIds lists ids of every subject of kind, ascending.
func FetchSubjectIds(ctx context.Context, db *gorm.DB, kind SubjectType) ([]int, error) {
	switch kind {
	case SubjectTypeCustomer:
		return utils.FetchIds[Customer](ctx, db)
	case SubjectTypeSupplier:
		return utils.FetchIds[Supplier](ctx, db)
	case SubjectTypePartner:
		return utils.FetchIds[Partner](ctx, db)
	}
	return nil, ErrInvalidSubjectType
}
