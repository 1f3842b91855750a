package balance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StakeProvider values a supplier's or partner's stake in stock, sales share, damages and
// settlements. Nil snapshot means nothing was published for the subject.
type StakeProvider interface {
	Stake(ctx context.Context, kind models.SubjectType, id int) (*models.StakeSnapshot, error)
}

type snapshotStakes struct {
	db *gorm.DB
}

// SnapshotStakes reads the latest stake_snapshots row.
func SnapshotStakes(db *gorm.DB) StakeProvider {
	return snapshotStakes{db: db}
}

func (s snapshotStakes) Stake(ctx context.Context, kind models.SubjectType, id int) (*models.StakeSnapshot, error) {
	return models.LatestStakeSnapshot(ctx, s.db, kind, id)
}

// Calculator derives the component map of a ledger subject from its transactions.
type Calculator struct {
	db     *gorm.DB
	fx     *Normalizer
	stakes StakeProvider
	logger *logrus.Logger
}

func NewCalculator(db *gorm.DB, fx *Normalizer) *Calculator {
	return &Calculator{
		db:     db,
		fx:     fx,
		stakes: SnapshotStakes(db),
		logger: config.GetLogger(),
	}
}

func (c *Calculator) SetStakeProvider(p StakeProvider) {
	c.stakes = p
}

func (c *Calculator) SetLogger(logger *logrus.Logger) {
	c.logger = logger
}

func (c *Calculator) Normalizer() *Normalizer {
	return c.fx
}

// Calculate returns (nil, nil) when the subject does not exist and (nil, err) when any query
// fails; a partial map is never returned.
func (c *Calculator) Calculate(ctx context.Context, kind models.SubjectType, id int) (*Components, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownSubjectType
	}
	subject, err := models.FetchSubject(ctx, c.db, kind, id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, nil
		}
		config.LogError(c.logger, "calculator.go", "Calculate", "fetching subject", map[string]interface{}{"kind": kind, "id": id}, err)
		return nil, err
	}
	return c.calculate(ctx, subject)
}

func (c *Calculator) calculate(ctx context.Context, subject models.LedgerSubject) (*Components, error) {
	r := &run{
		ctx:    ctx,
		db:     c.db.WithContext(ctx),
		fx:     c.fx,
		logger: c.logger,
		scope:  newScope(subject),
		comps:  newComponents(subject.SubjectType(), subject.SubjectId()),
	}

	r.opening(subject)

	var err error
	switch subject.SubjectType() {
	case models.SubjectTypeCustomer:
		err = r.customer()
	default:
		err = r.counterparty(c.stakes)
	}
	if err != nil {
		return nil, c.fail(subject, "scanning transactions", err)
	}

	r.comps.finalize()
	return r.comps, nil
}

func (c *Calculator) fail(subject models.LedgerSubject, step string, err error) error {
	config.LogError(c.logger, "calculator.go", "calculate", step,
		map[string]interface{}{"kind": subject.SubjectType(), "id": subject.SubjectId()}, err)
	return fmt.Errorf("balance: %s %s#%d: %w", step, subject.SubjectType(), subject.SubjectId(), err)
}

// scope is the set of rows owned by one subject: its own FK column and, for suppliers and
// partners, the documents of the linked proxy customer.
type scope struct {
	kind        models.SubjectType
	id          int
	customerIds []int
}

func newScope(subject models.LedgerSubject) scope {
	s := scope{kind: subject.SubjectType(), id: subject.SubjectId()}
	if s.kind == models.SubjectTypeCustomer {
		s.customerIds = []int{s.id}
	} else if linked := subject.LinkedCustomerId(); linked != nil && *linked > 0 {
		s.customerIds = []int{*linked}
	}
	return s
}

// owned filters a table that carries customer_id/supplier_id/partner_id columns.
func (s scope) owned(q *gorm.DB) *gorm.DB {
	fk := s.kind.ForeignKey()
	if s.kind == models.SubjectTypeCustomer || len(s.customerIds) == 0 {
		return q.Where(fk+" = ?", s.id)
	}
	return q.Where("("+fk+" = ? OR customer_id IN ?)", s.id, s.customerIds)
}

// customerOwned filters a table that only carries customer_id. ok is false when the subject
// has no customer rows at all.
func (s scope) customerOwned(q *gorm.DB) (*gorm.DB, bool) {
	if len(s.customerIds) == 0 {
		return q, false
	}
	return q.Where("customer_id IN ?", s.customerIds), true
}

// run carries the state of one calculation.
type run struct {
	ctx    context.Context
	db     *gorm.DB
	fx     *Normalizer
	logger *logrus.Logger
	scope  scope
	comps  *Components
}

// add converts amount to ledger currency at date and adds it to key.
func (r *run) add(key string, amount decimal.Decimal, currency string, date time.Time, ref string) {
	converted, _ := r.convert(key, amount, currency, date, ref)
	r.comps.add(key, converted)
}

// convert returns amount in ledger currency. A failed conversion keeps the face value, flags key
// and returns ok=false.
func (r *run) convert(key string, amount decimal.Decimal, currency string, date time.Time, ref string) (decimal.Decimal, bool) {
	converted, err := r.fx.ToLedger(r.ctx, amount, currency, &date)
	if err == nil {
		return converted, true
	}
	r.comps.warn(key, fmt.Sprintf("%s: %s %s of %s left unconverted: %v", key, amount.StringFixed(2), currency, ref, err))
	r.logger.WithFields(logrus.Fields{
		"module":  "calculator.go",
		"kind":    r.scope.kind,
		"id":      r.scope.id,
		"ref":     ref,
		"context": key,
	}).Warn("fx conversion failed: " + err.Error())
	return converted, false
}

// addLedger adds an amount already in ledger currency.
func (r *run) addLedger(key string, amount decimal.Decimal) {
	r.comps.add(key, amount)
}

func (r *run) opening(subject models.LedgerSubject) {
	amount := subject.GetOpeningBalance()
	currency := normalizeCode(subject.GetCurrency())
	if currency == "" {
		currency = r.fx.LedgerCurrency()
	}
	r.comps.OpeningOriginal = amount
	r.comps.OpeningCurrency = currency

	// valuation date: now
	converted, err := r.fx.ToLedger(r.ctx, amount, currency, nil)
	if err != nil {
		r.comps.warn(KeyOpeningBalance, fmt.Sprintf("opening balance %s %s left unconverted: %v", amount.StringFixed(2), currency, err))
		r.logger.WithFields(logrus.Fields{
			"module":  "calculator.go",
			"kind":    r.scope.kind,
			"id":      r.scope.id,
			"ref":     "opening balance",
			"context": KeyOpeningBalance,
		}).Warn("fx conversion failed: " + err.Error())
	}
	r.comps.OpeningBalance = converted
}

func (r *run) adjustments() error {
	var rows []models.BalanceAdjustment
	err := r.db.Where("subject_type = ? AND subject_id = ?", r.scope.kind, r.scope.id).
		Order("id").Find(&rows).Error
	if err != nil {
		return err
	}
	for _, a := range rows {
		r.add(KeyAdjustments, a.Amount, a.Currency, a.AdjustmentDate, fmt.Sprintf("adjustment #%d", a.ID))
	}
	return nil
}
