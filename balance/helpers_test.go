package balance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var testNow = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return time.Date(2026, 3, n, 10, 0, 0, 0, time.UTC)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every session must see the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.MigrateTable(db))
	return db
}

// fakeRates quotes from a fixed table and counts lookups.
type fakeRates struct {
	mu    sync.Mutex
	rates map[string]decimal.Decimal
	calls int
}

func newFakeRates(pairs ...string) *fakeRates {
	f := &fakeRates{rates: map[string]decimal.Decimal{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		f.rates[pairs[i]] = decimal.RequireFromString(pairs[i+1])
	}
	return f
}

func (f *fakeRates) Rate(_ context.Context, base, quote string, _ time.Time) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if r, ok := f.rates[base+"/"+quote]; ok {
		return r, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrNoRate, base, quote)
}

func (f *fakeRates) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []BalanceChange
	err     error
	panics  bool
}

func (n *recordingNotifier) BalanceChanged(_ context.Context, change BalanceChange) error {
	n.mu.Lock()
	n.changes = append(n.changes, change)
	n.mu.Unlock()
	if n.panics {
		panic("notifier exploded")
	}
	return n.err
}

type harness struct {
	db       *gorm.DB
	rates    *fakeRates
	calc     *Calculator
	updater  *Updater
	views    *ViewBuilder
	notifier *recordingNotifier
	settings *config.BalanceSettings
}

func newHarness(t *testing.T, pairs ...string) *harness {
	t.Helper()
	db := newTestDB(t)
	settings := config.DefaultBalanceSettings()
	rates := newFakeRates(pairs...)
	fx := NewNormalizer(rates, settings.LedgerCurrency)
	fx.SetClock(func() time.Time { return testNow })
	calc := NewCalculator(db, fx)
	updater := NewUpdater(db, calc, settings)
	updater.SetClock(func() time.Time { return testNow })
	notifier := &recordingNotifier{}
	updater.SetNotifier(notifier)
	return &harness{
		db:       db,
		rates:    rates,
		calc:     calc,
		updater:  updater,
		views:    NewViewBuilder(db, calc, settings),
		notifier: notifier,
		settings: settings,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(i int) *int {
	return &i
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{fmt.Sprintf("want %s, got %s", want, got.String())}, msgAndArgs...)...)
}

func (h *harness) create(t *testing.T, rows ...interface{}) {
	t.Helper()
	for _, r := range rows {
		require.NoError(t, h.db.Create(r).Error)
	}
}

func (h *harness) customer(t *testing.T, opening string, currency string) *models.Customer {
	t.Helper()
	c := &models.Customer{Name: "Customer", Currency: currency, OpeningBalance: dec(opening)}
	h.create(t, c)
	return c
}

func (h *harness) supplier(t *testing.T, opening string, currency string, proxy *int) *models.Supplier {
	t.Helper()
	s := &models.Supplier{Name: "Supplier", Currency: currency, OpeningBalance: dec(opening), CustomerId: proxy}
	h.create(t, s)
	return s
}

func (h *harness) partner(t *testing.T, opening string, currency string, proxy *int) *models.Partner {
	t.Helper()
	p := &models.Partner{Name: "Partner", Currency: currency, OpeningBalance: dec(opening), CustomerId: proxy, SharePercentage: dec("25")}
	h.create(t, p)
	return p
}

func (h *harness) sale(t *testing.T, customerId int, amount string, currency string, status models.SaleStatus) *models.Sale {
	t.Helper()
	s := &models.Sale{CustomerId: customerId, SaleDate: day(1), Status: status, Currency: currency, TotalAmount: dec(amount)}
	h.create(t, s)
	return s
}

func paymentIn(amount string, currency string, status models.PaymentStatus, method models.PaymentMethod) *models.Payment {
	return &models.Payment{
		Direction:   models.PaymentDirectionIn,
		Status:      status,
		Method:      method,
		Currency:    currency,
		TotalAmount: dec(amount),
		PaymentDate: day(2),
	}
}

func (h *harness) stored(t *testing.T, kind models.SubjectType, id int) models.LedgerSubject {
	t.Helper()
	s, err := models.FetchSubject(context.Background(), h.db, kind, id)
	require.NoError(t, err)
	return s
}

func (h *harness) calculate(t *testing.T, kind models.SubjectType, id int) *Components {
	t.Helper()
	comps, err := h.calc.Calculate(context.Background(), kind, id)
	require.NoError(t, err)
	require.NotNil(t, comps)
	return comps
}

// conflictingWriter moves the stored version before delegating, the way a concurrent update would.
type conflictingWriter struct {
	db        *gorm.DB
	next      LedgerWriter
	conflicts int
	calls     int
}

func (w *conflictingWriter) WriteBalance(ctx context.Context, bw BalanceWrite) error {
	w.calls++
	if w.calls <= w.conflicts {
		err := w.db.Exec("UPDATE "+bw.Kind.TableName()+" SET balance_version = balance_version + 1 WHERE id = ?", bw.SubjectId).Error
		if err != nil {
			return err
		}
	}
	return w.next.WriteBalance(ctx, bw)
}

// failingWriter returns err on every write.
type failingWriter struct {
	err   error
	calls int
}

func (w *failingWriter) WriteBalance(context.Context, BalanceWrite) error {
	w.calls++
	return w.err
}

var errNotifier = errors.New("pubsub unavailable")
