package balance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("balance")

// UpdateResult describes one persisted balance.
type UpdateResult struct {
	Kind       models.SubjectType
	SubjectId  int
	Balance    decimal.Decimal
	Previous   decimal.Decimal
	Components map[string]decimal.Decimal
	Incomplete bool
	Warnings   []string
	Version    int
	Attempts   int
}

// Updater recomputes a subject's balance and writes it back.
type Updater struct {
	db       *gorm.DB
	calc     *Calculator
	writer   LedgerWriter
	notifier BalanceNotifier
	locker   Locker
	settings *config.BalanceSettings
	logger   *logrus.Logger
	now      func() time.Time
}

// NewUpdater reads and writes through db (normally the caller's transaction).
func NewUpdater(db *gorm.DB, calc *Calculator, settings *config.BalanceSettings) *Updater {
	if settings == nil {
		settings = config.DefaultBalanceSettings()
	}
	return &Updater{
		db:       db,
		calc:     calc,
		writer:   NewORMWriter(db, config.BalanceOptimisticLocking()),
		settings: settings,
		logger:   config.GetLogger(),
		now:      time.Now,
	}
}

// NewMigrationUpdater runs against a plain connection: reads go through a short-lived gorm
// session opened on conn, writes are hand-written UPDATEs. driver is "mysql" or "sqlite".
func NewMigrationUpdater(conn *sql.DB, driver string, rates RateProvider, settings *config.BalanceSettings) (*Updater, error) {
	if settings == nil {
		settings = config.DefaultBalanceSettings()
	}
	session, err := config.OpenSession(conn, driver)
	if err != nil {
		return nil, fmt.Errorf("balance.NewMigrationUpdater: %w", err)
	}
	calc := NewCalculator(session, NewNormalizer(rates, settings.LedgerCurrency))
	u := NewUpdater(session, calc, settings)
	u.writer = NewSQLWriter(conn, config.BalanceOptimisticLocking())
	return u, nil
}

func (u *Updater) SetWriter(w LedgerWriter) {
	u.writer = w
}

func (u *Updater) SetNotifier(n BalanceNotifier) {
	u.notifier = n
}

func (u *Updater) SetLocker(l Locker) {
	u.locker = l
}

func (u *Updater) SetClock(now func() time.Time) {
	u.now = now
}

func (u *Updater) Calculator() *Calculator {
	return u.calc
}

// Update recomputes and persists the balance of one subject.
//
// A missing subject or a calculator failure is a no-op and returns (nil, nil). Only a version
// conflict is retried here; any other write error is returned to the caller, whose transaction
// decides its fate.
func (u *Updater) Update(ctx context.Context, kind models.SubjectType, id int) (*UpdateResult, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownSubjectType
	}
	ctx, span := tracer.Start(ctx, "balance.Update", trace.WithAttributes(
		attribute.String("subject_type", string(kind)),
		attribute.Int("subject_id", id),
	))
	defer span.End()

	if u.locker != nil {
		release := u.locker.Lock(ctx, kind, id, u.settings.LockTTL())
		defer release()
	}

	maxAttempts := u.settings.MaxUpdateAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		result, err := u.attempt(ctx, kind, id)
		if err == nil {
			if result == nil {
				return nil, nil
			}
			result.Attempts = attempt
			span.SetAttributes(attribute.Int("attempts", attempt))
			u.notify(ctx, result)
			return result, nil
		}
		if errors.Is(err, ErrSubjectNotFound) {
			return nil, nil
		}
		if isRetryableWriteErr(err) && attempt < maxAttempts {
			u.logger.WithFields(logrus.Fields{
				"module":       "updater.go",
				"subject_type": kind,
				"subject_id":   id,
				"attempt":      attempt,
			}).Warn("balance write conflicted; recomputing: " + err.Error())
			continue
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if IsTransactionAborted(err) {
			u.logger.WithFields(logrus.Fields{
				"module":       "updater.go",
				"subject_type": kind,
				"subject_id":   id,
				"attempt":      attempt,
			}).Warn("balance write aborted the transaction; leaving the retry to the caller: " + err.Error())
			return nil, fmt.Errorf("balance.Update %s#%d: %w", kind, id, err)
		}
		config.LogError(u.logger, "updater.go", "Update", "writing balance", map[string]interface{}{"kind": kind, "id": id, "attempt": attempt}, err)
		return nil, fmt.Errorf("balance.Update %s#%d: %w", kind, id, err)
	}
}

func (u *Updater) attempt(ctx context.Context, kind models.SubjectType, id int) (*UpdateResult, error) {
	subject, err := models.FetchSubjectForUpdate(ctx, u.db, kind, id)
	if err != nil {
		if !errors.Is(err, utils.ErrorRecordNotFound) {
			config.LogError(u.logger, "updater.go", "attempt", "fetching subject", map[string]interface{}{"kind": kind, "id": id}, err)
		}
		return nil, nil
	}
	comps, err := u.calc.calculate(ctx, subject)
	if err != nil || comps == nil {
		// logged by the calculator; nothing is written
		return nil, nil
	}

	ledger := subject.Ledger()
	balance := AggregateComponents(comps)
	write := BalanceWrite{
		Kind:            kind,
		SubjectId:       id,
		Components:      comps.Values,
		Balance:         balance,
		Incomplete:      comps.IsIncomplete(),
		ComputedAt:      u.now(),
		ExpectedVersion: ledger.BalanceVersion,
	}
	if err := u.writer.WriteBalance(ctx, write); err != nil {
		return nil, err
	}
	return &UpdateResult{
		Kind:       kind,
		SubjectId:  id,
		Balance:    balance,
		Previous:   ledger.CurrentBalance,
		Components: comps.Values,
		Incomplete: write.Incomplete,
		Warnings:   comps.Warnings,
		Version:    write.ExpectedVersion + 1,
	}, nil
}

func (u *Updater) notify(ctx context.Context, result *UpdateResult) {
	if u.notifier == nil || !config.BalanceNotificationsEnabled() || utils.GetSkipBalanceNotifyFromContext(ctx) {
		return
	}
	correlationId, ok := utils.GetCorrelationIdFromContext(ctx)
	if !ok || correlationId == "" {
		correlationId = uuid.NewString()
	}
	change := BalanceChange{
		Kind:          result.Kind,
		SubjectId:     result.SubjectId,
		Balance:       result.Balance,
		Previous:      result.Previous,
		Version:       result.Version,
		Incomplete:    result.Incomplete,
		ComputedAt:    u.now(),
		CorrelationId: correlationId,
	}
	fields := logrus.Fields{
		"module":         "updater.go",
		"subject_type":   result.Kind,
		"subject_id":     result.SubjectId,
		"correlation_id": correlationId,
	}
	defer func() {
		if rec := recover(); rec != nil {
			u.logger.WithFields(fields).Warn(fmt.Sprintf("balance notifier panicked: %v", rec))
		}
	}()
	if err := u.notifier.BalanceChanged(ctx, change); err != nil {
		u.logger.WithFields(fields).Warn("balance notification failed: " + err.Error())
	}
}
