package workflow

import (
	"context"
	"errors"
	"strconv"

	"github.com/AbuAzad2025/garage-manager-project-sub001/balance"
	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const balanceRefreshHandler = "BalanceRefresh"

// LoadBalanceSettings falls back to the defaults when the environment does not validate.
func LoadBalanceSettings(logger *logrus.Logger) *config.BalanceSettings {
	settings, err := config.LoadBalanceSettings()
	if err != nil {
		config.LogError(logger, "balanceWorkflow.go", "LoadBalanceSettings", "parsing balance settings", nil, err)
		return config.DefaultBalanceSettings()
	}
	return settings
}

// NewBalanceCalculator reads transactions and dated rates through tx. Rates are memoised for
// the calculator's lifetime, so build one per run.
func NewBalanceCalculator(tx *gorm.DB, settings *config.BalanceSettings) *balance.Calculator {
	rates := balance.NewLoadingRates(models.NewCachedRateProvider(models.NewDBRateProvider(tx), settings.FxCacheTTL()))
	return balance.NewCalculator(tx, balance.NewNormalizer(rates, settings.LedgerCurrency))
}

// NewBalanceUpdater wires the calculator, cache/pubsub notifier and redis lock for tx.
func NewBalanceUpdater(tx *gorm.DB, settings *config.BalanceSettings) *balance.Updater {
	u := balance.NewUpdater(tx, NewBalanceCalculator(tx, settings), settings)
	u.SetNotifier(balance.NotifierFromSettings(settings))
	u.SetLocker(balance.NewRedisLocker(config.GetRedisLock()))
	return u
}

// ProcessBalanceRefreshWorkflow recomputes every balance the referenced record touches.
// Delivery is at-least-once; messages with an id are processed once per id.
func ProcessBalanceRefreshWorkflow(tx *gorm.DB, logger *logrus.Logger, msg config.PubSubMessage) error {
	if logger == nil {
		logger = config.GetLogger()
	}
	messageId := ""
	if msg.ID > 0 {
		messageId = strconv.Itoa(msg.ID)
		skip, err := BeginIdempotency(tx, balanceRefreshHandler, messageId)
		if err != nil {
			return err
		}
		if skip {
			return nil
		}
	}

	err := refreshBalances(tx, logger, msg)
	if messageId == "" {
		return err
	}
	if err != nil {
		// after a deadlock the transaction is gone; redelivery retries it from the start
		if !balance.IsTransactionAborted(err) {
			_ = MarkIdempotencyFailed(tx, balanceRefreshHandler, messageId, err)
		}
		return err
	}
	return MarkIdempotencySucceeded(tx, balanceRefreshHandler, messageId)
}

func refreshBalances(tx *gorm.DB, logger *logrus.Logger, msg config.PubSubMessage) error {
	refs, err := AffectedSubjects(tx, msg.ReferenceType, msg.ReferenceId)
	if err != nil {
		if errors.Is(err, ErrUnknownReferenceType) {
			// not a balance-bearing record; acknowledge it
			logger.WithFields(logrus.Fields{
				"field":          "BalanceRefresh",
				"reference_type": msg.ReferenceType,
				"reference_id":   msg.ReferenceId,
			}).Warn("ignoring message for unknown reference type")
			return nil
		}
		config.LogError(logger, "balanceWorkflow.go", "ProcessBalanceRefreshWorkflow", "resolving affected subjects", msg, err)
		return err
	}

	ctx := context.Background()
	if msg.CorrelationId != "" {
		ctx = utils.SetCorrelationIdInContext(ctx, msg.CorrelationId)
	}
	updater := NewBalanceUpdater(tx, LoadBalanceSettings(logger))
	for _, ref := range refs {
		if err := refreshOne(ctx, tx, updater, ref); err != nil {
			config.LogError(logger, "balanceWorkflow.go", "ProcessBalanceRefreshWorkflow", "updating balance", ref, err)
			return err
		}
	}
	logger.WithFields(logrus.Fields{
		"field":          "BalanceRefresh",
		"reference_type": msg.ReferenceType,
		"reference_id":   msg.ReferenceId,
		"subjects":       len(refs),
		"correlation_id": msg.CorrelationId,
	}).Info("balances refreshed")
	return nil
}

func refreshOne(ctx context.Context, tx *gorm.DB, updater *balance.Updater, ref SubjectRef) error {
	if err := AcquireBalanceLock(tx, ref.Kind, ref.Id); err != nil {
		return err
	}
	defer ReleaseBalanceLock(tx, ref.Kind, ref.Id)
	_, err := updater.Update(ctx, ref.Kind, ref.Id)
	return err
}
