package balance

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/shopspring/decimal"
)

// BalanceChange is published after a successful write.
type BalanceChange struct {
	Kind          models.SubjectType `json:"subject_type"`
	SubjectId     int                `json:"subject_id"`
	Balance       decimal.Decimal    `json:"balance"`
	Previous      decimal.Decimal    `json:"previous"`
	Version       int                `json:"version"`
	Incomplete    bool               `json:"conversion_incomplete"`
	ComputedAt    time.Time          `json:"computed_at"`
	CorrelationId string             `json:"correlation_id"`
}

// BalanceNotifier is told about every written balance. Its errors never fail the update.
type BalanceNotifier interface {
	BalanceChanged(ctx context.Context, change BalanceChange) error
}

// CacheInvalidator drops the cached renditions of the subject's balance.
type CacheInvalidator struct {
	Prefix string
}

func (c CacheInvalidator) BalanceChanged(ctx context.Context, change BalanceChange) error {
	return utils.ClearBalanceCache(c.Prefix, string(change.Kind), change.SubjectId)
}

// PubSubNotifier publishes balance.changed to a topic.
type PubSubNotifier struct {
	Topic   string
	publish func(ctx context.Context, topicName string, obj interface{}, attributes map[string]string) (string, error)
}

func NewPubSubNotifier(topic string) *PubSubNotifier {
	return &PubSubNotifier{Topic: topic, publish: config.PublishJSON}
}

func (p *PubSubNotifier) BalanceChanged(ctx context.Context, change BalanceChange) error {
	if p.Topic == "" {
		return nil
	}
	_, err := p.publish(ctx, p.Topic, change, map[string]string{
		"event":          "balance.changed",
		"subject_type":   string(change.Kind),
		"subject_id":     strconv.Itoa(change.SubjectId),
		"correlation_id": change.CorrelationId,
	})
	return err
}

// Notifiers fans a change out to every notifier; one failing does not stop the others.
type Notifiers []BalanceNotifier

func (n Notifiers) BalanceChanged(ctx context.Context, change BalanceChange) error {
	var errs []error
	for _, notifier := range n {
		if notifier == nil {
			continue
		}
		if err := notifier.BalanceChanged(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifierFromSettings builds the default fan-out: cache invalidation, plus pubsub when a topic
// is configured.
func NotifierFromSettings(settings *config.BalanceSettings) BalanceNotifier {
	n := Notifiers{CacheInvalidator{Prefix: settings.CachePrefix}}
	if settings.PubSubTopic != "" {
		n = append(n, NewPubSubNotifier(settings.PubSubTopic))
	}
	return n
}
