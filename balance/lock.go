package balance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
)

// Locker serialises updates of one subject across instances. It is an optimisation: the
// version check in the writers is what keeps concurrent updates correct.
type Locker interface {
	Lock(ctx context.Context, kind models.SubjectType, id int, ttl time.Duration) (release func())
}

// RedisLocker takes a redislock per subject. When redis is missing or the lock is busy it
// proceeds unlocked.
type RedisLocker struct {
	client *redislock.Client
	logger *logrus.Logger
}

func NewRedisLocker(client *redislock.Client) *RedisLocker {
	return &RedisLocker{client: client, logger: config.GetLogger()}
}

func lockKey(kind models.SubjectType, id int) string {
	return fmt.Sprintf("balance:%s:%d", kind, id)
}

func (l *RedisLocker) Lock(ctx context.Context, kind models.SubjectType, id int, ttl time.Duration) func() {
	noop := func() {}
	fields := logrus.Fields{"field": "balanceLock", "subject_type": kind, "subject_id": id}
	if l == nil || l.client == nil {
		return noop
	}

	lock, err := l.client.Obtain(ctx, lockKey(kind, id), ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 20),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		l.logger.WithFields(fields).Warn("could not obtain redis lock; proceeding without redis lock")
		return noop
	} else if err != nil {
		l.logger.WithFields(fields).Warn("error obtaining redis lock; proceeding without redis lock: " + err.Error())
		return noop
	}
	return func() {
		if releaseErr := lock.Release(context.Background()); releaseErr != nil && !errors.Is(releaseErr, redislock.ErrLockNotHeld) {
			l.logger.WithFields(fields).Warn("failed to release redis lock: " + releaseErr.Error())
		}
	}
}
