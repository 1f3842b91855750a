package workflow

import (
	"context"
	"fmt"

	"github.com/AbuAzad2025/garage-manager-project-sub001/balance"
	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RebuildSummary counts the outcome of a bulk recompute.
type RebuildSummary struct {
	Updated int
	Changed int
	Skipped int
	Failed  int
}

// RebuildBalances recomputes every subject of the given kinds (all kinds when empty).
// Notifications are suppressed for the whole run.
func RebuildBalances(ctx context.Context, updater *balance.Updater, db *gorm.DB, kinds []models.SubjectType, continueOnError bool) (RebuildSummary, error) {
	var summary RebuildSummary
	if updater == nil || db == nil {
		return summary, fmt.Errorf("rebuild balances: updater and db are required")
	}
	if len(kinds) == 0 {
		kinds = models.AllSubjectTypes
	}
	logger := config.GetLogger()
	ctx = utils.SetSkipBalanceNotifyInContext(ctx, true)

	for _, kind := range kinds {
		ids, err := models.FetchSubjectIds(ctx, db, kind)
		if err != nil {
			return summary, fmt.Errorf("rebuild balances: listing %s: %w", kind, err)
		}
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			result, err := updater.Update(ctx, kind, id)
			if err != nil {
				summary.Failed++
				if continueOnError {
					logger.WithFields(logrus.Fields{
						"field":        "RebuildBalances",
						"subject_type": kind,
						"subject_id":   id,
					}).Warn("rebuild failed (skipping): " + err.Error())
					continue
				}
				return summary, err
			}
			if result == nil {
				summary.Skipped++
				continue
			}
			summary.Updated++
			if !result.Balance.Equal(result.Previous) {
				summary.Changed++
			}
		}
		logger.WithFields(logrus.Fields{
			"field":        "RebuildBalances",
			"subject_type": kind,
			"subjects":     len(ids),
		}).Info("balance rebuild pass completed")
	}
	return summary, nil
}
