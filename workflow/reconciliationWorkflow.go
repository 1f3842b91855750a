package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/AbuAzad2025/garage-manager-project-sub001/balance"
	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProcessBalanceDriftWorkflow compares every stored balance of the given kinds (all kinds when
// empty) with a fresh computation and writes a BalanceDriftReport per mismatch. With fix set,
// drifted subjects are recomputed and persisted in the same transaction.
// This is intended to be run on a schedule (nightly) or via an admin trigger.
func ProcessBalanceDriftWorkflow(tx *gorm.DB, logger *logrus.Logger, kinds []models.SubjectType, fix bool) ([]models.BalanceDriftReport, error) {
	if logger == nil {
		logger = config.GetLogger()
	}
	if len(kinds) == 0 {
		kinds = models.AllSubjectTypes
	}
	correlationId := uuid.NewString()
	ctx := utils.SetCorrelationIdInContext(context.Background(), correlationId)

	settings := LoadBalanceSettings(logger)
	calc := NewBalanceCalculator(tx, settings)
	views := balance.NewViewBuilder(tx, calc, settings)
	var updater *balance.Updater
	if fix {
		updater = NewBalanceUpdater(tx, settings)
	}

	var reports []models.BalanceDriftReport
	for _, kind := range kinds {
		ids, err := models.FetchSubjectIds(ctx, tx, kind)
		if err != nil {
			config.LogError(logger, "reconciliationWorkflow.go", "ProcessBalanceDriftWorkflow", "listing subjects", kind, err)
			return reports, err
		}
		for _, id := range ids {
			result := views.Build(ctx, kind, id)
			if result == nil {
				continue
			}
			if !result.Success {
				logger.WithFields(logrus.Fields{
					"field":        "BalanceDrift",
					"subject_type": kind,
					"subject_id":   id,
				}).Warn("cannot compute balance: " + result.Error)
				continue
			}
			view := result.View
			if view.Balance.MatchesStored {
				continue
			}
			report := models.BalanceDriftReport{
				SubjectType:   kind,
				SubjectId:     id,
				Stored:        view.Balance.Stored,
				Computed:      view.Balance.Amount,
				Difference:    view.Balance.Difference,
				Details:       driftDetails(view),
				CorrelationId: correlationId,
			}
			if updater != nil {
				fixed, err := updater.Update(ctx, kind, id)
				if err != nil {
					config.LogError(logger, "reconciliationWorkflow.go", "ProcessBalanceDriftWorkflow", "fixing balance", report, err)
					return reports, err
				}
				report.Fixed = fixed != nil
			}
			if err := tx.Create(&report).Error; err != nil {
				config.LogError(logger, "reconciliationWorkflow.go", "ProcessBalanceDriftWorkflow", "writing drift report", report, err)
				return reports, err
			}
			reports = append(reports, report)
		}
	}

	logger.WithFields(logrus.Fields{
		"field":          "BalanceDrift",
		"drifted":        len(reports),
		"fix":            fix,
		"correlation_id": correlationId,
	}).Info("balance drift sweep completed")
	return reports, nil
}

func driftDetails(view *balance.View) string {
	parts := []string{
		fmt.Sprintf("stored %s, computed %s (%s)", view.Balance.Stored.StringFixed(2), view.Balance.Amount.StringFixed(2), view.Balance.Formula),
	}
	if view.ConversionIncomplete {
		parts = append(parts, "conversion incomplete")
	}
	parts = append(parts, view.Warnings...)
	return strings.Join(parts, "; ")
}
