package balance

import (
	"fmt"
	"strings"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
)

// manualChecks handles checks recorded without a payment. Outstanding buckets skip every
// inactive status; returned buckets take exactly the checks that failed to clear.
func (r *run) manualChecks() error {
	var rows []models.Check
	err := r.scope.owned(r.db.Model(&models.Check{})).
		Where("payment_id IS NULL AND payment_split_id IS NULL").
		Order("id").Find(&rows).Error
	if err != nil {
		return err
	}

	for _, c := range rows {
		outstandingKey, returnedKey := KeyChecksIn, KeyReturnedChecksIn
		if c.Direction.IsOut() {
			outstandingKey, returnedKey = KeyChecksOut, KeyReturnedChecksOut
		}
		status := models.CheckStatus(strings.ToUpper(string(c.Status)))
		ref := fmt.Sprintf("check #%d", c.ID)

		switch {
		case status.IsReturned():
			r.add(returnedKey, c.Amount, c.Currency, c.CheckDate, ref)
		case isInactiveCheck(status):
		default:
			r.add(outstandingKey, c.Amount, c.Currency, c.CheckDate, ref)
		}
	}
	return nil
}

func isInactiveCheck(status models.CheckStatus) bool {
	for _, s := range models.InactiveCheckStatuses {
		if s == status {
			return true
		}
	}
	return false
}
