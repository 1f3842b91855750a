package balance

import (
	"errors"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	mysqlDriver "github.com/go-sql-driver/mysql"
)

var (
	ErrSubjectNotFound    = errors.New("balance: subject not found")
	ErrVersionConflict    = errors.New("balance: subject was updated concurrently")
	ErrUnknownSubjectType = models.ErrInvalidSubjectType
	ErrNoRate             = models.ErrNoRate
)

// isRetryableWriteErr reports errors after which recomputing and writing again inside the same
// transaction is safe.
func isRetryableWriteErr(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

// IsTransactionAborted reports MySQL errors after which the caller's transaction can no longer
// be used (1213 deadlock, 1205 lock wait timeout). The caller retries the whole transaction.
func IsTransactionAborted(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
