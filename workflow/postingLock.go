package workflow

import (
	"fmt"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"gorm.io/gorm"
)

func balanceLockName(kind models.SubjectType, id int) string {
	return fmt.Sprintf("balance_refresh:%s:%d", kind, id)
}

// AcquireBalanceLock serializes balance refreshes of one subject across instances using MySQL advisory locks.
// NOTE: GET_LOCK is connection-scoped, so this must be called on the same *gorm.DB that will do the update.
// Other dialects have no advisory locks and rely on the balance_version check alone.
func AcquireBalanceLock(tx *gorm.DB, kind models.SubjectType, id int) error {
	if tx.Dialector.Name() != "mysql" {
		return nil
	}
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", balanceLockName(kind, id)).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire balance lock for %s#%d", kind, id)
	}
	return nil
}

func ReleaseBalanceLock(tx *gorm.DB, kind models.SubjectType, id int) {
	if tx.Dialector.Name() != "mysql" {
		return
	}
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", balanceLockName(kind, id)).Scan(&_ok).Error
}
