package workflow

import (
	"testing"

	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessBalanceDriftWorkflow_ReportsWithoutFixing(t *testing.T) {
	db := newTestDB(t)
	drifted := newCustomer(t, db, "Drifted")
	newCustomer(t, db, "Clean")
	confirmedSale(t, db, drifted.ID, "10")

	reports, err := ProcessBalanceDriftWorkflow(db, logrus.New(), []models.SubjectType{models.SubjectTypeCustomer}, false)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, models.SubjectTypeCustomer, r.SubjectType)
	assert.Equal(t, drifted.ID, r.SubjectId)
	assert.True(t, dec("0").Equal(r.Stored))
	assert.True(t, dec("-10").Equal(r.Computed))
	assert.True(t, dec("-10").Equal(r.Difference))
	assert.False(t, r.Fixed)
	assert.NotEmpty(t, r.CorrelationId)
	assert.Contains(t, r.Details, "stored 0.00, computed -10.00")

	var count int64
	require.NoError(t, db.Model(&models.BalanceDriftReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.True(t, storedBalance(t, db, models.SubjectTypeCustomer, drifted.ID).IsZero())
}

func TestProcessBalanceDriftWorkflow_FixesDrift(t *testing.T) {
	db := newTestDB(t)
	c := newCustomer(t, db, "Drifted")
	p := &models.Partner{Name: "Partner", Currency: "ILS"}
	create(t, db, p)
	confirmedSale(t, db, c.ID, "10")
	create(t, db, &models.BalanceAdjustment{SubjectType: models.SubjectTypePartner, SubjectId: p.ID, AdjustmentDate: testDate, Currency: "ILS", Amount: dec("4")})

	reports, err := ProcessBalanceDriftWorkflow(db, logrus.New(), nil, true)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	for _, r := range reports {
		assert.True(t, r.Fixed)
	}
	assert.True(t, dec("-10").Equal(storedBalance(t, db, models.SubjectTypeCustomer, c.ID)))
	assert.True(t, dec("4").Equal(storedBalance(t, db, models.SubjectTypePartner, p.ID)))

	reports, err = ProcessBalanceDriftWorkflow(db, logrus.New(), nil, false)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestProcessBalanceDriftWorkflow_IgnoresDriftWithinTolerance(t *testing.T) {
	db := newTestDB(t)
	c := newCustomer(t, db, "Customer")
	confirmedSale(t, db, c.ID, "0.01")

	reports, err := ProcessBalanceDriftWorkflow(db, logrus.New(), nil, false)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
