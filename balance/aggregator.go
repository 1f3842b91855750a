package balance

import (
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/shopspring/decimal"
)

// Aggregate is opening + Σ rights − Σ obligations. Keys missing from values count as zero.
func Aggregate(openingLedger decimal.Decimal, values map[string]decimal.Decimal, rightsKeys, obligationKeys []string) decimal.Decimal {
	total := openingLedger
	for _, k := range rightsKeys {
		total = total.Add(values[k])
	}
	for _, k := range obligationKeys {
		total = total.Sub(values[k])
	}
	return total
}

// AggregateComponents applies the kind's partition to c, rounded to money scale.
func AggregateComponents(c *Components) decimal.Decimal {
	rights, obligations := Partition(c.Kind)
	return utils.RoundMoney(Aggregate(c.OpeningBalance, c.Values, rights, obligations))
}

func sumKeys(values map[string]decimal.Decimal, keys []string) decimal.Decimal {
	total := decimal.Zero
	for _, k := range keys {
		total = total.Add(values[k])
	}
	return total
}
