// balance-drift compares stored balances with a fresh computation and records every mismatch
// in balance_drift_reports. With --fix the drifted balances are rewritten in the same transaction.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/balance-drift --kind Partner
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/workflow"
	"gorm.io/gorm"
)

func main() {
	kindFlag := flag.String("kind", "", "Optional: Customer, Supplier or Partner (default all)")
	fix := flag.Bool("fix", false, "Rewrite drifted balances after reporting them")
	flag.Parse()

	var kinds []models.SubjectType
	if strings.TrimSpace(*kindFlag) != "" {
		kind, err := models.ParseSubjectType(*kindFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --kind %q\n", *kindFlag)
			os.Exit(1)
		}
		kinds = append(kinds, kind)
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	if os.Getenv("REDIS_ADDRESS") != "" {
		config.ConnectRedisWithRetry()
	}
	logger := config.GetLogger()

	var reports []models.BalanceDriftReport
	if err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		reports, err = workflow.ProcessBalanceDriftWorkflow(tx, logger, kinds, *fix)
		return err
	}); err != nil {
		fmt.Fprintf(os.Stderr, "drift sweep failed: %v\n", err)
		os.Exit(1)
	}

	for _, r := range reports {
		fmt.Printf("%s #%d stored=%s computed=%s difference=%s fixed=%t\n",
			r.SubjectType, r.SubjectId, r.Stored.StringFixed(2), r.Computed.StringFixed(2), r.Difference.StringFixed(2), r.Fixed)
	}
	fmt.Printf("balance drift sweep complete: drifted=%d\n", len(reports))
}
