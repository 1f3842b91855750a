// balance-rebuild recomputes stored customer/supplier/partner balances from their transactions.
// It runs on a plain database/sql connection (no identity map), the way migrations do.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/balance-rebuild --kind Customer
//	go run ./cmd/balance-rebuild --kind Supplier --id 42
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/AbuAzad2025/garage-manager-project-sub001/balance"
	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/AbuAzad2025/garage-manager-project-sub001/workflow"
)

func main() {
	kindFlag := flag.String("kind", "", "Optional: Customer, Supplier or Partner (default all)")
	subjectID := flag.Int("id", 0, "Optional: rebuild a single subject (requires --kind)")
	continueOnError := flag.Bool("continue-on-error", false, "Skip failing subjects and continue rebuilding others")
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
	if *subjectID > 0 && len(kinds) != 1 {
		fmt.Fprintln(os.Stderr, "--id requires --kind")
		os.Exit(1)
	}

	logger := config.GetLogger()
	settings, err := config.LoadBalanceSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if os.Getenv("REDIS_ADDRESS") != "" {
		config.ConnectRedisWithRetry()
	}

	conn, err := config.OpenRawConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()
	session, err := config.OpenSession(conn, "mysql")
	if err != nil {
		fmt.Fprintf(os.Stderr, "open session: %v\n", err)
		os.Exit(1)
	}

	rates := balance.NewLoadingRates(models.NewCachedRateProvider(models.NewDBRateProvider(session), settings.FxCacheTTL()))
	updater, err := balance.NewMigrationUpdater(conn, "mysql", rates, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	ctx := utils.SetSkipBalanceNotifyInContext(context.Background(), true)

	if *subjectID > 0 {
		result, err := updater.Update(ctx, kinds[0], *subjectID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
			os.Exit(1)
		}
		if result == nil {
			fmt.Printf("%s #%d not rebuilt (missing or not computable, see log)\n", kinds[0], *subjectID)
			return
		}
		fmt.Printf("%s #%d: %s -> %s (incomplete=%t)\n",
			kinds[0], *subjectID, result.Previous.StringFixed(2), result.Balance.StringFixed(2), result.Incomplete)
		return
	}

	summary, err := workflow.RebuildBalances(ctx, updater, session, kinds, *continueOnError)
	if err != nil {
		logger.WithField("field", "balance-rebuild").Error(err.Error())
		fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("balance rebuild complete: updated=%d changed=%d skipped=%d failed=%d\n",
		summary.Updated, summary.Changed, summary.Skipped, summary.Failed)
}
