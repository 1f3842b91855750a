package balance

import (
	"context"
	"errors"
	"fmt"

	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/models"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	DirectionOwedToThem = "owed to them"
	DirectionOwedToUs   = "owed to us"
	DirectionSettled    = "settled"

	ActionWePay   = "we should pay them"
	ActionTheyPay = "they should pay us"
	ActionNone    = "no balance due"
)

type ViewItem struct {
	Key        string          `json:"key"`
	Amount     decimal.Decimal `json:"amount"`
	Incomplete bool            `json:"conversion_incomplete,omitempty"`
}

type ViewSection struct {
	Total decimal.Decimal `json:"total"`
	Items []ViewItem      `json:"items"`
}

type OpeningView struct {
	Amount           decimal.Decimal `json:"amount"`
	OriginalAmount   decimal.Decimal `json:"original_amount"`
	OriginalCurrency string          `json:"original_currency"`
}

type PaymentsView struct {
	In          decimal.Decimal `json:"in"`
	Out         decimal.Decimal `json:"out"`
	ReturnedIn  decimal.Decimal `json:"returned_in"`
	ReturnedOut decimal.Decimal `json:"returned_out"`
	Net         decimal.Decimal `json:"net"`
}

type ChecksView struct {
	OutstandingIn  decimal.Decimal `json:"outstanding_in"`
	OutstandingOut decimal.Decimal `json:"outstanding_out"`
	ReturnedIn     decimal.Decimal `json:"returned_in"`
	ReturnedOut    decimal.Decimal `json:"returned_out"`
}

type BalanceSummary struct {
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"`
	Action        string          `json:"action"`
	Formula       string          `json:"formula"`
	MatchesStored bool            `json:"matches_stored"`
	Stored        decimal.Decimal `json:"stored"`
	Difference    decimal.Decimal `json:"difference"`
}

// View is the read-only breakdown of one subject's balance.
type View struct {
	SubjectType          models.SubjectType         `json:"subject_type"`
	SubjectId            int                        `json:"subject_id"`
	Name                 string                     `json:"name"`
	Currency             string                     `json:"currency"`
	OpeningBalance       OpeningView                `json:"opening_balance"`
	Rights               ViewSection                `json:"rights"`
	Obligations          ViewSection                `json:"obligations"`
	Payments             PaymentsView               `json:"payments"`
	Checks               ChecksView                 `json:"checks"`
	Balance              BalanceSummary             `json:"balance"`
	Components           map[string]decimal.Decimal `json:"components"`
	Warnings             []string                   `json:"warnings"`
	ConversionIncomplete bool                       `json:"conversion_incomplete"`
}

type ViewResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	View    *View  `json:"view,omitempty"`
}

// ViewBuilder recomputes a balance from scratch and compares it to the stored one. It never writes.
type ViewBuilder struct {
	db        *gorm.DB
	calc      *Calculator
	tolerance decimal.Decimal
	logger    *logrus.Logger
}

func NewViewBuilder(db *gorm.DB, calc *Calculator, settings *config.BalanceSettings) *ViewBuilder {
	if settings == nil {
		settings = config.DefaultBalanceSettings()
	}
	return &ViewBuilder{
		db:        db,
		calc:      calc,
		tolerance: settings.ToleranceDecimal(),
		logger:    config.GetLogger(),
	}
}

// Build returns nil when the subject does not exist, and a failed result when it cannot be computed.
func (b *ViewBuilder) Build(ctx context.Context, kind models.SubjectType, id int) *ViewResult {
	ctx, span := tracer.Start(ctx, "balance.BuildView", trace.WithAttributes(
		attribute.String("subject_type", string(kind)),
		attribute.Int("subject_id", id),
	))
	defer span.End()

	if !kind.IsValid() {
		return &ViewResult{Success: false, Error: ErrUnknownSubjectType.Error()}
	}
	subject, err := models.FetchSubject(ctx, b.db, kind, id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil
		}
		config.LogError(b.logger, "view.go", "Build", "fetching subject", map[string]interface{}{"kind": kind, "id": id}, err)
		return &ViewResult{Success: false, Error: err.Error()}
	}
	comps, err := b.calc.calculate(ctx, subject)
	if err != nil {
		span.RecordError(err)
		return &ViewResult{Success: false, Error: err.Error()}
	}
	return &ViewResult{Success: true, View: b.render(subject, comps)}
}

func (b *ViewBuilder) render(subject models.LedgerSubject, comps *Components) *View {
	rightsKeys, obligationKeys := Partition(comps.Kind)
	rights := section(comps, rightsKeys)
	obligations := section(comps, obligationKeys)

	amount := utils.RoundMoney(Aggregate(comps.OpeningBalance, comps.Values, rightsKeys, obligationKeys))
	stored := utils.RoundMoney(subject.Ledger().CurrentBalance)
	difference := utils.RoundMoney(amount.Sub(stored))
	direction, action := Direction(amount)

	v := comps.Values
	return &View{
		SubjectType: comps.Kind,
		SubjectId:   comps.SubjectId,
		Name:        subject.GetName(),
		Currency:    comps.OpeningCurrency,
		OpeningBalance: OpeningView{
			Amount:           comps.OpeningBalance,
			OriginalAmount:   comps.OpeningOriginal,
			OriginalCurrency: comps.OpeningCurrency,
		},
		Rights:      rights,
		Obligations: obligations,
		Payments: PaymentsView{
			In:          v[KeyPaymentsIn],
			Out:         v[KeyPaymentsOut],
			ReturnedIn:  v[KeyReturnedChecksIn],
			ReturnedOut: v[KeyReturnedChecksOut],
			Net:         v[KeyPaymentsIn].Sub(v[KeyReturnedChecksIn]).Sub(v[KeyPaymentsOut]).Add(v[KeyReturnedChecksOut]),
		},
		Checks: ChecksView{
			OutstandingIn:  v[KeyChecksIn],
			OutstandingOut: v[KeyChecksOut],
			ReturnedIn:     v[KeyReturnedChecksIn],
			ReturnedOut:    v[KeyReturnedChecksOut],
		},
		Balance: BalanceSummary{
			Amount:        amount,
			Direction:     direction,
			Action:        action,
			Formula:       formula(comps.OpeningBalance, rights.Total, obligations.Total, amount),
			MatchesStored: difference.Abs().LessThanOrEqual(b.tolerance),
			Stored:        stored,
			Difference:    difference,
		},
		Components:           v,
		Warnings:             comps.Warnings,
		ConversionIncomplete: comps.IsIncomplete(),
	}
}

func section(comps *Components, keys []string) ViewSection {
	s := ViewSection{Total: decimal.Zero, Items: make([]ViewItem, 0, len(keys))}
	for _, k := range keys {
		s.Items = append(s.Items, ViewItem{Key: k, Amount: comps.Values[k], Incomplete: comps.Incomplete[k]})
	}
	s.Total = sumKeys(comps.Values, keys)
	return s
}

// Direction describes a balance by its sign: positive is owed to the subject.
func Direction(amount decimal.Decimal) (direction string, action string) {
	switch amount.Sign() {
	case 1:
		return DirectionOwedToThem, ActionWePay
	case -1:
		return DirectionOwedToUs, ActionTheyPay
	}
	return DirectionSettled, ActionNone
}

func formula(opening, rights, obligations, amount decimal.Decimal) string {
	return fmt.Sprintf("%s + %s - %s = %s",
		opening.StringFixed(utils.MoneyPlaces),
		rights.StringFixed(utils.MoneyPlaces),
		obligations.StringFixed(utils.MoneyPlaces),
		amount.StringFixed(utils.MoneyPlaces),
	)
}
