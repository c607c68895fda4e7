package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/advisor"
	"github.com/moneyhealth/backend/internal/health"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/moneyhealth/backend/internal/types"
	"github.com/shopspring/decimal"
)

// MonthDebt is a debt as it stands at the end of a month.
type MonthDebt struct {
	ID        uuid.UUID       `json:"id" example:"2e9b2f3c-1a52-4e2e-93a1-1a5d4a8e0c14"` // ID of the debt
	Type      string          `json:"type" example:"loan"`                               // Kind of debt
	Name      string          `json:"name" example:"Car loan"`                           // Name of the debt
	Remaining decimal.Decimal `json:"remaining" example:"8500"`                          // Outstanding amount at the end of the month
	Monthly   decimal.Decimal `json:"monthly" example:"350"`                             // Monthly payment. Zero once the debt is repaid.
}

type MonthLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf/months/2024-06"`                    // The month itself
	Health       string `json:"health" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf/months/2024-06/health"`           // Money health score
	Breakdown    string `json:"breakdown" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf/months/2024-06/breakdown"`     // Five-metric month score
	Trend        string `json:"trend" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf/months/2024-06/trend"`             // Trend over the last six months
	Tips         string `json:"tips" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf/months/2024-06/tips"`               // Tips for the month
	Report       string `json:"report" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf/months/2024-06/report"`           // Narrated report
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?profile=550dc009-cea6-4c12-b2a5-03446eb7b7cf&month=2024-06"` // Transactions of the month
}

// Month is the aggregated data of one month of a profile.
type Month struct {
	ProfileID        uuid.UUID        `json:"profileId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the profile
	Month            types.Month      `json:"month" example:"2024-06"`                                  // Year and month
	Currency         string           `json:"currency" example:"EUR"`                                   // Currency of all amounts
	Totals           ledger.Totals    `json:"totals"`                                                   // Sums per bucket
	IncomeBreakdown  ledger.Breakdown `json:"incomeBreakdown"`                                          // Income per category and sub category
	ExpenseBreakdown ledger.Breakdown `json:"expenseBreakdown"`                                         // Expenses per category and sub category
	Snapshot         ledger.Snapshot  `json:"snapshot"`                                                 // Balances at the end of the month
	Debts            []MonthDebt      `json:"debts"`                                                    // Debts at the end of the month
	Links            MonthLinks       `json:"links"`
}

// monthData is everything the month endpoints score.
type monthData struct {
	profile  models.Profile
	months   map[types.Month]ledger.Month
	month    ledger.Month
	prev     *ledger.Month
	snapshot ledger.Snapshot
	debts    []ledger.Debt // Outstanding at the end of the month
}

func (m monthData) score() health.PrimaryHealthScore {
	return health.ScoreMoney(m.month, m.snapshot, m.debts, m.prev)
}

func (m monthData) breakdown() health.TrendMetricScore {
	return health.ScoreMonth(m.month, m.prev)
}

func (m monthData) trend() *health.HealthTrend {
	return health.AnalyzeTrend(m.months, m.month.Month)
}

func (m monthData) tips() []health.Tip {
	return health.GenerateTips(m.breakdown(), m.trend(), m.profile.Targets())
}

func (m monthData) advisorInput() advisor.Input {
	breakdown := m.breakdown()
	trend := m.trend()

	return advisor.NewInput(
		m.profile.Currency,
		m.month,
		m.snapshot,
		m.debts,
		m.score(),
		breakdown,
		trend,
		health.GenerateTips(breakdown, trend, m.profile.Targets()),
	)
}

func newMonth(c *gin.Context, data monthData) Month {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/profiles/%s/months/%s", url, data.profile.ID, data.month.Month)

	debts := make([]MonthDebt, 0, len(data.debts))
	for _, d := range data.debts {
		debts = append(debts, MonthDebt{
			ID:        d.ID,
			Type:      d.Type,
			Name:      d.Name,
			Remaining: d.Total,
			Monthly:   d.Monthly,
		})
	}

	income := data.month.IncomeBreakdown
	if income == nil {
		income = ledger.Breakdown{}
	}

	expenses := data.month.ExpenseBreakdown
	if expenses == nil {
		expenses = ledger.Breakdown{}
	}

	return Month{
		ProfileID:        data.profile.ID,
		Month:            data.month.Month,
		Currency:         data.profile.Currency,
		Totals:           data.month.Totals,
		IncomeBreakdown:  income,
		ExpenseBreakdown: expenses,
		Snapshot:         data.snapshot,
		Debts:            debts,
		Links: MonthLinks{
			Self:         self,
			Health:       self + "/health",
			Breakdown:    self + "/breakdown",
			Trend:        self + "/trend",
			Tips:         self + "/tips",
			Report:       self + "/report",
			Transactions: fmt.Sprintf("%s/v1/transactions?profile=%s&month=%s", url, data.profile.ID, data.month.Month),
		},
	}
}

type MonthResponse struct {
	Data  *Month  `json:"data"`                                                    // Data for the month
	Error *string `json:"error" example:"there is no profile matching your query"` // The error, if any occurred
}

type HealthResponse struct {
	Data  *health.PrimaryHealthScore `json:"data"`                                                    // Money health score of the month
	Error *string                    `json:"error" example:"there is no profile matching your query"` // The error, if any occurred
}

type BreakdownResponse struct {
	Data  *health.TrendMetricScore `json:"data"`                                                    // Five-metric score of the month
	Error *string                  `json:"error" example:"there is no profile matching your query"` // The error, if any occurred
}

type TrendResponse struct {
	Data  *health.HealthTrend `json:"data"`                                                    // Trend, null if there is no history
	Error *string             `json:"error" example:"there is no profile matching your query"` // The error, if any occurred
}

type TipsResponse struct {
	Data  []health.Tip `json:"data"`                                                    // Tips for the month
	Error *string      `json:"error" example:"there is no profile matching your query"` // The error, if any occurred
}

type ReportResponse struct {
	Data  *advisor.Report `json:"data"`                                                    // Narrated health report and recommendations
	Error *string         `json:"error" example:"there is no profile matching your query"` // The error, if any occurred
}
