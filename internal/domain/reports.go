package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a derived allocated/spent/remaining snapshot for one project category
type Budget struct {
	ProjectID uuid.UUID       `json:"projectId"`
	Category  ExpenseCategory `json:"category"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// SalesMetrics is a point-in-time read model over a project collection
type SalesMetrics struct {
	TotalRevenue        decimal.Decimal            `json:"totalRevenue"`
	MonthlyRevenue      decimal.Decimal            `json:"monthlyRevenue"`
	QuarterlyRevenue    decimal.Decimal            `json:"quarterlyRevenue"`
	YearlyRevenue       decimal.Decimal            `json:"yearlyRevenue"`
	TotalExpenses       decimal.Decimal            `json:"totalExpenses"`
	ProjectCount        int                        `json:"projectCount"`
	AverageProjectValue decimal.Decimal            `json:"averageProjectValue"`
	ProfitMargin        decimal.Decimal            `json:"profitMargin"`
	RevenueByClient     map[string]decimal.Decimal `json:"revenueByClient"`
	RevenueByProject    map[string]decimal.Decimal `json:"revenueByProject"`
	ComputedAt          time.Time                  `json:"computedAt"`
}

// Period is an inclusive time range
type Period struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtefield=Start"`
}

// Contains reports whether t lies within the inclusive period
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// ProfitLossData is the body of a profit-loss report
type ProfitLossData struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Expenses     decimal.Decimal `json:"expenses"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

// CashFlowData is the body of a cash-flow report
type CashFlowData struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	NetFlow decimal.Decimal `json:"netFlow"`
}

// RevenueData is the body of a revenue report
type RevenueData struct {
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	ProjectCount        int             `json:"projectCount"`
	AverageProjectValue decimal.Decimal `json:"averageProjectValue"`
}

// FinancialReport is a derived, point-in-time summary over a filtered project set.
// Exactly one of the data sections is set, matching Type.
type FinancialReport struct {
	ID          uuid.UUID       `json:"id"`
	Type        ReportType      `json:"type"`
	Period      Period          `json:"period"`
	ProjectIDs  []uuid.UUID     `json:"projectIds"`
	ProfitLoss  *ProfitLossData `json:"profitLoss,omitempty"`
	CashFlow    *CashFlowData   `json:"cashFlow,omitempty"`
	Revenue     *RevenueData    `json:"revenue,omitempty"`
	GeneratedAt time.Time       `json:"generatedAt"`
	GeneratedBy string          `json:"generatedBy"`
}

// Invoice is a billing document derived from one scheduled payment of a project
type Invoice struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"projectId"`
	ProjectName string          `json:"projectName"`
	ClientID    uuid.UUID       `json:"clientId"`
	ClientName  string          `json:"clientName"`
	ClientEmail string          `json:"clientEmail,omitempty"`
	PaymentID   uuid.UUID       `json:"paymentId"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	IssuedAt    time.Time       `json:"issuedAt"`
	IssuedBy    string          `json:"issuedBy"`
}
