package analytics

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/straye-as/relation-core/internal/money"
)

// ReportRequest describes a financial report to generate
type ReportRequest struct {
	Type   domain.ReportType `json:"type" validate:"required"`
	Period domain.Period     `json:"period"`
	// ProjectIDs restricts the report to these projects; every id must exist
	ProjectIDs  []uuid.UUID `json:"projectIds,omitempty"`
	GeneratedBy string      `json:"generatedBy,omitempty" validate:"max=200"`
}

// ComputeReport filters projects to those created inside the period and
// computes the report body for the requested type. The result is not stamped
// with an id or generation time.
func ComputeReport(projects []domain.Project, reportType domain.ReportType, period domain.Period) (*domain.FinancialReport, error) {
	if !reportType.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReportType, reportType)
	}

	inPeriod := FilterByCreation(projects, period)

	report := &domain.FinancialReport{
		Type:       reportType,
		Period:     period,
		ProjectIDs: make([]uuid.UUID, 0, len(inPeriod)),
	}
	for _, p := range inPeriod {
		report.ProjectIDs = append(report.ProjectIDs, p.ID)
	}

	switch reportType {
	case domain.ReportTypeProfitLoss:
		report.ProfitLoss = profitLoss(inPeriod)
	case domain.ReportTypeCashFlow:
		report.CashFlow = cashFlow(inPeriod, period)
	case domain.ReportTypeRevenue:
		report.Revenue = revenue(inPeriod)
	}

	return report, nil
}

// FilterByCreation returns the projects whose CreatedAt lies inside the inclusive period
func FilterByCreation(projects []domain.Project, period domain.Period) []domain.Project {
	var result []domain.Project
	for _, p := range projects {
		if period.Contains(p.CreatedAt) {
			result = append(result, p)
		}
	}
	return result
}

// SelectProjects returns the projects with the given ids in the order requested.
// A missing id fails the whole selection.
func SelectProjects(projects []domain.Project, ids []uuid.UUID) ([]domain.Project, error) {
	byID := make(map[uuid.UUID]int, len(projects))
	for i, p := range projects {
		byID[p.ID] = i
	}

	selected := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			return nil, domain.NewNotFoundError("project", id)
		}
		selected = append(selected, projects[i])
	}
	return selected, nil
}

func sumRevenue(projects []domain.Project) decimal.Decimal {
	total := decimal.Zero
	for _, p := range projects {
		total = total.Add(p.TotalValue)
	}
	return total
}

func sumExpenses(projects []domain.Project) decimal.Decimal {
	total := decimal.Zero
	for i := range projects {
		total = total.Add(projects[i].TotalExpenses())
	}
	return total
}

func profitLoss(projects []domain.Project) *domain.ProfitLossData {
	revenue := sumRevenue(projects)
	expenses := sumExpenses(projects)
	profit := revenue.Sub(expenses)

	return &domain.ProfitLossData{
		Revenue:      revenue,
		Expenses:     expenses,
		Profit:       profit,
		ProfitMargin: money.Percent(profit, revenue),
	}
}

// cashFlow counts payments paid inside the period as inflow. Outflow is every
// expense of the selected projects; expense dates are not filtered, the
// project creation date already is.
func cashFlow(projects []domain.Project, period domain.Period) *domain.CashFlowData {
	inflow := decimal.Zero
	for _, p := range projects {
		for _, payment := range p.Payments {
			if payment.PaidDate != nil && period.Contains(*payment.PaidDate) {
				inflow = inflow.Add(payment.Amount)
			}
		}
	}
	outflow := sumExpenses(projects)

	return &domain.CashFlowData{
		Inflow:  inflow,
		Outflow: outflow,
		NetFlow: inflow.Sub(outflow),
	}
}

func revenue(projects []domain.Project) *domain.RevenueData {
	total := sumRevenue(projects)
	return &domain.RevenueData{
		TotalRevenue:        total,
		ProjectCount:        len(projects),
		AverageProjectValue: average(total, len(projects)),
	}
}
