// Package analytics aggregates revenue, expenses and budgets over a snapshot of
// projects. Nothing here mutates its inputs; every result is a new read model.
package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/straye-as/relation-core/internal/money"
)

// UnknownClientName labels revenue of projects whose client is not in the snapshot
const UnknownClientName = "Unknown client"

// SalesMetrics computes revenue figures relative to now.
//
// Monthly, quarterly and yearly revenue only count projects created in the
// current calendar month, quarter and year of now. TotalRevenue counts every
// project. RevenueByProject is keyed by project name, so projects sharing a
// name overwrite each other. TotalExpenses counts every expense regardless of
// approval or billable flags.
func SalesMetrics(projects []domain.Project, clients []*domain.Client, now time.Time) domain.SalesMetrics {
	clientNames := make(map[uuid.UUID]string, len(clients))
	for _, c := range clients {
		if c != nil {
			clientNames[c.ID] = c.DisplayName()
		}
	}

	metrics := domain.SalesMetrics{
		TotalRevenue:        decimal.Zero,
		MonthlyRevenue:      decimal.Zero,
		QuarterlyRevenue:    decimal.Zero,
		YearlyRevenue:       decimal.Zero,
		TotalExpenses:       decimal.Zero,
		AverageProjectValue: decimal.Zero,
		ProfitMargin:        decimal.Zero,
		ProjectCount:        len(projects),
		RevenueByClient:     make(map[string]decimal.Decimal),
		RevenueByProject:    make(map[string]decimal.Decimal),
		ComputedAt:          now,
	}

	year, month := now.Year(), now.Month()
	quarter := quarterOf(month)

	for i := range projects {
		p := &projects[i]
		created := p.CreatedAt.In(now.Location())

		if created.Year() == year {
			metrics.YearlyRevenue = metrics.YearlyRevenue.Add(p.TotalValue)
			if quarterOf(created.Month()) == quarter {
				metrics.QuarterlyRevenue = metrics.QuarterlyRevenue.Add(p.TotalValue)
			}
			if created.Month() == month {
				metrics.MonthlyRevenue = metrics.MonthlyRevenue.Add(p.TotalValue)
			}
		}

		metrics.TotalRevenue = metrics.TotalRevenue.Add(p.TotalValue)
		metrics.TotalExpenses = metrics.TotalExpenses.Add(p.TotalExpenses())

		name, ok := clientNames[p.ClientID]
		if !ok {
			name = UnknownClientName
		}
		metrics.RevenueByClient[name] = metrics.RevenueByClient[name].Add(p.TotalValue)
		metrics.RevenueByProject[p.Name] = p.TotalValue
	}

	metrics.AverageProjectValue = average(metrics.TotalRevenue, len(projects))
	metrics.ProfitMargin = money.Percent(metrics.TotalRevenue.Sub(metrics.TotalExpenses), metrics.TotalRevenue)

	return metrics
}

// quarterOf returns the calendar quarter (0-3) of a month
func quarterOf(m time.Month) int {
	return (int(m) - 1) / 3
}

// average divides total by count, returning zero for an empty set
func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}
