package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/domain"
)

var categoryCount = decimal.NewFromInt(int64(len(domain.BudgetCategories)))

// ProjectBudgets splits the project budget evenly across the fixed budget
// categories and compares each slice with the expenses booked in that category.
// Remaining may be negative. Expenses outside the known categories are not
// attributed to any slice.
func ProjectBudgets(project *domain.Project) []domain.Budget {
	allocated := project.Budget.Div(categoryCount)

	spent := make(map[domain.ExpenseCategory]decimal.Decimal, len(domain.BudgetCategories))
	for _, e := range project.Expenses {
		spent[e.Category] = spent[e.Category].Add(e.Amount)
	}

	budgets := make([]domain.Budget, 0, len(domain.BudgetCategories))
	for _, category := range domain.BudgetCategories {
		s := spent[category]
		budgets = append(budgets, domain.Budget{
			ProjectID: project.ID,
			Category:  category,
			Allocated: allocated,
			Spent:     s,
			Remaining: allocated.Sub(s),
		})
	}
	return budgets
}
