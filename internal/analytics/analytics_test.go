package analytics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/analytics"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func project(name string, clientID uuid.UUID, created time.Time, value string, expenses ...domain.Expense) domain.Project {
	return domain.Project{
		ID:         uuid.New(),
		Name:       name,
		ClientID:   clientID,
		Status:     domain.ProjectStatusActive,
		TotalValue: d(value),
		Budget:     d("600"),
		Expenses:   expenses,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func expense(amount string, category domain.ExpenseCategory, approved bool) domain.Expense {
	return domain.Expense{ID: uuid.New(), Amount: d(amount), Category: category, Approved: approved}
}

// =============================================================================
// SalesMetrics
// =============================================================================

func TestSalesMetrics_Empty(t *testing.T) {
	m := analytics.SalesMetrics(nil, nil, now)

	assertDecimal(t, "0", m.TotalRevenue)
	assertDecimal(t, "0", m.AverageProjectValue)
	assertDecimal(t, "0", m.ProfitMargin)
	assert.Equal(t, 0, m.ProjectCount)
	assert.NotNil(t, m.RevenueByClient)
	assert.NotNil(t, m.RevenueByProject)
}

func TestSalesMetrics_TimeBuckets(t *testing.T) {
	acme := &domain.Client{ID: uuid.New(), Name: "Ana", Company: "Acme"}
	bolt := &domain.Client{ID: uuid.New(), Name: "Bolt Ltd"}

	projects := []domain.Project{
		project("This month", acme.ID, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), "1000"),
		project("This quarter", acme.ID, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC), "2000"),
		project("This year", bolt.ID, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), "3000"),
		project("Last year", bolt.ID, time.Date(2023, time.May, 5, 0, 0, 0, 0, time.UTC), "4000"),
	}

	m := analytics.SalesMetrics(projects, []*domain.Client{acme, bolt}, now)

	assertDecimal(t, "1000", m.MonthlyRevenue)
	assertDecimal(t, "3000", m.QuarterlyRevenue)
	assertDecimal(t, "6000", m.YearlyRevenue)
	assertDecimal(t, "10000", m.TotalRevenue)
	assertDecimal(t, "2500", m.AverageProjectValue)
	assert.Equal(t, 4, m.ProjectCount)

	require.Len(t, m.RevenueByClient, 2)
	assertDecimal(t, "3000", m.RevenueByClient["Acme"])
	assertDecimal(t, "7000", m.RevenueByClient["Bolt Ltd"])
	assertDecimal(t, "4000", m.RevenueByProject["Last year"])
}

func TestSalesMetrics_ProfitMarginCountsAllExpenses(t *testing.T) {
	clientID := uuid.New()
	projects := []domain.Project{
		project("A", clientID, now, "1000",
			expense("100", domain.ExpenseCategoryHosting, true),
			expense("50", domain.ExpenseCategoryTravel, false),
		),
		project("B", clientID, now, "1000",
			expense("50", domain.ExpenseCategoryTools, false),
		),
	}

	m := analytics.SalesMetrics(projects, []*domain.Client{{ID: clientID, Name: "C"}}, now)

	assertDecimal(t, "200", m.TotalExpenses)
	// (2000 - 200) / 2000 * 100
	assertDecimal(t, "90", m.ProfitMargin)
}

func TestSalesMetrics_DuplicateProjectNamesOverwrite(t *testing.T) {
	clientID := uuid.New()
	projects := []domain.Project{
		project("Website", clientID, now, "1000"),
		project("Website", clientID, now, "2500"),
	}

	m := analytics.SalesMetrics(projects, nil, now)

	require.Len(t, m.RevenueByProject, 1)
	assertDecimal(t, "2500", m.RevenueByProject["Website"])
	assertDecimal(t, "3500", m.RevenueByClient[analytics.UnknownClientName])
}

// =============================================================================
// ProjectBudgets
// =============================================================================

func TestProjectBudgets(t *testing.T) {
	p := project("Budgeted", uuid.New(), now, "0",
		expense("30", domain.ExpenseCategoryHosting, true),
		expense("20", domain.ExpenseCategoryHosting, false),
		expense("150", domain.ExpenseCategoryTravel, true),
		expense("999", domain.ExpenseCategory("marketing"), true),
	)

	budgets := analytics.ProjectBudgets(&p)

	require.Len(t, budgets, 6)
	for i, b := range budgets {
		assert.Equal(t, domain.BudgetCategories[i], b.Category)
		assert.Equal(t, p.ID, b.ProjectID)
		assertDecimal(t, "100", b.Allocated)
	}

	hosting := budgets[2]
	assert.Equal(t, domain.ExpenseCategoryHosting, hosting.Category)
	assertDecimal(t, "50", hosting.Spent)
	assertDecimal(t, "50", hosting.Remaining)

	travel := budgets[4]
	assertDecimal(t, "150", travel.Spent)
	assertDecimal(t, "-50", travel.Remaining)

	license := budgets[0]
	assertDecimal(t, "0", license.Spent)
	assertDecimal(t, "100", license.Remaining)
}

// =============================================================================
// Reports
// =============================================================================

func reportFixture() []domain.Project {
	clientID := uuid.New()
	inside := project("Inside", clientID, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), "3000",
		expense("500", domain.ExpenseCategoryLicense, true),
	)
	paidInside := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	paidOutside := time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)
	inside.Payments = []domain.PaymentSchedule{
		{ID: uuid.New(), Amount: d("1200"), Status: domain.PaymentStatusPaid, PaidDate: &paidInside},
		{ID: uuid.New(), Amount: d("800"), Status: domain.PaymentStatusPaid, PaidDate: &paidOutside},
		{ID: uuid.New(), Amount: d("1000"), Status: domain.PaymentStatusPending},
	}

	boundary := project("Boundary", clientID, time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC), "1000",
		// expense dated outside the period still counts as outflow
		domain.Expense{ID: uuid.New(), Amount: d("300"), Category: domain.ExpenseCategoryTools, Date: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
	)

	outside := project("Outside", clientID, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "9000",
		expense("4000", domain.ExpenseCategoryOther, true),
	)

	return []domain.Project{inside, boundary, outside}
}

var march = domain.Period{
	Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC),
}

func TestComputeReport_ProfitLoss(t *testing.T) {
	report, err := analytics.ComputeReport(reportFixture(), domain.ReportTypeProfitLoss, march)
	require.NoError(t, err)
	require.NotNil(t, report.ProfitLoss)
	assert.Nil(t, report.CashFlow)
	assert.Nil(t, report.Revenue)

	assert.Len(t, report.ProjectIDs, 2)
	assertDecimal(t, "4000", report.ProfitLoss.Revenue)
	assertDecimal(t, "800", report.ProfitLoss.Expenses)
	assertDecimal(t, "3200", report.ProfitLoss.Profit)
	assertDecimal(t, "80", report.ProfitLoss.ProfitMargin)
}

func TestComputeReport_CashFlow(t *testing.T) {
	report, err := analytics.ComputeReport(reportFixture(), domain.ReportTypeCashFlow, march)
	require.NoError(t, err)
	require.NotNil(t, report.CashFlow)

	assertDecimal(t, "1200", report.CashFlow.Inflow)
	assertDecimal(t, "800", report.CashFlow.Outflow)
	assertDecimal(t, "400", report.CashFlow.NetFlow)
}

func TestComputeReport_Revenue(t *testing.T) {
	report, err := analytics.ComputeReport(reportFixture(), domain.ReportTypeRevenue, march)
	require.NoError(t, err)
	require.NotNil(t, report.Revenue)

	assertDecimal(t, "4000", report.Revenue.TotalRevenue)
	assert.Equal(t, 2, report.Revenue.ProjectCount)
	assertDecimal(t, "2000", report.Revenue.AverageProjectValue)
}

func TestComputeReport_EmptyPeriod(t *testing.T) {
	empty := domain.Period{
		Start: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC),
	}

	pl, err := analytics.ComputeReport(reportFixture(), domain.ReportTypeProfitLoss, empty)
	require.NoError(t, err)
	assertDecimal(t, "0", pl.ProfitLoss.ProfitMargin)

	rev, err := analytics.ComputeReport(reportFixture(), domain.ReportTypeRevenue, empty)
	require.NoError(t, err)
	assertDecimal(t, "0", rev.Revenue.AverageProjectValue)
	assert.Equal(t, 0, rev.Revenue.ProjectCount)
}

func TestComputeReport_InvalidType(t *testing.T) {
	_, err := analytics.ComputeReport(reportFixture(), domain.ReportType("balance-sheet"), march)
	assert.True(t, errors.Is(err, domain.ErrInvalidReportType))
}

// =============================================================================
// Service
// =============================================================================

func newService() *analytics.Service {
	svc := analytics.NewService("system", zap.NewNop())
	svc.SetClock(func() time.Time { return now })
	return svc
}

func TestService_GenerateReport_Stamped(t *testing.T) {
	svc := newService()

	report, err := svc.GenerateReport(reportFixture(), analytics.ReportRequest{
		Type:        domain.ReportTypeRevenue,
		Period:      march,
		GeneratedBy: "ana",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Equal(t, now, report.GeneratedAt)
	assert.Equal(t, "ana", report.GeneratedBy)
}

func TestService_FinancialReport_DefaultAuthor(t *testing.T) {
	report, err := newService().FinancialReport(reportFixture(), domain.ReportTypeCashFlow, march)
	require.NoError(t, err)
	assert.Equal(t, "system", report.GeneratedBy)
}

func TestService_GenerateReport_ProjectScope(t *testing.T) {
	projects := reportFixture()
	svc := newService()

	report, err := svc.GenerateReport(projects, analytics.ReportRequest{
		Type:       domain.ReportTypeRevenue,
		Period:     march,
		ProjectIDs: []uuid.UUID{projects[0].ID, projects[2].ID},
	})
	require.NoError(t, err)

	// projects[2] is outside the period
	assert.Equal(t, []uuid.UUID{projects[0].ID}, report.ProjectIDs)
	assertDecimal(t, "3000", report.Revenue.TotalRevenue)
}

func TestService_GenerateReport_UnknownProject(t *testing.T) {
	missing := uuid.New()

	report, err := newService().GenerateReport(reportFixture(), analytics.ReportRequest{
		Type:       domain.ReportTypeProfitLoss,
		Period:     march,
		ProjectIDs: []uuid.UUID{missing},
	})

	assert.Nil(t, report)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "project", nf.Entity)
	assert.Equal(t, missing, nf.ID)
}

func TestService_GenerateReport_Validation(t *testing.T) {
	svc := newService()

	_, err := svc.GenerateReport(nil, analytics.ReportRequest{Type: "quarterly", Period: march})
	assert.ErrorIs(t, err, domain.ErrInvalidReportType)

	_, err = svc.GenerateReport(nil, analytics.ReportRequest{
		Type:   domain.ReportTypeRevenue,
		Period: domain.Period{Start: march.End, End: march.Start},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "End")

	_, err = svc.GenerateReport(nil, analytics.ReportRequest{Type: domain.ReportTypeRevenue})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_GenerateInvoice(t *testing.T) {
	client := &domain.Client{ID: uuid.New(), Name: "Ana", Company: "Acme", Email: "billing@acme.test"}
	p := project("Portal", client.ID, now, "5000")
	due := now.AddDate(0, 0, 10)
	payment := domain.PaymentSchedule{ID: uuid.New(), Description: "Kickoff", Amount: d("1500"), DueDate: due, Status: domain.PaymentStatusPending}
	p.Payments = []domain.PaymentSchedule{payment}

	projects := []domain.Project{p}
	clients := []*domain.Client{client}
	svc := newService()

	t.Run("builds invoice from payment", func(t *testing.T) {
		inv, err := svc.GenerateInvoice(projects, clients, analytics.InvoiceRequest{ProjectID: p.ID, PaymentID: payment.ID})
		require.NoError(t, err)

		assert.Equal(t, "Acme", inv.ClientName)
		assert.Equal(t, "billing@acme.test", inv.ClientEmail)
		assert.Equal(t, "Portal", inv.ProjectName)
		assertDecimal(t, "1500", inv.Amount)
		assert.Equal(t, due, inv.DueDate)
		assert.Equal(t, now, inv.IssuedAt)
		assert.Equal(t, "system", inv.IssuedBy)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.GenerateInvoice(projects, clients, analytics.InvoiceRequest{ProjectID: uuid.New(), PaymentID: payment.ID})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := svc.GenerateInvoice(projects, clients, analytics.InvoiceRequest{ProjectID: p.ID, PaymentID: uuid.New()})
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "payment", nf.Entity)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := svc.GenerateInvoice(projects, nil, analytics.InvoiceRequest{ProjectID: p.ID, PaymentID: payment.ID})
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "client", nf.Entity)
		assert.Equal(t, client.ID, nf.ID)
	})

	t.Run("missing ids fail validation", func(t *testing.T) {
		_, err := svc.GenerateInvoice(projects, clients, analytics.InvoiceRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
