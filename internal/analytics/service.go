package analytics

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/straye-as/relation-core/internal/domain"
	"go.uber.org/zap"
)

// Service generates sales metrics, budgets, financial reports and invoices
// from caller-supplied snapshots. It is safe for concurrent use.
type Service struct {
	validate    *validator.Validate
	generatedBy string
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new analytics Service. generatedBy is stamped on
// reports and invoices whose request does not name an author.
func NewService(generatedBy string, logger *zap.Logger) *Service {
	return &Service{
		validate:    validator.New(),
		generatedBy: generatedBy,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock replaces the clock used for metrics and report timestamps
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SalesMetrics computes sales metrics relative to the service clock
func (s *Service) SalesMetrics(projects []domain.Project, clients []*domain.Client) domain.SalesMetrics {
	metrics := SalesMetrics(projects, clients, s.now())

	s.logger.Debug("computed sales metrics",
		zap.Int("projects", metrics.ProjectCount),
		zap.String("total_revenue", metrics.TotalRevenue.String()))

	return metrics
}

// ProjectBudgets returns the per-category budget snapshot of a project
func (s *Service) ProjectBudgets(project *domain.Project) []domain.Budget {
	return ProjectBudgets(project)
}

// FinancialReport generates a report of the given type over the period
func (s *Service) FinancialReport(projects []domain.Project, reportType domain.ReportType, period domain.Period) (*domain.FinancialReport, error) {
	return s.GenerateReport(projects, ReportRequest{Type: reportType, Period: period})
}

// GenerateReport validates the request, restricts the snapshot to the requested
// projects when ids are given, and returns a stamped report.
func (s *Service) GenerateReport(projects []domain.Project, req ReportRequest) (*domain.FinancialReport, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReportType, req.Type)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError(err)
	}

	scope := projects
	if len(req.ProjectIDs) > 0 {
		selected, err := SelectProjects(projects, req.ProjectIDs)
		if err != nil {
			s.logger.Warn("report references unknown project", zap.Error(err))
			return nil, fmt.Errorf("failed to generate %s report: %w", req.Type, err)
		}
		scope = selected
	}

	report, err := ComputeReport(scope, req.Type, req.Period)
	if err != nil {
		return nil, err
	}

	report.ID = uuid.New()
	report.GeneratedAt = s.now()
	report.GeneratedBy = s.author(req.GeneratedBy)

	s.logger.Info("generated financial report",
		zap.String("report_id", report.ID.String()),
		zap.String("type", string(report.Type)),
		zap.Time("period_start", req.Period.Start),
		zap.Time("period_end", req.Period.End),
		zap.Int("projects", len(report.ProjectIDs)))

	return report, nil
}

// GenerateInvoice builds an invoice for one scheduled payment of a project.
// The project, its client and the payment must all exist in the snapshot.
func (s *Service) GenerateInvoice(projects []domain.Project, clients []*domain.Client, req InvoiceRequest) (*domain.Invoice, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError(err)
	}

	project, client, payment, err := resolveInvoice(projects, clients, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice: %w", err)
	}

	invoice := &domain.Invoice{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		ProjectName: project.Name,
		ClientID:    client.ID,
		ClientName:  client.DisplayName(),
		ClientEmail: client.Email,
		PaymentID:   payment.ID,
		Description: payment.Description,
		Amount:      payment.Amount,
		DueDate:     payment.DueDate,
		IssuedAt:    s.now(),
		IssuedBy:    s.author(req.IssuedBy),
	}

	s.logger.Info("generated invoice",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("project_id", project.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", invoice.Amount.String()))

	return invoice, nil
}

func (s *Service) author(name string) string {
	if name != "" {
		return name
	}
	return s.generatedBy
}
