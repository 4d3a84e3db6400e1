package analytics

import (
	"github.com/google/uuid"
	"github.com/straye-as/relation-core/internal/domain"
)

// InvoiceRequest identifies the scheduled payment to invoice
type InvoiceRequest struct {
	ProjectID uuid.UUID `json:"projectId" validate:"required"`
	PaymentID uuid.UUID `json:"paymentId" validate:"required"`
	IssuedBy  string    `json:"issuedBy,omitempty" validate:"max=200"`
}

// resolveInvoice looks up the project, its client and the payment referenced by
// req. Any id missing from the snapshot is a NotFound error.
func resolveInvoice(projects []domain.Project, clients []*domain.Client, req InvoiceRequest) (*domain.Project, *domain.Client, *domain.PaymentSchedule, error) {
	var project *domain.Project
	for i := range projects {
		if projects[i].ID == req.ProjectID {
			project = &projects[i]
			break
		}
	}
	if project == nil {
		return nil, nil, nil, domain.NewNotFoundError("project", req.ProjectID)
	}

	var client *domain.Client
	for _, c := range clients {
		if c != nil && c.ID == project.ClientID {
			client = c
			break
		}
	}
	if client == nil {
		return nil, nil, nil, domain.NewNotFoundError("client", project.ClientID)
	}

	var payment *domain.PaymentSchedule
	for i := range project.Payments {
		if project.Payments[i].ID == req.PaymentID {
			payment = &project.Payments[i]
			break
		}
	}
	if payment == nil {
		return nil, nil, nil, domain.NewNotFoundError("payment", req.PaymentID)
	}

	return project, client, payment, nil
}
