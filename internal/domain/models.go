package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client represents a customer or prospect that quotes and projects belong to.
// Quotes are held by reference so the same entity can also live in a flat quote list.
type Client struct {
	ID                uuid.UUID  `json:"id"`
	Kind              ClientKind `json:"kind"`
	Name              string     `json:"name"`
	Company           string     `json:"company,omitempty"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Platform          string     `json:"platform,omitempty"`
	ServiceOfInterest string     `json:"serviceOfInterest,omitempty"`
	ContactDate       *time.Time `json:"contactDate,omitempty"`
	Quotes            []*Quote   `json:"quotes,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// DisplayName returns the name used when grouping revenue by client
func (c *Client) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}

// QuoteItem is a priced line within a quote
type QuoteItem struct {
	ID           uuid.UUID       `json:"id"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountKind DiscountKind    `json:"discountKind"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// QuoteStatusChange is one entry of a quote's append-only status history
type QuoteStatusChange struct {
	From      *QuoteStatus `json:"from,omitempty"`
	To        QuoteStatus  `json:"to"`
	ChangedAt time.Time    `json:"changedAt"`
	ChangedBy string       `json:"changedBy,omitempty"`
	Note      string       `json:"note,omitempty"`
}

// Quote represents a priced proposal sent to a client or prospect
type Quote struct {
	ID                 uuid.UUID           `json:"id"`
	Number             string              `json:"number"`
	ClientID           uuid.UUID           `json:"clientId"`
	Title              string              `json:"title,omitempty"`
	Date               time.Time           `json:"date"`
	ValidUntil         time.Time           `json:"validUntil"`
	Items              []QuoteItem         `json:"items"`
	GlobalDiscount     decimal.Decimal     `json:"globalDiscount"`
	GlobalDiscountKind DiscountKind        `json:"globalDiscountKind"`
	TaxRate            decimal.Decimal     `json:"taxRate"`
	Status             QuoteStatus         `json:"status"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	Total              decimal.Decimal     `json:"total"`
	Notes              string              `json:"notes,omitempty"`
	History            []QuoteStatusChange `json:"history,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// Project represents contracted work for exactly one client
type Project struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	ClientID    uuid.UUID         `json:"clientId"`
	Description string            `json:"description,omitempty"`
	Status      ProjectStatus     `json:"status"`
	Budget      decimal.Decimal   `json:"budget"`
	TotalValue  decimal.Decimal   `json:"totalValue"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	Milestones  []Milestone       `json:"milestones,omitempty"`
	Notes       []Note            `json:"notes,omitempty"`
	Payments    []PaymentSchedule `json:"payments,omitempty"`
	Meetings    []Meeting         `json:"meetings,omitempty"`
	Expenses    []Expense         `json:"expenses,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Milestone is a dated deliverable checkpoint within a project.
// Dependencies are informational only.
type Milestone struct {
	ID            uuid.UUID       `json:"id"`
	ProjectID     uuid.UUID       `json:"projectId"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	DueDate       time.Time       `json:"dueDate"`
	CompletedDate *time.Time      `json:"completedDate,omitempty"`
	Status        MilestoneStatus `json:"status"`
	Progress      int             `json:"progress"`
	Dependencies  []uuid.UUID     `json:"dependencies,omitempty"`
}

// Note is a free-text entry attached to a project
type Note struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentSchedule is an expected payment from the client for a project
type PaymentSchedule struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"projectId"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	PaidDate    *time.Time      `json:"paidDate,omitempty"`
	Status      PaymentStatus   `json:"status"`
}

// Meeting is a scheduled meeting for a project
type Meeting struct {
	ID            uuid.UUID     `json:"id"`
	ProjectID     uuid.UUID     `json:"projectId"`
	Title         string        `json:"title"`
	ScheduledDate time.Time     `json:"scheduledDate"`
	Duration      int           `json:"duration"` // minutes
	Location      string        `json:"location,omitempty"`
	Status        MeetingStatus `json:"status"`
}

// Expense is a cost booked against a project
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"projectId"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
	Billable    bool            `json:"billable"`
	Approved    bool            `json:"approved"`
}

// TotalExpenses sums every expense of the project regardless of approval or billable flags
func (p *Project) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}
