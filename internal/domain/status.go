package domain

// DiscountKind selects how a discount amount is interpreted
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// IsValid checks if the DiscountKind is a valid enum value
func (k DiscountKind) IsValid() bool {
	switch k {
	case DiscountPercentage, DiscountFixed:
		return true
	}
	return false
}

// QuoteStatus represents the stored status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// IsValid checks if the QuoteStatus is a valid enum value
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// IsValid checks if the ProjectStatus is a valid enum value
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// MilestoneStatus represents the status of a project milestone
type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in-progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
	MilestoneStatusOverdue    MilestoneStatus = "overdue"
)

// IsValid checks if the MilestoneStatus is a valid enum value
func (s MilestoneStatus) IsValid() bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted, MilestoneStatusOverdue:
		return true
	}
	return false
}

// PaymentStatus represents the status of a scheduled payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsValid checks if the PaymentStatus is a valid enum value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusCancelled:
		return true
	}
	return false
}

// MeetingStatus represents the status of a project meeting
type MeetingStatus string

const (
	MeetingStatusScheduled   MeetingStatus = "scheduled"
	MeetingStatusCompleted   MeetingStatus = "completed"
	MeetingStatusCancelled   MeetingStatus = "cancelled"
	MeetingStatusRescheduled MeetingStatus = "rescheduled"
)

// IsValid checks if the MeetingStatus is a valid enum value
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusScheduled, MeetingStatusCompleted, MeetingStatusCancelled, MeetingStatusRescheduled:
		return true
	}
	return false
}

// ExpenseCategory classifies project expenses and budget slices
type ExpenseCategory string

const (
	ExpenseCategoryLicense      ExpenseCategory = "license"
	ExpenseCategorySubscription ExpenseCategory = "subscription"
	ExpenseCategoryHosting      ExpenseCategory = "hosting"
	ExpenseCategoryTools        ExpenseCategory = "tools"
	ExpenseCategoryTravel       ExpenseCategory = "travel"
	ExpenseCategoryOther        ExpenseCategory = "other"
)

// BudgetCategories is the fixed, ordered list of categories a project budget is split across
var BudgetCategories = []ExpenseCategory{
	ExpenseCategoryLicense,
	ExpenseCategorySubscription,
	ExpenseCategoryHosting,
	ExpenseCategoryTools,
	ExpenseCategoryTravel,
	ExpenseCategoryOther,
}

// IsValid checks if the ExpenseCategory is a valid enum value
func (c ExpenseCategory) IsValid() bool {
	for _, known := range BudgetCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ClientKind distinguishes contracted clients from prospects
type ClientKind string

const (
	ClientKindClient   ClientKind = "client"
	ClientKindProspect ClientKind = "prospect"
)

// ReportType selects which financial report is generated
type ReportType string

const (
	ReportTypeProfitLoss ReportType = "profit-loss"
	ReportTypeCashFlow   ReportType = "cash-flow"
	ReportTypeRevenue    ReportType = "revenue"
)

// IsValid checks if the ReportType is a valid enum value
func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeProfitLoss, ReportTypeCashFlow, ReportTypeRevenue:
		return true
	}
	return false
}
