package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/relation-core/internal/analytics"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/straye-as/relation-core/internal/leads"
	"github.com/straye-as/relation-core/internal/snapshot"
)

const dateLayout = "2006-01-02"

func (a *app) metrics(snap *snapshot.Snapshot) error {
	m := a.analytics.SalesMetrics(snap.Projects, snap.Clients)
	f := a.formatter

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total revenue\t%s\n", f.Money(m.TotalRevenue))
	fmt.Fprintf(w, "This month\t%s\n", f.Money(m.MonthlyRevenue))
	fmt.Fprintf(w, "This quarter\t%s\n", f.Money(m.QuarterlyRevenue))
	fmt.Fprintf(w, "This year\t%s\n", f.Money(m.YearlyRevenue))
	fmt.Fprintf(w, "Expenses\t%s\n", f.Money(m.TotalExpenses))
	fmt.Fprintf(w, "Projects\t%d\n", m.ProjectCount)
	fmt.Fprintf(w, "Average project value\t%s\n", f.Money(m.AverageProjectValue))
	fmt.Fprintf(w, "Profit margin\t%s\n", f.Percent(m.ProfitMargin))

	for _, name := range sortedKeys(m.RevenueByClient) {
		fmt.Fprintf(w, "Client %s\t%s\n", name, f.Money(m.RevenueByClient[name]))
	}
	for _, name := range sortedKeys(m.RevenueByProject) {
		fmt.Fprintf(w, "Project %s\t%s\n", name, f.Money(m.RevenueByProject[name]))
	}
	return w.Flush()
}

func (a *app) budgets(snap *snapshot.Snapshot) error {
	f := a.formatter

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tCATEGORY\tALLOCATED\tSPENT\tREMAINING")
	for i := range snap.Projects {
		p := &snap.Projects[i]
		for _, b := range a.analytics.ProjectBudgets(p) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				p.Name, b.Category, f.Money(b.Allocated), f.Money(b.Spent), f.Money(b.Remaining))
		}
	}
	return w.Flush()
}

// report <type> <start> <end> [projectID...]
func (a *app) report(snap *snapshot.Snapshot, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: ledger report <profit-loss|cash-flow|revenue> <start> <end> [projectID...]")
	}

	start, err := time.ParseInLocation(dateLayout, args[1], time.Local)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.ParseInLocation(dateLayout, args[2], time.Local)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	ids, err := parseIDs(args[3:])
	if err != nil {
		return err
	}

	report, err := a.analytics.GenerateReport(snap.Projects, analytics.ReportRequest{
		Type: domain.ReportType(args[0]),
		Period: domain.Period{
			Start: start,
			// The end date covers the whole day
			End: end.AddDate(0, 0, 1).Add(-time.Nanosecond),
		},
		ProjectIDs: ids,
	})
	if err != nil {
		return err
	}

	f := a.formatter
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Report\t%s (%s)\n", report.Type, report.ID)
	fmt.Fprintf(w, "Period\t%s to %s\n", args[1], args[2])
	fmt.Fprintf(w, "Projects\t%d\n", len(report.ProjectIDs))

	switch {
	case report.ProfitLoss != nil:
		fmt.Fprintf(w, "Revenue\t%s\n", f.Money(report.ProfitLoss.Revenue))
		fmt.Fprintf(w, "Expenses\t%s\n", f.Money(report.ProfitLoss.Expenses))
		fmt.Fprintf(w, "Profit\t%s\n", f.Money(report.ProfitLoss.Profit))
		fmt.Fprintf(w, "Margin\t%s\n", f.Percent(report.ProfitLoss.ProfitMargin))
	case report.CashFlow != nil:
		fmt.Fprintf(w, "Inflow\t%s\n", f.Money(report.CashFlow.Inflow))
		fmt.Fprintf(w, "Outflow\t%s\n", f.Money(report.CashFlow.Outflow))
		fmt.Fprintf(w, "Net flow\t%s\n", f.Money(report.CashFlow.NetFlow))
	case report.Revenue != nil:
		fmt.Fprintf(w, "Revenue\t%s\n", f.Money(report.Revenue.TotalRevenue))
		fmt.Fprintf(w, "Average project value\t%s\n", f.Money(report.Revenue.AverageProjectValue))
	}

	fmt.Fprintf(w, "Generated\t%s by %s\n", report.GeneratedAt.Format(time.RFC3339), report.GeneratedBy)
	return w.Flush()
}

func (a *app) schedule(snap *snapshot.Snapshot) error {
	windows := a.cfg.Schedule
	f := a.formatter

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Payments due within %d days\n", windows.PaymentWindowDays)
	for _, p := range a.scheduling.UpcomingPayments(snap.Projects, windows.PaymentWindowDays) {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", p.DueDate.Format(dateLayout), f.Money(p.Amount), p.Description)
	}

	fmt.Fprintf(w, "Meetings within %d days\n", windows.MeetingWindowDays)
	for _, m := range a.scheduling.UpcomingMeetings(snap.Projects, windows.MeetingWindowDays) {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", m.ScheduledDate.Format("2006-01-02 15:04"), m.Title, m.Location)
	}

	fmt.Fprintln(w, "Overdue milestones")
	for _, m := range a.scheduling.OverdueMilestones(snap.Projects) {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", m.DueDate.Format(dateLayout), m.Title, m.Status)
	}

	fmt.Fprintf(w, "Milestones due within %d days\n", windows.MilestoneWindowDays)
	for _, m := range a.scheduling.UpcomingMilestones(snap.Projects, windows.MilestoneWindowDays) {
		fmt.Fprintf(w, "  %s\t%s\t%d%%\n", m.DueDate.Format(dateLayout), m.Title, m.Progress)
	}

	fmt.Fprintf(w, "Quotes expiring within %d days\n", windows.QuoteWindowDays)
	for _, q := range a.scheduling.ExpiringQuotes(snap.Quotes, windows.QuoteWindowDays) {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", q.ValidUntil.Format(dateLayout), q.Number, f.Money(q.Total))
	}

	return w.Flush()
}

// quote-number [year]
func (a *app) quoteNumber(snap *snapshot.Snapshot, args []string) error {
	year := time.Now().Year()
	if len(args) > 0 {
		y, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q: %w", args[0], err)
		}
		year = y
	}

	_, err := fmt.Fprintln(a.out, a.pricing.NextNumber(snap.QuoteSources(), year))
	return err
}

// invoice <projectID> <paymentID>
func (a *app) invoice(snap *snapshot.Snapshot, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: ledger invoice <projectID> <paymentID>")
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	inv, err := a.analytics.GenerateInvoice(snap.Projects, snap.Clients, analytics.InvoiceRequest{
		ProjectID: ids[0],
		PaymentID: ids[1],
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Invoice\t%s\n", inv.ID)
	fmt.Fprintf(w, "Client\t%s\n", inv.ClientName)
	fmt.Fprintf(w, "Project\t%s\n", inv.ProjectName)
	fmt.Fprintf(w, "Description\t%s\n", inv.Description)
	fmt.Fprintf(w, "Amount\t%s\n", a.formatter.Money(inv.Amount))
	fmt.Fprintf(w, "Due\t%s\n", inv.DueDate.Format(dateLayout))
	fmt.Fprintf(w, "Issued\t%s by %s\n", inv.IssuedAt.Format(dateLayout), inv.IssuedBy)
	return w.Flush()
}

// lead reads one lead as JSON and prints the prospect it becomes. The snapshot
// is only checked for duplicates, never written.
func (a *app) lead(snap *snapshot.Snapshot, in io.Reader) error {
	var lead leads.Lead
	if err := json.NewDecoder(in).Decode(&lead); err != nil {
		return fmt.Errorf("%w: failed to decode lead: %v", domain.ErrInvalidInput, err)
	}

	prospect, err := a.leads.CreateProspect(lead, snap.Clients)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(prospect)
}

func parseIDs(args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidInput, arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
