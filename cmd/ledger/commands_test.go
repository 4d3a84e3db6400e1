package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/config"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/straye-as/relation-core/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testApp() (*app, *bytes.Buffer) {
	cfg := &config.Config{
		App:      config.AppConfig{Locale: "en-US", Currency: "USD"},
		Pricing:  config.PricingConfig{QuoteNumberPrefix: "COT", DefaultTaxRate: 16, ValidityDays: 30},
		Schedule: config.ScheduleConfig{PaymentWindowDays: 30, MeetingWindowDays: 7, MilestoneWindowDays: 7, QuoteWindowDays: 7},
		Reports:  config.ReportsConfig{GeneratedBy: "system"},
	}
	a := newApp(cfg, zap.NewNop())
	out := &bytes.Buffer{}
	a.out = out
	return a, out
}

func testSnapshot() (*snapshot.Snapshot, uuid.UUID, uuid.UUID) {
	clientID, projectID, paymentID := uuid.New(), uuid.New(), uuid.New()
	snap := &snapshot.Snapshot{
		Clients: []*domain.Client{{ID: clientID, Name: "Ana", Company: "Acme"}},
		Quotes: []*domain.Quote{
			{ID: uuid.New(), Number: "COT-2023-001", ClientID: clientID},
			{ID: uuid.New(), Number: "COT-2023-002", ClientID: clientID},
		},
		Projects: []domain.Project{{
			ID:         projectID,
			Name:       "Portal",
			ClientID:   clientID,
			Budget:     decimal.NewFromInt(600),
			TotalValue: decimal.NewFromInt(3000),
			CreatedAt:  time.Date(2023, time.May, 10, 0, 0, 0, 0, time.Local),
			Payments: []domain.PaymentSchedule{{
				ID:          paymentID,
				ProjectID:   projectID,
				Description: "Deposit",
				Amount:      decimal.NewFromInt(1500),
				DueDate:     time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
				Status:      domain.PaymentStatusPending,
			}},
		}},
	}
	snap.Link()
	return snap, projectID, paymentID
}

func TestQuoteNumber(t *testing.T) {
	a, out := testApp()
	snap, _, _ := testSnapshot()

	require.NoError(t, a.quoteNumber(snap, []string{"2023"}))
	assert.Equal(t, "COT-2023-003\n", out.String())

	assert.Error(t, a.quoteNumber(snap, []string{"next"}))
}

func TestBudgets(t *testing.T) {
	a, out := testApp()
	snap, _, _ := testSnapshot()

	require.NoError(t, a.budgets(snap))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[1], "license")
	assert.Contains(t, lines[1], "100.00 USD")
}

func TestReport(t *testing.T) {
	a, out := testApp()
	snap, _, _ := testSnapshot()

	require.NoError(t, a.report(snap, []string{"revenue", "2023-05-10", "2023-05-10"}))
	assert.Contains(t, out.String(), "3,000.00 USD")

	err := a.report(snap, []string{"forecast", "2023-01-01", "2023-12-31"})
	assert.ErrorIs(t, err, domain.ErrInvalidReportType)

	err = a.report(snap, []string{"revenue", "2023-01-01", "2023-12-31", uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Error(t, a.report(snap, []string{"revenue", "01/01/2023", "2023-12-31"}))
}

func TestInvoice(t *testing.T) {
	a, out := testApp()
	snap, projectID, paymentID := testSnapshot()

	require.NoError(t, a.invoice(snap, []string{projectID.String(), paymentID.String()}))
	assert.Contains(t, out.String(), "Acme")
	assert.Contains(t, out.String(), "1,500.00 USD")
	assert.Contains(t, out.String(), "by system")

	err := a.invoice(snap, []string{projectID.String(), uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = a.invoice(snap, []string{projectID.String(), "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLead(t *testing.T) {
	a, out := testApp()
	snap, _, _ := testSnapshot()

	in := strings.NewReader(`{"name":" Bea ","email":"BEA@example.com","platform":"WhatsApp"}`)
	require.NoError(t, a.lead(snap, in))

	var prospect domain.Client
	require.NoError(t, json.Unmarshal(out.Bytes(), &prospect))
	assert.Equal(t, "Bea", prospect.Name)
	assert.Equal(t, "bea@example.com", prospect.Email)
	assert.Equal(t, domain.ClientKindProspect, prospect.Kind)

	snap.Clients[0].Email = "bea@example.com"
	err := a.lead(snap, strings.NewReader(`{"name":"Bea","email":"bea@example.com","platform":"web"}`))
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = a.lead(snap, strings.NewReader(`{"name":"Bea","platform":"web"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = a.lead(snap, strings.NewReader(`not json`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
