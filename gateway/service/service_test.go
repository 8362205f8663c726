package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

func floatPtr(v float64) *float64 { return &v }

func newMockServices() (*storex.Store, *BusinessDirectoryService, *AnalyticsService) {
	st := storex.New()
	directory := NewBusinessDirectoryService(nil, st.MasterData)
	analytics := NewAnalyticsService(nil, st.MasterData, st.Appointments, st.Invoices, st.Leads)
	return st, directory, analytics
}

func TestLookupServiceAcrossDirectoryAmbiguous(t *testing.T) {
	t.Parallel()

	_, directory, _ := newMockServices()
	resp, err := directory.LookupService(context.Background(), domainx.ServiceLookupRequest{ServiceName: "haircut"})
	if err != nil {
		t.Fatalf("LookupService: %v", err)
	}
	if len(resp.BusinessCandidates) != 2 {
		t.Fatalf("expected two businesses offering haircuts, got %+v", resp.BusinessCandidates)
	}
	// Directory scan is ordered by business name.
	if resp.BusinessCandidates[0].BusinessID != 1003 || resp.BusinessCandidates[1].BusinessID != 1001 {
		t.Fatalf("unexpected candidate order: %+v", resp.BusinessCandidates)
	}
	if len(resp.ServiceMatches) != 2 {
		t.Fatalf("unexpected service matches: %+v", resp.ServiceMatches)
	}
	if resp.Message != "Multiple businesses offer this service. Please choose the intended business." {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestLookupServiceNoDirectoryMatch(t *testing.T) {
	t.Parallel()

	_, directory, _ := newMockServices()
	resp, err := directory.LookupService(context.Background(), domainx.ServiceLookupRequest{ServiceName: "quantum tarot"})
	if err != nil {
		t.Fatalf("LookupService: %v", err)
	}
	if resp.ServiceMatches == nil || len(resp.ServiceMatches) != 0 {
		t.Fatalf("expected empty non-nil matches, got %+v", resp.ServiceMatches)
	}
	if resp.Message != "No businesses currently offer a service with that name." {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestLookupServiceWithBusinessIDAddsHaircutHint(t *testing.T) {
	t.Parallel()

	_, directory, _ := newMockServices()
	resp, err := directory.LookupService(context.Background(), domainx.ServiceLookupRequest{
		ServiceName: "haircut",
		BusinessID:  1001,
	})
	if err != nil {
		t.Fatalf("LookupService: %v", err)
	}
	if resp.Business == nil || resp.Business.BusinessID != 1001 {
		t.Fatalf("unexpected business %+v", resp.Business)
	}
	if len(resp.Matches) != 2 {
		t.Fatalf("expected both haircut services, got %+v", resp.Matches)
	}
	if resp.ExactMatch != nil {
		t.Fatalf("generic query must not resolve exactly, got %+v", resp.ExactMatch)
	}
	if !strings.Contains(resp.Message, "Please specify which haircut service you need.") {
		t.Fatalf("missing haircut hint in %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "Kids Haircut, Signature Haircut") {
		t.Fatalf("hint must list haircut services sorted, got %q", resp.Message)
	}
}

func TestLookupServiceExactMatch(t *testing.T) {
	t.Parallel()

	_, directory, _ := newMockServices()
	resp, err := directory.LookupService(context.Background(), domainx.ServiceLookupRequest{
		ServiceName: "Classic Facial",
		BusinessID:  1001,
	})
	if err != nil {
		t.Fatalf("LookupService: %v", err)
	}
	if resp.ExactMatch == nil || resp.ExactMatch.ServiceID != 102 {
		t.Fatalf("expected exact match on 102, got %+v", resp.ExactMatch)
	}
	if resp.Message != "" {
		t.Fatalf("single exact match needs no guidance, got %q", resp.Message)
	}
}

func TestLookupServiceUnknownBusiness(t *testing.T) {
	t.Parallel()

	_, directory, _ := newMockServices()
	_, err := directory.LookupService(context.Background(), domainx.ServiceLookupRequest{
		ServiceName: "haircut",
		BusinessID:  9999,
	})
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected service error, got %v", err)
	}
	if !strings.Contains(svcErr.Message, "9999") {
		t.Fatalf("error must name the business, got %q", svcErr.Message)
	}
}

func TestLookupServiceAmbiguousBusinessName(t *testing.T) {
	t.Parallel()

	_, directory, _ := newMockServices()
	resp, err := directory.LookupService(context.Background(), domainx.ServiceLookupRequest{
		ServiceName:  "haircut",
		BusinessName: "chill",
	})
	if err != nil {
		t.Fatalf("LookupService: %v", err)
	}
	if len(resp.BusinessCandidates) != 3 {
		t.Fatalf("expected every chill* business, got %+v", resp.BusinessCandidates)
	}
	if !strings.Contains(resp.Message, "choose the correct business") {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestAnalyticsReportAggregatesMockData(t *testing.T) {
	t.Parallel()

	st, _, analytics := newMockServices()
	st.Appointments.Book(domainx.AppointmentRequest{
		BusinessID:   1001,
		CustomerName: "Priya",
		ServiceID:    101,
		Datetime:     "2026-09-03T10:00:00+08:00",
	})
	st.Invoices.Create(domainx.InvoiceRequest{
		BusinessID:   1001,
		CustomerName: "Alex Tan",
		Items:        []domainx.LineItem{{Description: "Classic Facial", Quantity: 1, UnitPrice: floatPtr(68.0)}},
	})
	st.Leads.Create(domainx.LeadCreateRequest{BusinessID: 1001, Name: "Nora", Source: "walk-in"})

	resp, err := analytics.GenerateReport(context.Background(), domainx.AnalyticsRequest{
		BusinessID: 1001,
		Metrics:    []string{"footfall", "revenue", "leads"},
	})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}

	if resp.Footfall != 3 {
		t.Fatalf("unexpected footfall %d", resp.Footfall)
	}
	if resp.Revenue != "SGD 68.00" {
		t.Fatalf("unexpected revenue %q", resp.Revenue)
	}
	if resp.TopAppointmentService == nil || resp.TopAppointmentService.ServiceID != 101 || resp.TopAppointmentService.BookingCount != 2 {
		t.Fatalf("unexpected top service %+v", resp.TopAppointmentService)
	}
	if resp.HighestRevenueService == nil || resp.HighestRevenueService.ServiceID != 101 || resp.HighestRevenueService.TotalRevenue != 76.0 {
		t.Fatalf("unexpected highest revenue service %+v", resp.HighestRevenueService)
	}
	if resp.InvoiceSummary == nil || resp.InvoiceSummary.OutstandingTotal != 68.0 || resp.InvoiceSummary.PaidTotal != 0 {
		t.Fatalf("unexpected invoice summary %+v", resp.InvoiceSummary)
	}
	if resp.AppointmentSummary == nil || resp.AppointmentSummary.UniqueCustomers != 3 {
		t.Fatalf("unexpected appointment summary %+v", resp.AppointmentSummary)
	}
	if resp.LeadSummary == nil || resp.LeadSummary.SourceBreakdown["walk-in"] != 1 {
		t.Fatalf("unexpected lead summary %+v", resp.LeadSummary)
	}
}

func TestDailySummaryFallbackNarrative(t *testing.T) {
	t.Parallel()

	st, _, analytics := newMockServices()
	summaries := NewDailySummaryService(nil, st.MasterData, analytics, NewModelSummaryGenerator(nil, "gemini-1.5-flash"))

	resp, err := summaries.Generate(context.Background(), domainx.DailySummaryRequest{BusinessID: 1001, Date: "2026-08-30"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Business.BusinessID != 1001 {
		t.Fatalf("unexpected business %+v", resp.Business)
	}
	if resp.Date != "2026-08-30" {
		t.Fatalf("unexpected date %q", resp.Date)
	}
	if !strings.HasPrefix(resp.Summary, "Summary for Chillbreeze Orchard on 2026-08-30:") {
		t.Fatalf("unexpected summary %q", resp.Summary)
	}
	if !strings.Contains(resp.Summary, "Action: Review detailed metrics for deeper insights.") {
		t.Fatalf("fallback must recommend an action, got %q", resp.Summary)
	}

	keys := make(map[string]bool)
	for _, metric := range resp.Metrics {
		keys[metric.Key] = true
	}
	for _, want := range []string{"footfall", "total_revenue"} {
		if !keys[want] {
			t.Fatalf("missing metric %q in %+v", want, resp.Metrics)
		}
	}
}

func TestLiveOpsEventFeed(t *testing.T) {
	t.Parallel()

	st, _, _ := newMockServices()
	liveOps := NewLiveOperationsService(nil, st.MasterData, st.Appointments, st.Invoices, st.Leads, st.Campaigns)

	today := time.Now().UTC().Format(time.RFC3339)
	st.Appointments.Book(domainx.AppointmentRequest{
		BusinessID:   1001,
		CustomerName: "Priya",
		ServiceID:    101,
		Datetime:     today,
	})
	created := st.Invoices.Create(domainx.InvoiceRequest{
		BusinessID:   1001,
		CustomerName: "Alex Tan",
		Items:        []domainx.LineItem{{Description: "Classic Facial", Quantity: 1, UnitPrice: floatPtr(68.0)}},
	})
	if _, err := st.Invoices.MarkPaid(created.InvoiceID); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	st.Leads.Create(domainx.LeadCreateRequest{BusinessID: 1001, Name: "Nora", Source: "walk-in"})
	st.Campaigns.Send(domainx.CampaignRequest{
		CustomerName: "Alex",
		PhoneNumber:  "+6591234567",
		OfferCode:    "CHILL20",
	})

	resp, err := liveOps.Events(context.Background(), domainx.LiveOpsRequest{BusinessID: 1001})
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	// Appointment, invoice issued, payment, lead, campaign. Seeded 2025
	// appointments fall outside today's window.
	if resp.Total != 5 {
		t.Fatalf("unexpected event count %d: %+v", resp.Total, resp.Events)
	}
	kinds := make(map[string]int)
	for _, event := range resp.Events {
		kinds[event.Kind]++
	}
	if kinds["appointment"] != 1 || kinds["invoice"] != 2 || kinds["lead"] != 1 || kinds["campaign"] != 1 {
		t.Fatalf("unexpected kinds %v", kinds)
	}
	for i := 1; i < len(resp.Events); i++ {
		if resp.Events[i-1].Timestamp < resp.Events[i].Timestamp {
			t.Fatalf("events must be newest first: %+v", resp.Events)
		}
	}
}

func TestLiveOpsRejectsBadDate(t *testing.T) {
	t.Parallel()

	st, _, _ := newMockServices()
	liveOps := NewLiveOperationsService(nil, st.MasterData, st.Appointments, st.Invoices, st.Leads, st.Campaigns)

	_, err := liveOps.Events(context.Background(), domainx.LiveOpsRequest{BusinessID: 1001, Date: "30-08-2026"})
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected service error, got %v", err)
	}
	if !strings.Contains(svcErr.Message, "YYYY-MM-DD") {
		t.Fatalf("unexpected message %q", svcErr.Message)
	}
}

func TestInvoiceServiceMarkPaidUnknown(t *testing.T) {
	t.Parallel()

	st, _, _ := newMockServices()
	invoices := NewInvoiceService(nil, st.Invoices)

	_, err := invoices.MarkPaid(context.Background(), domainx.InvoiceMarkPaidRequest{InvoiceID: "INV-00042"})
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected service error, got %v", err)
	}
	if !strings.Contains(svcErr.Message, "INV-00042") {
		t.Fatalf("error must name the invoice, got %q", svcErr.Message)
	}
}
