package service

import (
	"context"
	"fmt"
	"math"
	"time"

	backendx "github.com/qtickhq/agent-gateway/pkg/backend"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

// AnalyticsService aggregates appointment, invoice, and lead activity into a
// single report.
type AnalyticsService struct {
	client       *backendx.Client
	master       *storex.MasterDataRepository
	appointments *storex.AppointmentRepository
	invoices     *storex.InvoiceRepository
	leads        *storex.LeadRepository
}

func NewAnalyticsService(
	client *backendx.Client,
	master *storex.MasterDataRepository,
	appointments *storex.AppointmentRepository,
	invoices *storex.InvoiceRepository,
	leads *storex.LeadRepository,
) *AnalyticsService {
	return &AnalyticsService{
		client:       client,
		master:       master,
		appointments: appointments,
		invoices:     invoices,
		leads:        leads,
	}
}

func (s *AnalyticsService) GenerateReport(ctx context.Context, req domainx.AnalyticsRequest) (domainx.AnalyticsResponse, error) {
	if s.client != nil {
		var out domainx.AnalyticsResponse
		if err := s.client.Post(ctx, "/analytics/report", req, &out); err != nil {
			return domainx.AnalyticsResponse{}, newError("failed to generate analytics report", err)
		}
		return out, nil
	}

	appointments := s.appointments.Snapshot(req.BusinessID)
	invoices := s.invoices.Snapshot(req.BusinessID)
	leads := s.leads.List(req.BusinessID)

	resp := domainx.AnalyticsResponse{
		Footfall:          len(appointments),
		ReportGeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	appointmentSummary, topService := s.summarizeAppointments(appointments)
	resp.AppointmentSummary = appointmentSummary
	resp.TopAppointmentService = topService

	invoiceSummary, totalRevenue := summarizeInvoices(invoices)
	resp.InvoiceSummary = invoiceSummary
	resp.Revenue = fmt.Sprintf("SGD %s", formatAmount(totalRevenue))
	resp.HighestRevenueService = s.highestRevenueService(appointments)

	resp.LeadSummary = summarizeLeads(leads)
	return resp, nil
}

func (s *AnalyticsService) summarizeAppointments(items []domainx.AppointmentSummary) (*domainx.AppointmentAnalytics, *domainx.ServiceInsight) {
	if len(items) == 0 {
		return &domainx.AppointmentAnalytics{}, nil
	}

	byStatus := make(map[string]int)
	customers := make(map[string]struct{})
	bookings := make(map[int]int)
	for _, item := range items {
		byStatus[item.Status]++
		customers[item.CustomerName] = struct{}{}
		bookings[item.ServiceID]++
	}

	summary := &domainx.AppointmentAnalytics{
		Total:           len(items),
		ByStatus:        byStatus,
		UniqueCustomers: len(customers),
	}

	topID, topCount := 0, 0
	for serviceID, count := range bookings {
		if count > topCount || (count == topCount && serviceID < topID) {
			topID, topCount = serviceID, count
		}
	}
	if topID == 0 {
		return summary, nil
	}
	return summary, &domainx.ServiceInsight{
		ServiceID:    topID,
		Name:         s.master.ServiceName(topID),
		BookingCount: topCount,
	}
}

// highestRevenueService estimates per-service revenue from booked
// appointments priced at the directory rate.
func (s *AnalyticsService) highestRevenueService(items []domainx.AppointmentSummary) *domainx.ServiceInsight {
	revenue := make(map[int]float64)
	for _, item := range items {
		if price, ok := s.servicePrice(item.ServiceID); ok {
			revenue[item.ServiceID] += price
		}
	}

	topID := 0
	topRevenue := 0.0
	for serviceID, total := range revenue {
		if total > topRevenue || (total == topRevenue && topID != 0 && serviceID < topID) {
			topID, topRevenue = serviceID, total
		}
	}
	if topID == 0 {
		return nil
	}
	return &domainx.ServiceInsight{
		ServiceID:    topID,
		Name:         s.master.ServiceName(topID),
		TotalRevenue: math.Round(topRevenue*100) / 100,
		Currency:     "SGD",
	}
}

func (s *AnalyticsService) servicePrice(serviceID int) (float64, bool) {
	svc, ok := s.master.Service(serviceID)
	if !ok {
		return 0, false
	}
	return svc.Price, true
}

func summarizeInvoices(items []storex.InvoiceDetail) (*domainx.InvoiceAnalytics, float64) {
	summary := &domainx.InvoiceAnalytics{ByStatus: make(map[string]int)}
	customers := make(map[string]struct{})
	for _, item := range items {
		summary.Total++
		summary.ByStatus[item.Status]++
		summary.TotalRevenue += item.Total
		if item.Status == "paid" {
			summary.PaidTotal += item.Total
		} else {
			summary.OutstandingTotal += item.Total
		}
		if item.Currency != "" {
			summary.Currency = item.Currency
		}
		customers[item.CustomerName] = struct{}{}
	}
	summary.UniqueCustomers = len(customers)
	if summary.Total > 0 {
		summary.AverageInvoiceValue = math.Round(summary.TotalRevenue/float64(summary.Total)*100) / 100
	}
	if summary.Total == 0 {
		summary.ByStatus = nil
	}
	summary.TotalRevenue = math.Round(summary.TotalRevenue*100) / 100
	summary.PaidTotal = math.Round(summary.PaidTotal*100) / 100
	summary.OutstandingTotal = math.Round(summary.OutstandingTotal*100) / 100
	return summary, summary.TotalRevenue
}

func summarizeLeads(items []domainx.LeadSummary) *domainx.LeadAnalytics {
	summary := &domainx.LeadAnalytics{
		ByStatus:        make(map[string]int),
		SourceBreakdown: make(map[string]int),
	}
	for _, item := range items {
		summary.Total++
		summary.ByStatus[item.Status]++
		if item.Source != "" {
			summary.SourceBreakdown[item.Source]++
		}
	}
	if summary.Total == 0 {
		summary.ByStatus = nil
	}
	if len(summary.SourceBreakdown) == 0 {
		summary.SourceBreakdown = nil
	}
	return summary
}

// formatAmount renders 1540.5 as "1,540.50" to match the report's display
// currency convention.
func formatAmount(amount float64) string {
	whole := int64(amount)
	frac := int64(math.Round((amount - float64(whole)) * 100))
	if frac >= 100 {
		whole++
		frac -= 100
	}
	if frac < 0 {
		frac = -frac
	}

	digits := fmt.Sprintf("%d", whole)
	var grouped []byte
	for i, ch := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 && digits[0] != '-' {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, ch)
	}
	return fmt.Sprintf("%s.%02d", grouped, frac)
}
