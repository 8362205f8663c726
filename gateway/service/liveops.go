package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	backendx "github.com/qtickhq/agent-gateway/pkg/backend"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

// LiveOperationsService aggregates what happened at a business on a given day
// into a single event feed.
type LiveOperationsService struct {
	client       *backendx.Client
	master       *storex.MasterDataRepository
	appointments *storex.AppointmentRepository
	invoices     *storex.InvoiceRepository
	leads        *storex.LeadRepository
	campaigns    *storex.CampaignRepository
}

func NewLiveOperationsService(
	client *backendx.Client,
	master *storex.MasterDataRepository,
	appointments *storex.AppointmentRepository,
	invoices *storex.InvoiceRepository,
	leads *storex.LeadRepository,
	campaigns *storex.CampaignRepository,
) *LiveOperationsService {
	return &LiveOperationsService{
		client:       client,
		master:       master,
		appointments: appointments,
		invoices:     invoices,
		leads:        leads,
		campaigns:    campaigns,
	}
}

func (s *LiveOperationsService) Events(ctx context.Context, req domainx.LiveOpsRequest) (domainx.LiveOpsResponse, error) {
	if s.client != nil {
		var out domainx.LiveOpsResponse
		if err := s.client.Post(ctx, "/live-ops/events", req, &out); err != nil {
			return domainx.LiveOpsResponse{}, newError("failed to fetch live operations feed", err)
		}
		return out, nil
	}

	business, err := resolveBusiness(s.master, req.BusinessID)
	if err != nil {
		return domainx.LiveOpsResponse{}, err
	}

	targetDate, err := resolveTargetDate(req.Date)
	if err != nil {
		return domainx.LiveOpsResponse{}, err
	}

	var events []domainx.LiveOpsEvent
	events = append(events, s.appointmentEvents(business.BusinessID, targetDate)...)
	events = append(events, s.invoiceEvents(business.BusinessID, targetDate)...)
	events = append(events, s.leadEvents(business.BusinessID, targetDate)...)
	events = append(events, s.campaignEvents(targetDate)...)

	sort.Slice(events, func(i, j int) bool { return events[i].Timestamp > events[j].Timestamp })

	return domainx.LiveOpsResponse{
		Business:    *businessSummaryOf(business),
		Date:        targetDate.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Total:       len(events),
		Events:      events,
	}, nil
}

func (s *LiveOperationsService) appointmentEvents(businessID int, target time.Time) []domainx.LiveOpsEvent {
	var out []domainx.LiveOpsEvent
	for _, item := range s.appointments.Snapshot(businessID) {
		at, ok := onDate(item.Datetime, target)
		if !ok {
			continue
		}
		out = append(out, domainx.LiveOpsEvent{
			Kind:      "appointment",
			Timestamp: at,
			Title:     fmt.Sprintf("Appointment confirmed for %s", item.CustomerName),
			Detail:    fmt.Sprintf("queue %s, status %s", item.QueueNumber, item.Status),
			RefID:     item.AppointmentID,
		})
	}
	return out
}

func (s *LiveOperationsService) invoiceEvents(businessID int, target time.Time) []domainx.LiveOpsEvent {
	var out []domainx.LiveOpsEvent
	for _, item := range s.invoices.Snapshot(businessID) {
		if at, ok := onDate(item.CreatedAt, target); ok {
			out = append(out, domainx.LiveOpsEvent{
				Kind:      "invoice",
				Timestamp: at,
				Title:     fmt.Sprintf("Invoice %s issued to %s", item.InvoiceID, item.CustomerName),
				Detail:    fmt.Sprintf("%s %.2f, status %s", item.Currency, item.Total, item.Status),
				RefID:     item.InvoiceID,
			})
		}
		if at, ok := onDate(item.PaidAt, target); ok {
			out = append(out, domainx.LiveOpsEvent{
				Kind:      "invoice",
				Timestamp: at,
				Title:     fmt.Sprintf("Payment received for invoice %s", item.InvoiceID),
				Detail:    fmt.Sprintf("%s %.2f", item.Currency, item.Total),
				RefID:     item.InvoiceID,
			})
		}
	}
	return out
}

func (s *LiveOperationsService) leadEvents(businessID int, target time.Time) []domainx.LiveOpsEvent {
	var out []domainx.LiveOpsEvent
	for _, item := range s.leads.List(businessID) {
		at, ok := onDate(item.CreatedAt, target)
		if !ok {
			continue
		}
		detail := "status " + item.Status
		if item.Source != "" {
			detail += ", source " + item.Source
		}
		out = append(out, domainx.LiveOpsEvent{
			Kind:      "lead",
			Timestamp: at,
			Title:     fmt.Sprintf("New lead captured: %s", item.Name),
			Detail:    detail,
			RefID:     item.LeadID,
		})
	}
	return out
}

func (s *LiveOperationsService) campaignEvents(target time.Time) []domainx.LiveOpsEvent {
	var out []domainx.LiveOpsEvent
	for _, item := range s.campaigns.Snapshot() {
		at, ok := onDate(item.DeliveryTime, target)
		if !ok {
			continue
		}
		detail := "status " + item.Status
		if item.OfferCode != "" {
			detail += ", offer " + item.OfferCode
		}
		out = append(out, domainx.LiveOpsEvent{
			Kind:      "campaign",
			Timestamp: at,
			Title:     fmt.Sprintf("Campaign message sent to %s", item.CustomerName),
			Detail:    detail,
			RefID:     item.CampaignID,
		})
	}
	return out
}

func resolveTargetDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, newError("Invalid date format. Expected YYYY-MM-DD.", err)
	}
	return parsed, nil
}

// onDate reports whether the RFC3339 timestamp falls on the target UTC date,
// returning the timestamp unchanged for the event feed.
func onDate(value string, target time.Time) (string, bool) {
	if value == "" {
		return "", false
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", false
	}
	day := parsed.UTC()
	if day.Year() != target.Year() || day.Month() != target.Month() || day.Day() != target.Day() {
		return "", false
	}
	return value, true
}
