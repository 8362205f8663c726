package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
	"github.com/rs/zerolog/log"

	backendx "github.com/qtickhq/agent-gateway/pkg/backend"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

var defaultSummaryMetrics = []string{"footfall", "revenue", "leads"}

// SummaryGenerator phrases a metrics payload as a short narrative.
type SummaryGenerator interface {
	Summarize(ctx context.Context, payload domainx.DailySummaryData) string
}

// ModelSummaryGenerator uses a chat completion model to write the narrative.
// Without a configured client it degrades to a deterministic template, so the
// daily summary endpoint works in every environment.
type ModelSummaryGenerator struct {
	client *openaisdk.Client
	model  string
}

func NewModelSummaryGenerator(client *openaisdk.Client, model string) *ModelSummaryGenerator {
	return &ModelSummaryGenerator{client: client, model: model}
}

func (g *ModelSummaryGenerator) Summarize(ctx context.Context, payload domainx.DailySummaryData) string {
	if g.client == nil {
		return fallbackSummary(payload)
	}

	completion, err := g.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(buildSummaryPrompt(payload)),
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("daily summary model call failed, using fallback")
		return fallbackSummary(payload)
	}
	if len(completion.Choices) == 0 {
		return fallbackSummary(payload)
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return fallbackSummary(payload)
	}
	return text
}

func buildSummaryPrompt(payload domainx.DailySummaryData) string {
	var metricLines []string
	for _, metric := range payload.Metrics {
		line := fmt.Sprintf("- %s: %v", metric.Label, metric.Value)
		if metric.Unit != "" {
			line += " " + metric.Unit
		}
		if metric.ChangePercentage != nil {
			line += fmt.Sprintf(" (%+.1f%% vs previous)", *metric.ChangePercentage)
		}
		if metric.Notes != "" {
			line += " | " + metric.Notes
		}
		metricLines = append(metricLines, line)
	}

	location := payload.Business.Location
	if location == "" {
		location = "Not specified"
	}

	return "You are a business insights assistant. Given the metrics below, " +
		"write a concise daily summary with three bullet points and one " +
		"recommended action. Keep the tone optimistic but realistic.\n\n" +
		fmt.Sprintf("Business: %s (ID %d)\n", payload.Business.Name, payload.Business.BusinessID) +
		fmt.Sprintf("Location: %s\n", location) +
		fmt.Sprintf("Report Date: %s\n", payload.Date) +
		fmt.Sprintf("Metrics:\n%s\n\n", strings.Join(metricLines, "\n")) +
		"Output format:\n" +
		"Summary:\n- bullet\n- bullet\n- bullet\nAction: sentence highlighting one actionable recommendation."
}

func fallbackSummary(payload domainx.DailySummaryData) string {
	var highlights []string
	for i, metric := range payload.Metrics {
		if i >= 3 {
			break
		}
		line := fmt.Sprintf("- %s: %v", metric.Label, metric.Value)
		if metric.Unit != "" {
			line += " " + metric.Unit
		}
		highlights = append(highlights, line)
	}
	return fmt.Sprintf("Summary for %s on %s:\n%s\nAction: Review detailed metrics for deeper insights.",
		payload.Business.Name, payload.Date, strings.Join(highlights, "\n"))
}

// DailySummaryService collects the analytics report and turns it into a
// narrated daily brief.
type DailySummaryService struct {
	client    *backendx.Client
	master    *storex.MasterDataRepository
	analytics *AnalyticsService
	generator SummaryGenerator
}

func NewDailySummaryService(
	client *backendx.Client,
	master *storex.MasterDataRepository,
	analytics *AnalyticsService,
	generator SummaryGenerator,
) *DailySummaryService {
	return &DailySummaryService{
		client:    client,
		master:    master,
		analytics: analytics,
		generator: generator,
	}
}

func (s *DailySummaryService) Generate(ctx context.Context, req domainx.DailySummaryRequest) (domainx.DailySummaryResponse, error) {
	var payload domainx.DailySummaryData
	if s.client != nil {
		if err := s.client.Post(ctx, "/business/daily-summary", req, &payload); err != nil {
			return domainx.DailySummaryResponse{}, newError("failed to fetch daily metrics", err)
		}
	} else {
		collected, err := s.collectMockData(ctx, req)
		if err != nil {
			return domainx.DailySummaryResponse{}, err
		}
		payload = collected
	}

	return domainx.DailySummaryResponse{
		DailySummaryData: payload,
		Summary:          s.generator.Summarize(ctx, payload),
	}, nil
}

func (s *DailySummaryService) collectMockData(ctx context.Context, req domainx.DailySummaryRequest) (domainx.DailySummaryData, error) {
	business, err := resolveBusiness(s.master, req.BusinessID)
	if err != nil {
		return domainx.DailySummaryData{}, err
	}

	metrics := req.Metrics
	if len(metrics) == 0 {
		metrics = defaultSummaryMetrics
	}
	report, err := s.analytics.GenerateReport(ctx, domainx.AnalyticsRequest{
		BusinessID: req.BusinessID,
		Metrics:    metrics,
		Period:     req.Period,
	})
	if err != nil {
		return domainx.DailySummaryData{}, err
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	return domainx.DailySummaryData{
		Business:    *businessSummaryOf(business),
		Date:        date,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Metrics:     buildSummaryMetrics(report),
	}, nil
}

func buildSummaryMetrics(report domainx.AnalyticsResponse) []domainx.DailySummaryMetric {
	metrics := []domainx.DailySummaryMetric{
		{Key: "footfall", Label: "Appointments today", Value: report.Footfall, Unit: "visits"},
	}

	if currency, amount, ok := parseCurrencyAmount(report.Revenue); ok {
		metrics = append(metrics, domainx.DailySummaryMetric{
			Key:   "total_revenue",
			Label: "Total revenue",
			Value: amount,
			Unit:  currency,
		})
	}

	if inv := report.InvoiceSummary; inv != nil {
		metrics = append(metrics,
			domainx.DailySummaryMetric{Key: "invoice_count", Label: "Invoices issued", Value: inv.Total},
			domainx.DailySummaryMetric{Key: "paid_revenue", Label: "Paid revenue", Value: inv.PaidTotal, Unit: inv.Currency},
			domainx.DailySummaryMetric{Key: "outstanding_revenue", Label: "Outstanding revenue", Value: inv.OutstandingTotal, Unit: inv.Currency},
		)
	}
	if app := report.AppointmentSummary; app != nil {
		metrics = append(metrics, domainx.DailySummaryMetric{
			Key:   "unique_customers",
			Label: "Unique customers served",
			Value: app.UniqueCustomers,
		})
	}
	if leads := report.LeadSummary; leads != nil {
		metrics = append(metrics, domainx.DailySummaryMetric{
			Key:   "leads_created",
			Label: "New leads",
			Value: leads.Total,
		})
	}
	if top := report.TopAppointmentService; top != nil {
		metrics = append(metrics, domainx.DailySummaryMetric{
			Key:   "top_service",
			Label: "Most booked service",
			Value: top.Name,
			Notes: fmt.Sprintf("%d bookings", top.BookingCount),
		})
	}
	if top := report.HighestRevenueService; top != nil {
		metrics = append(metrics, domainx.DailySummaryMetric{
			Key:   "highest_revenue_service",
			Label: "Top revenue service",
			Value: top.Name,
			Unit:  top.Currency,
			Notes: fmt.Sprintf("%.2f total", top.TotalRevenue),
		})
	}
	return metrics
}

// parseCurrencyAmount splits a display value such as "SGD 1,540.00" into its
// currency code and numeric amount.
func parseCurrencyAmount(value string) (string, float64, bool) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return "", 0, false
	}

	currency := ""
	numeric := raw
	if parts := strings.SplitN(raw, " ", 2); len(parts) == 2 {
		currency = parts[0]
		numeric = parts[1]
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(numeric, ",", ""), 64)
	if err != nil {
		log.Debug().Str("value", value).Msg("unable to parse revenue value")
		return currency, 0, false
	}
	return currency, amount, true
}
