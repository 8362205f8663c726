// Package tool binds the QTick domain operations to the reasoning engine as
// a typed catalog. Every tool except datetime_parse performs one HTTP call
// against the gateway's own tool endpoints; datetime_parse is local.
package tool

import (
	"context"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
	backendx "github.com/qtickhq/agent-gateway/pkg/backend"
)

const (
	ToolDatetimeParse         = "datetime_parse"
	ToolAppointmentBook       = "appointment_book"
	ToolAppointmentList       = "appointment_list"
	ToolInvoiceCreate         = "invoice_create"
	ToolInvoiceList           = "invoice_list"
	ToolInvoiceMarkPaid       = "invoice_mark_paid"
	ToolLeadCreate            = "lead_create"
	ToolLeadList              = "lead_list"
	ToolBusinessSearch        = "business_search"
	ToolBusinessServiceLookup = "business_service_lookup"
	ToolCampaignSendWhatsApp  = "campaign_send_whatsapp"
	ToolAnalyticsReport       = "analytics_report"
	ToolDailySummary          = "daily_summary"
	ToolLiveOpsEvents         = "live_ops_events"
)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// Build returns the tool catalog and the executor that dispatches calls
// against the gateway at the given base URL.
func Build(client *backendx.Client) ([]*schema.ToolInfo, Executor) {
	return Catalog(), NewExecutor(client)
}

func NewExecutor(client *backendx.Client) Executor {
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		if tool == ToolDatetimeParse {
			return executeDatetimeTool(tool, args)
		}
		return executeHTTPTool(ctx, client, tool, args)
	}
}

// Descriptors projects the catalog into the descriptive listing served by
// GET /agent/tools.
func Descriptors() []contractx.ToolDescriptor {
	infos := Catalog()
	out := make([]contractx.ToolDescriptor, 0, len(infos))
	for _, info := range infos {
		out = append(out, contractx.ToolDescriptor{Name: info.Name, Description: info.Desc})
	}
	return out
}

func Catalog() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolDatetimeParse,
			Desc: "Convert natural language datetime into ISO 8601 format string. Assumes Asia/Singapore timezone unless otherwise specified.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"text": {Type: schema.String, Desc: "Natural datetime e.g. 'tomorrow 5 PM Singapore'", Required: true},
			}),
		},
		{
			Name: ToolAppointmentBook,
			Desc: "Book a QTick appointment (ISO 8601 datetime required).",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"business_id":   {Type: schema.Integer, Desc: "Business identifier", Required: true},
				"customer_name": {Type: schema.String, Desc: "Customer full name", Required: true},
				"service_id":    {Type: schema.Integer, Desc: "Service identifier", Required: true},
				"datetime":      {Type: schema.String, Desc: "ISO 8601 timeslot, e.g. 2025-09-06T17:00:00+08:00", Required: true},
			}),
		},
		{
			Name: ToolAppointmentList,
			Desc: "List appointments for a business with optional filters (date range, status, pagination).",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"business_id": {Type: schema.Integer, Desc: "Business identifier", Required: true},
				"date_from":   {Type: schema.String, Desc: "Inclusive ISO 8601 lower bound"},
				"date_to":     {Type: schema.String, Desc: "Inclusive ISO 8601 upper bound"},
				"status":      {Type: schema.String, Desc: "Filter by status, e.g. confirmed"},
				"page":        {Type: schema.Integer, Desc: "Page number, starting at 1"},
				"page_size":   {Type: schema.Integer, Desc: "Entries per page"},
			}),
		},
		{
			Name: ToolInvoiceCreate,
			Desc: "Create an invoice with line items. Accepts 'unit_price' or 'price'. Returns invoice id, total, and payment link.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"business_id":   {Type: schema.Integer, Desc: "Business identifier", Required: true},
				"customer_name": {Type: schema.String, Desc: "Customer full name", Required: true},
				"items": {
					Type:     schema.Array,
					Desc:     "Line items, each with description, quantity, unit_price (or price), and optional tax_rate",
					Required: true,
					ElemInfo: &schema.ParameterInfo{Type: schema.Object},
				},
				"currency":       {Type: schema.String, Desc: "ISO currency code, default SGD"},
				"appointment_id": {Type: schema.String, Desc: "Related appointment id"},
				"notes":          {Type: schema.String, Desc: "Free-form notes"},
			}),
		},
		{
			Name: ToolInvoiceList,
			Desc: "List invoices for a business.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"business_id": {Type: schema.Integer, Desc: "Business identifier", Required: true},
			}),
		},
		{
			Name: ToolInvoiceMarkPaid,
			Desc: "Mark an existing invoice as paid.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"invoice_id": {Type: schema.String, Desc: "Invoice identifier, e.g. INV-00001", Required: true},
			}),
		},
		{
			Name: ToolLeadCreate,
			Desc: "Create a new customer lead with optional contact details and source.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"business_id": {Type: schema.Integer, Desc: "Business identifier", Required: true},
				"name":        {Type: schema.String, Desc: "Lead full name", Required: true},
				"phone":       {Type: schema.String, Desc: "Phone number"},
				"email":       {Type: schema.String, Desc: "Email address"},
				"source":      {Type: schema.String, Desc: "Acquisition source, default manual"},
				"notes":       {Type: schema.String, Desc: "Free-form notes"},
			}),
		},
		{
			Name: ToolLeadList,
			Desc: "List leads for a business.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"business_id": {Type: schema.Integer, Desc: "Business identifier", Required: true},
			}),
		},
		{
			Name: ToolBusinessSearch,
			Desc: "Search the business directory by name, slug, or tag.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {Type: schema.String, Desc: "Name fragment or tag", Required: true},
				"limit": {Type: schema.Integer, Desc: "Maximum results to return"},
			}),
		},
		{
			Name: ToolBusinessServiceLookup,
			Desc: "Resolve a service name to service ids, optionally scoped to one business.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"service_name":  {Type: schema.String, Desc: "Service name or keyword", Required: true},
				"business_id":   {Type: schema.Integer, Desc: "Business identifier, if known"},
				"business_name": {Type: schema.String, Desc: "Business name fragment, if id unknown"},
				"limit":         {Type: schema.Integer, Desc: "Maximum matches per business"},
			}),
		},
		{
			Name: ToolCampaignSendWhatsApp,
			Desc: "Send a WhatsApp promo/notification to a customer.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_name":    {Type: schema.String, Desc: "Customer full name", Required: true},
				"phone_number":     {Type: schema.String, Desc: "E.164 phone number", Required: true},
				"message_template": {Type: schema.String, Desc: "Template body", Required: true},
				"offer_code":       {Type: schema.String, Desc: "Promo code", Required: true},
				"expiry":           {Type: schema.String, Desc: "Offer expiry date", Required: true},
			}),
		},
		{
			Name: ToolAnalyticsReport,
			Desc: "Fetch analytics for a business for a period.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"business_id": {Type: schema.Integer, Desc: "Business identifier", Required: true},
				"metrics":     {Type: schema.Array, Desc: "e.g. ['footfall','revenue']", Required: true, ElemInfo: &schema.ParameterInfo{Type: schema.String}},
				"period":      {Type: schema.String, Desc: "Reporting period, e.g. last_7_days", Required: true},
			}),
		},
		{
			Name: ToolDailySummary,
			Desc: "Generate a narrated daily metrics summary for a business.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"business_id": {Type: schema.Integer, Desc: "Business identifier", Required: true},
				"date":        {Type: schema.String, Desc: "Report date YYYY-MM-DD, default today"},
				"metrics":     {Type: schema.Array, Desc: "Metric keys to include", ElemInfo: &schema.ParameterInfo{Type: schema.String}},
				"period":      {Type: schema.String, Desc: "Reporting period"},
			}),
		},
		{
			Name: ToolLiveOpsEvents,
			Desc: "Fetch the live operations event feed for a business on a date.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"business_id": {Type: schema.Integer, Desc: "Business identifier", Required: true},
				"date":        {Type: schema.String, Desc: "Target date YYYY-MM-DD, default today"},
			}),
		},
	}
}
