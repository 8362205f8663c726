package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
	backendx "github.com/qtickhq/agent-gateway/pkg/backend"
)

var toolRoutes = map[string]string{
	ToolAppointmentBook:       "/tools/appointment/book",
	ToolAppointmentList:       "/tools/appointment/list",
	ToolInvoiceCreate:         "/tools/invoice/create",
	ToolInvoiceList:           "/tools/invoice/list",
	ToolInvoiceMarkPaid:       "/tools/invoice/mark-paid",
	ToolLeadCreate:            "/tools/leads/create",
	ToolLeadList:              "/tools/leads/list",
	ToolBusinessSearch:        "/tools/business/search",
	ToolBusinessServiceLookup: "/tools/business/services/find",
	ToolCampaignSendWhatsApp:  "/tools/campaign/sendWhatsApp",
	ToolAnalyticsReport:       "/tools/analytics/report",
	ToolDailySummary:          "/tools/business/daily-summary",
	ToolLiveOpsEvents:         "/tools/live-ops/events",
}

// executeHTTPTool validates the arguments, posts them to the tool endpoint,
// and returns the decoded response. Validation problems come back inside the
// ToolResult so the engine can correct itself; transport faults are errors.
func executeHTTPTool(ctx context.Context, client *backendx.Client, tool string, args map[string]any) (contractx.ToolResult, error) {
	path, ok := toolRoutes[tool]
	if !ok {
		return contractx.ToolResult{Tool: tool, Error: fmt.Sprintf("tool=%s is not available", tool)}, nil
	}

	payload, err := normalizeArgs(tool, args)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	var result any
	if err := client.Post(ctx, path, payload, &result); err != nil {
		return contractx.ToolResult{}, fmt.Errorf("%w: tool=%s: %v", contractx.ErrTool, tool, err)
	}
	return contractx.ToolResult{Tool: tool, Result: result}, nil
}

func normalizeArgs(tool string, args map[string]any) (map[string]any, error) {
	if args == nil {
		args = map[string]any{}
	}
	switch tool {
	case ToolAppointmentBook:
		return normalizeAppointmentBook(args)
	case ToolAppointmentList:
		return normalizeAppointmentList(args)
	case ToolInvoiceCreate:
		return normalizeInvoiceCreate(args)
	case ToolInvoiceList, ToolLeadList:
		businessID, err := requireInt(args, "business_id")
		if err != nil {
			return nil, err
		}
		return map[string]any{"business_id": businessID}, nil
	case ToolInvoiceMarkPaid:
		invoiceID, err := requireString(args, "invoice_id")
		if err != nil {
			return nil, err
		}
		return map[string]any{"invoice_id": invoiceID}, nil
	case ToolLeadCreate:
		return normalizeLeadCreate(args)
	case ToolBusinessSearch:
		query, err := requireString(args, "query")
		if err != nil {
			return nil, err
		}
		payload := map[string]any{"query": query}
		setOptionalInt(payload, args, "limit")
		return payload, nil
	case ToolBusinessServiceLookup:
		return normalizeServiceLookup(args)
	case ToolCampaignSendWhatsApp:
		return requireStrings(args, "customer_name", "phone_number", "message_template", "offer_code", "expiry")
	case ToolAnalyticsReport:
		return normalizeAnalyticsReport(args)
	case ToolDailySummary:
		return normalizeDailySummary(args)
	case ToolLiveOpsEvents:
		businessID, err := requireInt(args, "business_id")
		if err != nil {
			return nil, err
		}
		payload := map[string]any{"business_id": businessID}
		setOptionalString(payload, args, "date")
		return payload, nil
	default:
		return args, nil
	}
}

func normalizeAppointmentBook(args map[string]any) (map[string]any, error) {
	businessID, err := requireInt(args, "business_id")
	if err != nil {
		return nil, err
	}
	serviceID, err := requireInt(args, "service_id")
	if err != nil {
		return nil, err
	}
	customer, err := requireString(args, "customer_name")
	if err != nil {
		return nil, err
	}
	slot, err := requireISO8601(args, "datetime")
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"business_id":   businessID,
		"customer_name": customer,
		"service_id":    serviceID,
		"datetime":      slot,
	}, nil
}

func normalizeAppointmentList(args map[string]any) (map[string]any, error) {
	businessID, err := requireInt(args, "business_id")
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"business_id": businessID,
		"page":        1,
		"page_size":   20,
	}
	setOptionalInt(payload, args, "page")
	setOptionalInt(payload, args, "page_size")
	setOptionalString(payload, args, "date_from")
	setOptionalString(payload, args, "date_to")
	setOptionalString(payload, args, "status")
	return payload, nil
}

func normalizeInvoiceCreate(args map[string]any) (map[string]any, error) {
	businessID, err := requireInt(args, "business_id")
	if err != nil {
		return nil, err
	}
	customer, err := requireString(args, "customer_name")
	if err != nil {
		return nil, err
	}

	rawItems, ok := args["items"].([]any)
	if !ok || len(rawItems) == 0 {
		return nil, fmt.Errorf("items must be a non-empty list")
	}
	items := make([]map[string]any, 0, len(rawItems))
	for i, rawItem := range rawItems {
		entry, isMap := rawItem.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("items[%d] must be an object", i)
		}
		item, err := normalizeLineItem(i, entry)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	payload := map[string]any{
		"business_id":   businessID,
		"customer_name": customer,
		"items":         items,
		"currency":      "SGD",
	}
	setOptionalString(payload, args, "currency")
	setOptionalString(payload, args, "appointment_id")
	setOptionalString(payload, args, "notes")
	return payload, nil
}

func normalizeLineItem(index int, entry map[string]any) (map[string]any, error) {
	description, err := requireString(entry, "description")
	if err != nil {
		return nil, fmt.Errorf("items[%d]: %v", index, err)
	}
	quantity, err := requireInt(entry, "quantity")
	if err != nil {
		return nil, fmt.Errorf("items[%d]: %v", index, err)
	}

	unitPrice, ok := asFloat(entry["unit_price"])
	if !ok {
		unitPrice, ok = asFloat(entry["price"])
	}
	if !ok {
		return nil, fmt.Errorf("items[%d]: unit_price (or alias 'price') is required", index)
	}

	taxRate := 0.0
	if raw, exists := entry["tax_rate"]; exists {
		taxRate, ok = asFloat(raw)
		if !ok {
			return nil, fmt.Errorf("items[%d]: tax_rate must be a number", index)
		}
	}

	item := map[string]any{
		"description": description,
		"quantity":    quantity,
		"unit_price":  unitPrice,
		"tax_rate":    taxRate,
	}
	if itemID, exists := entry["item_id"].(string); exists && itemID != "" {
		item["item_id"] = itemID
	}
	return item, nil
}

func normalizeLeadCreate(args map[string]any) (map[string]any, error) {
	businessID, err := requireInt(args, "business_id")
	if err != nil {
		return nil, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"business_id": businessID,
		"name":        name,
		"source":      "manual",
	}
	setOptionalString(payload, args, "phone")
	setOptionalString(payload, args, "email")
	setOptionalString(payload, args, "source")
	setOptionalString(payload, args, "notes")
	return payload, nil
}

func normalizeServiceLookup(args map[string]any) (map[string]any, error) {
	serviceName, err := requireString(args, "service_name")
	if err != nil {
		return nil, err
	}
	payload := map[string]any{"service_name": serviceName}
	if raw, exists := args["business_id"]; exists && raw != nil {
		businessID, ok := asInt(raw)
		if !ok {
			return nil, fmt.Errorf("business_id must be an integer")
		}
		payload["business_id"] = businessID
	}
	setOptionalString(payload, args, "business_name")
	setOptionalInt(payload, args, "limit")
	return payload, nil
}

func normalizeAnalyticsReport(args map[string]any) (map[string]any, error) {
	businessID, err := requireInt(args, "business_id")
	if err != nil {
		return nil, err
	}
	period, err := requireString(args, "period")
	if err != nil {
		return nil, err
	}
	metrics, err := stringList(args["metrics"])
	if err != nil {
		return nil, fmt.Errorf("metrics %v", err)
	}
	if len(metrics) == 0 {
		return nil, fmt.Errorf("metrics must be a non-empty list of strings")
	}
	return map[string]any{
		"business_id": businessID,
		"metrics":     metrics,
		"period":      period,
	}, nil
}

func normalizeDailySummary(args map[string]any) (map[string]any, error) {
	businessID, err := requireInt(args, "business_id")
	if err != nil {
		return nil, err
	}
	payload := map[string]any{"business_id": businessID}
	setOptionalString(payload, args, "date")
	setOptionalString(payload, args, "period")
	if raw, exists := args["metrics"]; exists && raw != nil {
		metrics, err := stringList(raw)
		if err != nil {
			return nil, fmt.Errorf("metrics %v", err)
		}
		payload["metrics"] = metrics
	}
	return payload, nil
}

func requireStrings(args map[string]any, keys ...string) (map[string]any, error) {
	payload := make(map[string]any, len(keys))
	for _, key := range keys {
		value, err := requireString(args, key)
		if err != nil {
			return nil, err
		}
		payload[key] = value
	}
	return payload, nil
}

func requireString(args map[string]any, key string) (string, error) {
	raw, exists := args[key]
	if !exists {
		return "", fmt.Errorf("%s is required", key)
	}
	value, ok := raw.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s must be a non-empty string", key)
	}
	return strings.TrimSpace(value), nil
}

func requireInt(args map[string]any, key string) (int, error) {
	raw, exists := args[key]
	if !exists {
		return 0, fmt.Errorf("%s is required", key)
	}
	value, ok := asInt(raw)
	if !ok {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return value, nil
}

// requireISO8601 validates the value parses as an ISO 8601 timestamp. The
// value is forwarded verbatim; trailing Z offsets are accepted.
func requireISO8601(args map[string]any, key string) (string, error) {
	value, err := requireString(args, key)
	if err != nil {
		return "", err
	}
	if _, parseErr := time.Parse(time.RFC3339, value); parseErr == nil {
		return value, nil
	}
	if _, parseErr := time.Parse("2006-01-02T15:04:05", value); parseErr == nil {
		return value, nil
	}
	return "", fmt.Errorf("%s must be ISO 8601 (e.g. 2025-09-06T17:00:00+08:00)", key)
}

func setOptionalString(payload, args map[string]any, key string) {
	if value, ok := args[key].(string); ok && strings.TrimSpace(value) != "" {
		payload[key] = strings.TrimSpace(value)
	}
}

func setOptionalInt(payload, args map[string]any, key string) {
	raw, exists := args[key]
	if !exists || raw == nil {
		return
	}
	if value, ok := asInt(raw); ok {
		payload[key] = value
	}
}

func stringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("must contain only strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("must be a list of strings")
	}
}

// asInt accepts the numeric shapes a JSON-decoding engine produces.
func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(parsed), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
