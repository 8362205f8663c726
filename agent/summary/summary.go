// Package summary turns raw tool activity into the flat camelCase data
// points the client renders. Summarize is a pure function: no I/O, no state,
// deterministic for identical inputs.
package summary

import (
	"strings"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
)

// displayNames maps tool names to the human label shown alongside the data
// points. Unknown tools fall back to a title-cased rendering of the raw name.
var displayNames = map[string]string{
	"datetime_parse":          "Datetime",
	"appointment_book":        "Appointment",
	"appointment_list":        "Appointments",
	"invoice_create":          "Invoice",
	"invoice_list":            "Invoices",
	"invoice_mark_paid":       "Invoice Payment",
	"lead_create":             "Lead",
	"lead_list":               "Leads",
	"business_search":         "Business Search",
	"business_service_lookup": "Service Lookup",
	"campaign_send_whatsapp":  "Campaign",
	"analytics_report":        "Analytics Report",
	"daily_summary":           "Daily Summary",
	"live_ops_events":         "Live Operations",
}

// keyRenames adjusts wire field names that the client expects under a
// different camelCase key than the mechanical transform would produce.
var keyRenames = map[string]string{
	"suggested_service_names": "suggestedServices",
}

// Summarize maps one captured tool invocation to its display name and the
// normalized data points. An empty tool name yields no data points.
func Summarize(toolName string, toolInput, toolOutput any) (string, []contractx.DataPoint) {
	if toolName == "" {
		return "", []contractx.DataPoint{}
	}

	display := DisplayName(toolName)
	output := Normalize(toolOutput)
	input := Normalize(toolInput)

	// List-shaped outputs become one data point per element regardless of
	// which tool produced them.
	if list, ok := output.([]any); ok {
		return display, listDataPoints(list)
	}

	var points []contractx.DataPoint
	switch toolName {
	case "appointment_book":
		points = mergedDataPoint(input, output)
	case "invoice_create":
		points = mergedDataPoint(input, output)
	case "business_search":
		points = searchDataPoints(output)
	case "business_service_lookup":
		points = lookupDataPoints(output)
	case "appointment_list", "invoice_list", "lead_list":
		points = pagedDataPoints(output)
	default:
		points = genericDataPoints(output)
	}
	return display, points
}

// DisplayName resolves the human label for a tool name.
func DisplayName(toolName string) string {
	if label, ok := displayNames[toolName]; ok {
		return label
	}
	words := strings.Split(strings.ReplaceAll(toolName, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// mergedDataPoint folds selected input fields (who asked for what) under the
// output fields (what the system did) into a single record. customer_name
// from the input surfaces as "customer".
func mergedDataPoint(input, output any) []contractx.DataPoint {
	merged := make(map[string]any)
	if in, ok := input.(map[string]any); ok {
		for key, value := range in {
			if key == "customer_name" {
				merged["customer"] = value
				continue
			}
			merged[camelizeKey(key)] = camelizeValue(value)
		}
	}
	if out, ok := output.(map[string]any); ok {
		for key, value := range out {
			merged[camelizeKey(key)] = camelizeValue(value)
		}
	} else if output != nil {
		merged["value"] = camelizeValue(output)
	}
	return finishPoints(merged)
}

// searchDataPoints splits a business search result into a summary record, one
// record per candidate, and a trailing advisory message. Every candidate is
// surfaced; the summarizer never picks one.
func searchDataPoints(output any) []contractx.DataPoint {
	out, ok := output.(map[string]any)
	if !ok {
		return genericDataPoints(output)
	}

	summary := make(map[string]any)
	if query, exists := out["query"]; exists {
		summary["query"] = query
	}
	if total, exists := out["total"]; exists {
		summary["total"] = total
	}

	var points []contractx.DataPoint
	points = appendPoint(points, summary)
	if items, exists := out["items"].([]any); exists {
		for _, item := range items {
			if entry, isMap := item.(map[string]any); isMap {
				points = appendPoint(points, camelizeMap(entry))
			}
		}
	}
	points = appendMessagePoint(points, out)
	return points
}

// lookupDataPoints keeps an unambiguous service lookup as one record; when
// the directory found several candidate businesses each becomes its own
// record followed by the advisory message.
func lookupDataPoints(output any) []contractx.DataPoint {
	out, ok := output.(map[string]any)
	if !ok {
		return genericDataPoints(output)
	}

	candidates, _ := out["business_candidates"].([]any)
	if len(candidates) == 0 {
		return finishPoints(camelizeMap(out))
	}

	var points []contractx.DataPoint
	if query, exists := out["query"]; exists {
		points = appendPoint(points, map[string]any{"query": query})
	}
	for _, candidate := range candidates {
		if entry, isMap := candidate.(map[string]any); isMap {
			points = appendPoint(points, camelizeMap(entry))
		}
	}
	points = appendMessagePoint(points, out)
	return points
}

// pagedDataPoints renders a paged listing as a count summary followed by one
// record per item.
func pagedDataPoints(output any) []contractx.DataPoint {
	out, ok := output.(map[string]any)
	if !ok {
		return genericDataPoints(output)
	}

	summary := make(map[string]any)
	for key, value := range out {
		if key == "items" {
			continue
		}
		summary[camelizeKey(key)] = camelizeValue(value)
	}

	var points []contractx.DataPoint
	points = appendPoint(points, summary)
	if items, exists := out["items"].([]any); exists {
		for _, item := range items {
			if entry, isMap := item.(map[string]any); isMap {
				points = appendPoint(points, camelizeMap(entry))
			}
		}
	}
	return points
}

func genericDataPoints(output any) []contractx.DataPoint {
	switch out := output.(type) {
	case nil:
		return []contractx.DataPoint{}
	case map[string]any:
		return finishPoints(camelizeMap(out))
	default:
		return finishPoints(map[string]any{"value": out})
	}
}

func listDataPoints(list []any) []contractx.DataPoint {
	var points []contractx.DataPoint
	for _, elem := range list {
		if entry, ok := elem.(map[string]any); ok {
			points = appendPoint(points, camelizeMap(entry))
			continue
		}
		points = appendPoint(points, map[string]any{"value": camelizeValue(elem)})
	}
	if points == nil {
		points = []contractx.DataPoint{}
	}
	return points
}

func appendMessagePoint(points []contractx.DataPoint, out map[string]any) []contractx.DataPoint {
	if message, ok := out["message"].(string); ok && message != "" {
		points = appendPoint(points, map[string]any{"message": message})
	}
	return points
}

func appendPoint(points []contractx.DataPoint, candidate map[string]any) []contractx.DataPoint {
	pruned, ok := Prune(candidate).(map[string]any)
	if !ok || len(pruned) == 0 {
		return points
	}
	return append(points, pruned)
}

func finishPoints(candidate map[string]any) []contractx.DataPoint {
	points := appendPoint(nil, candidate)
	if points == nil {
		return []contractx.DataPoint{}
	}
	return points
}

// PendingInput coerces a tool input into the null-pruned mapping echoed back
// when an action awaits human confirmation. Field names are kept as the tool
// received them. A non-mapping input is wrapped as {value: ...}.
func PendingInput(input any) map[string]any {
	normalized := Prune(Normalize(input))
	switch v := normalized.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return v
	default:
		return map[string]any{"value": v}
	}
}

// Prune drops nulls, empty lists, and empty mappings recursively so a data
// point never carries empty placeholders.
func Prune(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			pruned := Prune(elem)
			if isEmptyValue(pruned) {
				continue
			}
			out[key] = pruned
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			pruned := Prune(elem)
			if isEmptyValue(pruned) {
				continue
			}
			out = append(out, pruned)
		}
		return out
	default:
		return value
	}
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func camelizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[camelizeKey(key)] = camelizeValue(value)
	}
	return out
}

func camelizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return camelizeMap(v)
	case []any:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			out = append(out, camelizeValue(elem))
		}
		return out
	default:
		return value
	}
}

func camelizeKey(key string) string {
	if renamed, ok := keyRenames[key]; ok {
		return renamed
	}
	if !strings.Contains(key, "_") {
		return key
	}
	parts := strings.Split(key, "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
