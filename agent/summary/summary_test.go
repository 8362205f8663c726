package summary

import (
	"reflect"
	"testing"
)

func TestSummarizeAppointmentBooking(t *testing.T) {
	t.Parallel()

	display, points := Summarize(
		"appointment_book",
		map[string]any{
			"business_id":   1001,
			"customer_name": "Alex",
			"service_id":    101,
			"datetime":      "2025-09-05T17:00:00+08:00",
		},
		map[string]any{
			"status":         "confirmed",
			"appointment_id": "APT-00003",
			"queue_number":   "B01",
		},
	)

	if display != "Appointment" {
		t.Fatalf("unexpected display name %q", display)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(points))
	}
	payload := points[0]
	if payload["appointmentId"] != "APT-00003" {
		t.Fatalf("unexpected appointmentId: %v", payload["appointmentId"])
	}
	if payload["customer"] != "Alex" {
		t.Fatalf("unexpected customer: %v", payload["customer"])
	}
	if payload["queueNumber"] != "B01" {
		t.Fatalf("unexpected queueNumber: %v", payload["queueNumber"])
	}
}

func TestSummarizeAppointmentConflictKeepsSuggestions(t *testing.T) {
	t.Parallel()

	_, points := Summarize(
		"appointment_book",
		map[string]any{
			"business_id":   1001,
			"customer_name": "Jamie",
			"service_id":    102,
			"datetime":      "2025-09-05T17:00:00+08:00",
		},
		map[string]any{
			"status":  "conflict",
			"message": "Requested slot unavailable",
			"suggested_slots": []any{
				"2025-09-05T17:30:00+08:00",
				"2025-09-05T18:00:00+08:00",
			},
		},
	)

	payload := points[0]
	if payload["status"] != "conflict" {
		t.Fatalf("unexpected status: %v", payload["status"])
	}
	slots, ok := payload["suggestedSlots"].([]any)
	if !ok || len(slots) != 2 {
		t.Fatalf("expected 2 suggested slots, got %v", payload["suggestedSlots"])
	}
	if payload["message"] != "Requested slot unavailable" {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
}

func TestSummarizeInvoiceCreationMergesInput(t *testing.T) {
	t.Parallel()

	display, points := Summarize(
		"invoice_create",
		map[string]any{
			"business_id":   2001,
			"customer_name": "Taylor",
			"items": []any{
				map[string]any{"description": "Haircut", "quantity": 1, "unit_price": 25.0, "tax_rate": 0.08},
				map[string]any{"description": "Serum", "quantity": 2, "price": 12.5},
			},
			"currency": "SGD",
		},
		map[string]any{
			"invoice_id":   "INV-00001",
			"total":        52.0,
			"currency":     "SGD",
			"status":       "created",
			"payment_link": "https://pay.qtick.co/INV-00001",
			"created_at":   "2025-09-05T12:00:00+08:00",
		},
	)

	if display != "Invoice" {
		t.Fatalf("unexpected display name %q", display)
	}
	payload := points[0]
	if payload["invoiceId"] != "INV-00001" || payload["total"] != 52.0 {
		t.Fatalf("unexpected invoice fields: %v", payload)
	}
	if payload["customer"] != "Taylor" || payload["businessId"] != 2001 {
		t.Fatalf("unexpected merged input fields: %v", payload)
	}
	items, ok := payload["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 items, got %v", payload["items"])
	}
	first := items[0].(map[string]any)
	if first["description"] != "Haircut" {
		t.Fatalf("unexpected first item: %v", first)
	}
}

func TestSummarizeServiceLookupSingleDataPoint(t *testing.T) {
	t.Parallel()

	_, points := Summarize(
		"business_service_lookup",
		nil,
		map[string]any{
			"query": "Haircut",
			"business": map[string]any{
				"business_id": 1001,
				"name":        "Chillbreeze Orchard",
				"location":    "Orchard Road",
				"tags":        []any{"flagship"},
			},
			"matches": []any{
				map[string]any{"service_id": 101, "name": "Signature Haircut", "category": "grooming", "duration_minutes": 45, "price": 38.0},
				map[string]any{"service_id": 104, "name": "Kids Haircut", "category": "grooming", "duration_minutes": 30, "price": 25.0},
			},
			"message":                 "Multiple services matched your search.",
			"suggested_service_names": []any{"Signature Haircut", "Kids Haircut"},
		},
	)

	if len(points) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(points))
	}
	payload := points[0]
	business := payload["business"].(map[string]any)
	if business["businessId"] != 1001 {
		t.Fatalf("unexpected business: %v", business)
	}
	matches := payload["matches"].([]any)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].(map[string]any)["serviceId"] != 101 {
		t.Fatalf("unexpected first match: %v", matches[0])
	}
	suggested, ok := payload["suggestedServices"].([]any)
	if !ok || !reflect.DeepEqual(suggested, []any{"Signature Haircut", "Kids Haircut"}) {
		t.Fatalf("unexpected suggestedServices: %v", payload["suggestedServices"])
	}
}

func TestSummarizeServiceLookupAmbiguityExpandsCandidates(t *testing.T) {
	t.Parallel()

	_, points := Summarize(
		"business_service_lookup",
		nil,
		map[string]any{
			"query": "Haircut",
			"business_candidates": []any{
				map[string]any{"business_id": 1001, "name": "Chillbreeze Orchard"},
				map[string]any{"business_id": 1003, "name": "Chillbreeze Adayar"},
			},
			"message": "Multiple businesses offer this service. Please choose the intended business.",
		},
	)

	if len(points) != 4 {
		t.Fatalf("expected 4 data points, got %d", len(points))
	}
	if points[0]["query"] != "Haircut" {
		t.Fatalf("unexpected summary point: %v", points[0])
	}
	ids := map[any]bool{points[1]["businessId"]: true, points[2]["businessId"]: true}
	if !ids[1001] || !ids[1003] {
		t.Fatalf("candidates missing: %v", points)
	}
	if _, ok := points[3]["message"]; !ok {
		t.Fatalf("expected trailing message point, got %v", points[3])
	}
}

func TestSummarizeBusinessSearchExpandsOptions(t *testing.T) {
	t.Parallel()

	_, points := Summarize(
		"business_search",
		nil,
		map[string]any{
			"query": "Chillbreeze",
			"total": 2,
			"items": []any{
				map[string]any{"business_id": 1001, "name": "Chillbreeze Orchard", "location": "Orchard Road", "tags": []any{"flagship"}},
				map[string]any{"business_id": 1003, "name": "Chillbreeze Adayar", "location": "Adyar", "tags": []any{"india"}},
			},
			"message": "Multiple businesses match your search.",
		},
	)

	if len(points) != 4 {
		t.Fatalf("expected 4 data points, got %d", len(points))
	}
	if points[0]["query"] != "Chillbreeze" || points[0]["total"] != 2 {
		t.Fatalf("unexpected summary point: %v", points[0])
	}
	ids := map[any]bool{points[1]["businessId"]: true, points[2]["businessId"]: true}
	if !ids[1001] || !ids[1003] {
		t.Fatalf("business options missing: %v", points)
	}
	message, _ := points[3]["message"].(string)
	if message == "" {
		t.Fatalf("expected trailing message point, got %v", points[3])
	}
}

func TestSummarizeAnalyticsCamelizesNestedSummaries(t *testing.T) {
	t.Parallel()

	_, points := Summarize(
		"analytics_report",
		nil,
		map[string]any{
			"footfall":            42,
			"revenue":             "SGD 1,234.00",
			"report_generated_at": "2025-09-07T00:00:00+00:00",
			"top_appointment_service": map[string]any{
				"service_id": 303, "name": "Men's Haircut", "booking_count": 12,
			},
			"highest_revenue_service": map[string]any{
				"service_id": 302, "name": "Soothing Head Massage", "total_revenue": 540.0, "currency": "SGD",
			},
			"appointment_summary": map[string]any{
				"total": 18, "by_status": map[string]any{"confirmed": 16, "cancelled": 2}, "unique_customers": 14,
			},
			"invoice_summary": map[string]any{
				"total": 20, "total_revenue": 3250.0, "outstanding_total": 375.0, "unique_customers": 12,
			},
			"lead_summary": map[string]any{
				"total": 9, "by_status": map[string]any{"new": 7}, "source_breakdown": map[string]any{"instagram": 4},
			},
		},
	)

	if len(points) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(points))
	}
	payload := points[0]
	top := payload["topAppointmentService"].(map[string]any)
	if top["serviceId"] != 303 || top["bookingCount"] != 12 {
		t.Fatalf("unexpected top service: %v", top)
	}
	highest := payload["highestRevenueService"].(map[string]any)
	if highest["totalRevenue"] != 540.0 {
		t.Fatalf("unexpected highest revenue service: %v", highest)
	}
	appointments := payload["appointmentSummary"].(map[string]any)
	if appointments["byStatus"].(map[string]any)["confirmed"] != 16 {
		t.Fatalf("unexpected appointment summary: %v", appointments)
	}
	leads := payload["leadSummary"].(map[string]any)
	if leads["sourceBreakdown"].(map[string]any)["instagram"] != 4 {
		t.Fatalf("unexpected lead summary: %v", leads)
	}
}

func TestSummarizeListOutputPerElement(t *testing.T) {
	t.Parallel()

	_, points := Summarize(
		"appointment_list",
		nil,
		[]any{
			map[string]any{"appointment_id": "APT-00001", "customer_name": "Alex Tan"},
			map[string]any{"appointment_id": "APT-00002", "customer_name": "Jamie Lee"},
		},
	)

	if len(points) != 2 {
		t.Fatalf("expected 2 data points, got %d", len(points))
	}
	if points[0]["appointmentId"] != "APT-00001" {
		t.Fatalf("unexpected first point: %v", points[0])
	}
}

func TestSummarizePagedListingEmitsSummaryAndItems(t *testing.T) {
	t.Parallel()

	_, points := Summarize(
		"appointment_list",
		map[string]any{"business_id": 1001},
		map[string]any{
			"total":     2,
			"page":      1,
			"page_size": 20,
			"items": []any{
				map[string]any{"appointment_id": "APT-00001", "status": "confirmed"},
				map[string]any{"appointment_id": "APT-00002", "status": "confirmed"},
			},
		},
	)

	if len(points) != 3 {
		t.Fatalf("expected 3 data points, got %d", len(points))
	}
	if points[0]["total"] != 2 || points[0]["pageSize"] != 20 {
		t.Fatalf("unexpected summary point: %v", points[0])
	}
	if points[2]["appointmentId"] != "APT-00002" {
		t.Fatalf("unexpected last item point: %v", points[2])
	}
}

func TestSummarizeUnknownToolFallbacks(t *testing.T) {
	t.Parallel()

	display, points := Summarize("review_request", nil, map[string]any{"review_id": "REV-1", "status": "sent"})
	if display != "Review Request" {
		t.Fatalf("unexpected display name %q", display)
	}
	if len(points) != 1 || points[0]["reviewId"] != "REV-1" {
		t.Fatalf("unexpected points: %v", points)
	}

	display, points = Summarize("datetime_parse", nil, "2025-09-06T17:00:00+08:00")
	if display != "Datetime" {
		t.Fatalf("unexpected display name %q", display)
	}
	if len(points) != 1 || points[0]["value"] != "2025-09-06T17:00:00+08:00" {
		t.Fatalf("unexpected scalar wrap: %v", points)
	}
}

func TestSummarizePrunesEmptyValuesRecursively(t *testing.T) {
	t.Parallel()

	_, points := Summarize(
		"lead_create",
		nil,
		map[string]any{
			"lead_id":    "LEAD-00001",
			"status":     "new",
			"phone":      nil,
			"notes":      map[string]any{},
			"follow_ups": []any{},
			"nested": map[string]any{
				"kept":    "value",
				"dropped": nil,
			},
		},
	)

	payload := points[0]
	for _, key := range []string{"phone", "notes", "followUps"} {
		if _, exists := payload[key]; exists {
			t.Fatalf("expected %q pruned, got %v", key, payload)
		}
	}
	nested := payload["nested"].(map[string]any)
	if _, exists := nested["dropped"]; exists {
		t.Fatalf("expected nested null pruned, got %v", nested)
	}
	if nested["kept"] != "value" {
		t.Fatalf("unexpected nested content: %v", nested)
	}
}

func TestSummarizePrunesEmptyContainersInsideLists(t *testing.T) {
	t.Parallel()

	_, points := Summarize(
		"appointment_book",
		nil,
		map[string]any{
			"appointment_id": "APT-00009",
			"slots": []any{
				map[string]any{"note": nil},
				[]any{},
				"2025-09-05T17:30:00+08:00",
			},
		},
	)

	payload := points[0]
	if _, exists := payload["slots"]; !exists {
		t.Fatalf("expected slots kept, got %v", payload)
	}
	slots := payload["slots"].([]any)
	if len(slots) != 1 {
		t.Fatalf("expected empty containers pruned from list, got %v", slots)
	}
	if slots[0] != "2025-09-05T17:30:00+08:00" {
		t.Fatalf("unexpected surviving element: %v", slots[0])
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	t.Parallel()

	input := map[string]any{"business_id": 1001, "customer_name": "Alex"}
	output := map[string]any{"status": "confirmed", "appointment_id": "APT-00003"}

	d1, p1 := Summarize("appointment_book", input, output)
	d2, p2 := Summarize("appointment_book", input, output)
	if d1 != d2 || !reflect.DeepEqual(p1, p2) {
		t.Fatalf("summarize not deterministic: %v vs %v", p1, p2)
	}
}

func TestSummarizeEmptyToolName(t *testing.T) {
	t.Parallel()

	display, points := Summarize("", nil, map[string]any{"ignored": true})
	if display != "" {
		t.Fatalf("expected empty display name, got %q", display)
	}
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", points)
	}
}

func TestNormalizeParsesJSONStrings(t *testing.T) {
	t.Parallel()

	normalized := Normalize(`{"status": "confirmed", "queue_number": "B01"}`)
	m, ok := normalized.(map[string]any)
	if !ok {
		t.Fatalf("expected mapping, got %T", normalized)
	}
	if m["queue_number"] != "B01" {
		t.Fatalf("unexpected parse result: %v", m)
	}

	if got := Normalize("plain text"); got != "plain text" {
		t.Fatalf("plain string should pass through, got %v", got)
	}
}

func TestNormalizeStructsThroughJSON(t *testing.T) {
	t.Parallel()

	type response struct {
		AppointmentID string `json:"appointment_id"`
		QueueNumber   string `json:"queue_number,omitempty"`
	}

	normalized := Normalize(response{AppointmentID: "APT-00009"})
	m, ok := normalized.(map[string]any)
	if !ok {
		t.Fatalf("expected mapping, got %T", normalized)
	}
	if m["appointment_id"] != "APT-00009" {
		t.Fatalf("unexpected struct conversion: %v", m)
	}
}

func TestPendingInputCoercion(t *testing.T) {
	t.Parallel()

	pending := PendingInput(map[string]any{
		"business_id":   2001,
		"customer_name": "Taylor",
		"notes":         nil,
	})
	if pending["business_id"] != 2001 || pending["customer_name"] != "Taylor" {
		t.Fatalf("unexpected pending input: %v", pending)
	}
	if _, exists := pending["notes"]; exists {
		t.Fatalf("expected nulls pruned: %v", pending)
	}

	wrapped := PendingInput("raw text")
	if wrapped["value"] != "raw text" {
		t.Fatalf("expected scalar wrap, got %v", wrapped)
	}
}
