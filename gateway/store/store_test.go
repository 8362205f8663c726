package store

import (
	"errors"
	"strings"
	"testing"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestSeededAppointments(t *testing.T) {
	t.Parallel()

	st := New()
	resp := st.Appointments.List(domainx.AppointmentListRequest{BusinessID: 1001})
	if resp.Total != 2 {
		t.Fatalf("expected 2 seeded appointments, got %d", resp.Total)
	}
	if resp.Items[0].CustomerName != "Alex Tan" || resp.Items[1].CustomerName != "Jamie Lee" {
		t.Fatalf("unexpected seed order: %+v", resp.Items)
	}
	if resp.Items[0].QueueNumber != "B01" {
		t.Fatalf("unexpected queue number %q", resp.Items[0].QueueNumber)
	}
}

func TestBookAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	st := New()
	resp := st.Appointments.Book(domainx.AppointmentRequest{
		BusinessID:   1003,
		CustomerName: "Priya",
		ServiceID:    301,
		Datetime:     "2026-09-03T10:00:00+08:00",
	})
	if resp.Status != "confirmed" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
	if resp.AppointmentID != "APT-00003" {
		t.Fatalf("expected next id after seeds, got %q", resp.AppointmentID)
	}
	if resp.QueueNumber != "B01" {
		t.Fatalf("queue numbering is per business, got %q", resp.QueueNumber)
	}
}

func TestBookConflictSuggestsAlternatives(t *testing.T) {
	t.Parallel()

	st := New()
	// Same slot as the seeded Alex Tan appointment.
	resp := st.Appointments.Book(domainx.AppointmentRequest{
		BusinessID:   1001,
		CustomerName: "Dana",
		ServiceID:    101,
		Datetime:     "2025-09-05T17:00:00+08:00",
	})
	if resp.Status != "conflict" {
		t.Fatalf("expected conflict, got %q", resp.Status)
	}
	if resp.AppointmentID != "" {
		t.Fatalf("conflict must not allocate an id, got %q", resp.AppointmentID)
	}
	want := []string{
		"2025-09-05T17:30:00+08:00",
		"2025-09-05T18:00:00+08:00",
		"2025-09-05T16:30:00+08:00",
	}
	if len(resp.SuggestedSlots) != len(want) {
		t.Fatalf("unexpected suggestions %v", resp.SuggestedSlots)
	}
	for i, slot := range want {
		if resp.SuggestedSlots[i] != slot {
			t.Fatalf("suggestion %d: want %s, got %s", i, slot, resp.SuggestedSlots[i])
		}
	}
}

func TestConflictDetectionComparesInstants(t *testing.T) {
	t.Parallel()

	st := New()
	// 09:00 UTC is the same instant as the seeded 17:00+08:00 slot.
	resp := st.Appointments.Book(domainx.AppointmentRequest{
		BusinessID:   1001,
		CustomerName: "Dana",
		ServiceID:    101,
		Datetime:     "2025-09-05T09:00:00Z",
	})
	if resp.Status != "conflict" {
		t.Fatalf("expected conflict across timezones, got %q", resp.Status)
	}
}

func TestAppointmentListPaging(t *testing.T) {
	t.Parallel()

	st := New()
	for i := 0; i < 5; i++ {
		st.Appointments.Book(domainx.AppointmentRequest{
			BusinessID:   1002,
			CustomerName: "Guest",
			ServiceID:    201,
			Datetime:     "2026-09-03T10:00:00+08:00",
		})
	}

	resp := st.Appointments.List(domainx.AppointmentListRequest{BusinessID: 1002, Page: 2, PageSize: 2})
	if resp.Total != 5 {
		t.Fatalf("unexpected total %d", resp.Total)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("unexpected page size %d", len(resp.Items))
	}
	if resp.Page != 2 || resp.PageSize != 2 {
		t.Fatalf("paging echo wrong: %+v", resp)
	}
}

func TestInvoiceTotalsWithTax(t *testing.T) {
	t.Parallel()

	st := New()
	resp := st.Invoices.Create(domainx.InvoiceRequest{
		BusinessID:   1001,
		CustomerName: "Alex Tan",
		Items: []domainx.LineItem{
			{Description: "Signature Haircut", Quantity: 2, UnitPrice: floatPtr(38.0), TaxRate: 0.08},
			{Description: "Classic Facial", Quantity: 1, UnitPrice: floatPtr(68.0)},
		},
	})
	// 2*38*1.08 + 68 = 82.08 + 68
	if resp.Total != 150.08 {
		t.Fatalf("unexpected total %v", resp.Total)
	}
	if resp.Currency != "SGD" {
		t.Fatalf("expected SGD default, got %q", resp.Currency)
	}
	if resp.PaymentLink != "https://pay.qtick.co/"+resp.InvoiceID {
		t.Fatalf("unexpected payment link %q", resp.PaymentLink)
	}
	if !strings.HasPrefix(resp.InvoiceID, "INV-") {
		t.Fatalf("unexpected invoice id %q", resp.InvoiceID)
	}
	if resp.Status != "created" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	t.Parallel()

	st := New()
	created := st.Invoices.Create(domainx.InvoiceRequest{
		BusinessID:   1001,
		CustomerName: "Jamie",
		Items:        []domainx.LineItem{{Description: "Facial", Quantity: 1, UnitPrice: floatPtr(68.0)}},
	})

	first, err := st.Invoices.MarkPaid(created.InvoiceID)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if first.Status != "paid" || first.PaidAt == "" {
		t.Fatalf("unexpected response %+v", first)
	}

	second, err := st.Invoices.MarkPaid(created.InvoiceID)
	if err != nil {
		t.Fatalf("second MarkPaid: %v", err)
	}
	if second.PaidAt != first.PaidAt {
		t.Fatalf("paid timestamp must not change: %q vs %q", second.PaidAt, first.PaidAt)
	}
}

func TestMarkPaidUnknownInvoice(t *testing.T) {
	t.Parallel()

	st := New()
	_, err := st.Invoices.MarkPaid("INV-99999")
	if !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestLeadDefaults(t *testing.T) {
	t.Parallel()

	st := New()
	resp := st.Leads.Create(domainx.LeadCreateRequest{
		BusinessID: 1001,
		Name:       "Nora",
		Phone:      "+6591234567",
		Source:     "walk-in",
	})
	if resp.LeadID != "LEAD-00001" {
		t.Fatalf("unexpected lead id %q", resp.LeadID)
	}
	if resp.Status != "new" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
	if !resp.FollowUpRequired {
		t.Fatal("new leads require follow up")
	}
	if !strings.Contains(resp.NextAction, "24 hours") {
		t.Fatalf("unexpected next action %q", resp.NextAction)
	}
}

func TestMasterDataLookups(t *testing.T) {
	t.Parallel()

	master := NewMasterDataRepository()
	if rec := master.GetBusinessByID(1002); rec == nil || rec.Name != "Chillrezze Anna Nagar" {
		t.Fatalf("unexpected business for 1002: %+v", rec)
	}
	if rec := master.GetBusiness("chillbreeze"); rec == nil || rec.BusinessID != 1001 {
		t.Fatalf("slug lookup failed: %+v", rec)
	}

	search := master.SearchBusinesses("chennai", 10)
	if search.Total != 2 {
		t.Fatalf("expected both Chennai branches, got %d", search.Total)
	}

	svc, ok := master.Service(104)
	if !ok || svc.Name != "Kids Haircut" || svc.Price != 25.0 {
		t.Fatalf("unexpected service 104: %+v", svc)
	}
	if _, ok := master.Service(999); ok {
		t.Fatal("unknown service id must not resolve")
	}
}

func TestCampaignSend(t *testing.T) {
	t.Parallel()

	st := New()
	resp := st.Campaigns.Send(domainx.CampaignRequest{
		CustomerName:    "Alex",
		PhoneNumber:     "+6591234567",
		MessageTemplate: "Hi {name}, enjoy 20% off this week!",
		OfferCode:       "CHILL20",
		Expiry:          "2026-09-10",
	})
	if resp.Status != "sent" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
	if resp.DeliveryTime == "" {
		t.Fatal("delivery time must be set")
	}

	snapshot := st.Campaigns.Snapshot()
	if len(snapshot) != 1 || snapshot[0].CampaignID != "CMP-00001" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}
