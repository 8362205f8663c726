package store

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
)

// ErrInvoiceNotFound is returned when marking an unknown invoice paid.
var ErrInvoiceNotFound = errors.New("invoice not found")

type invoiceRecord struct {
	InvoiceID    string
	BusinessID   int
	CustomerName string
	Total        float64
	Currency     string
	CreatedAt    string
	PaymentLink  string
	Status       string
	PaidAt       string
}

type InvoiceRepository struct {
	mu       sync.Mutex
	ids      *idSequence
	invoices map[string]invoiceRecord
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		ids:      newIDSequence("INV"),
		invoices: make(map[string]invoiceRecord),
	}
}

// Create totals the line items (quantity x unit price, plus tax) and stores
// the invoice. Line items must already have resolved unit prices.
func (r *InvoiceRepository) Create(req domainx.InvoiceRequest) domainx.InvoiceResponse {
	total := 0.0
	for _, item := range req.Items {
		unitPrice, _ := item.ResolveUnitPrice()
		line := float64(item.Quantity) * unitPrice
		line *= 1.0 + item.TaxRate
		total += line
	}
	total = math.Round(total*100) / 100

	currency := req.Currency
	if currency == "" {
		currency = "SGD"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec := invoiceRecord{
		InvoiceID:    r.ids.Next(),
		BusinessID:   req.BusinessID,
		CustomerName: req.CustomerName,
		Total:        total,
		Currency:     currency,
		CreatedAt:    utcNowISO(),
		Status:       "created",
	}
	rec.PaymentLink = fmt.Sprintf("https://pay.qtick.co/%s", rec.InvoiceID)
	r.invoices[rec.InvoiceID] = rec

	return domainx.InvoiceResponse{
		InvoiceID:   rec.InvoiceID,
		Total:       rec.Total,
		Currency:    rec.Currency,
		CreatedAt:   rec.CreatedAt,
		PaymentLink: rec.PaymentLink,
		Status:      rec.Status,
	}
}

// List returns every invoice for the business, ordered by id.
func (r *InvoiceRepository) List(businessID int) []domainx.InvoiceSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domainx.InvoiceSummary
	for _, rec := range r.invoices {
		if businessID != 0 && rec.BusinessID != businessID {
			continue
		}
		out = append(out, domainx.InvoiceSummary{
			InvoiceID: rec.InvoiceID,
			Total:     rec.Total,
			Currency:  rec.Currency,
			CreatedAt: rec.CreatedAt,
			Status:    rec.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceID < out[j].InvoiceID })
	return out
}

// MarkPaid flips an invoice to paid. Idempotent for already-paid invoices.
func (r *InvoiceRepository) MarkPaid(invoiceID string) (domainx.InvoiceMarkPaidResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.invoices[invoiceID]
	if !ok {
		return domainx.InvoiceMarkPaidResponse{}, fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
	}
	if rec.Status != "paid" {
		rec.Status = "paid"
		rec.PaidAt = utcNowISO()
		r.invoices[invoiceID] = rec
	}
	return domainx.InvoiceMarkPaidResponse{
		InvoiceID: rec.InvoiceID,
		Status:    rec.Status,
		PaidAt:    rec.PaidAt,
	}, nil
}

// InvoiceDetail carries the fields the analytics aggregations need beyond
// the list projection.
type InvoiceDetail struct {
	InvoiceID    string
	CustomerName string
	Total        float64
	Currency     string
	CreatedAt    string
	Status       string
	PaidAt       string
}

// Snapshot returns full invoice details for a business, ordered by id.
func (r *InvoiceRepository) Snapshot(businessID int) []InvoiceDetail {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []InvoiceDetail
	for _, rec := range r.invoices {
		if businessID != 0 && rec.BusinessID != businessID {
			continue
		}
		out = append(out, InvoiceDetail{
			InvoiceID:    rec.InvoiceID,
			CustomerName: rec.CustomerName,
			Total:        rec.Total,
			Currency:     rec.Currency,
			CreatedAt:    rec.CreatedAt,
			Status:       rec.Status,
			PaidAt:       rec.PaidAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceID < out[j].InvoiceID })
	return out
}
