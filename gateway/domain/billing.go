package domain

// LineItem accepts unit_price or the alias price; the service layer resolves
// whichever is present.
type LineItem struct {
	ItemID      string   `json:"item_id,omitempty"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	TaxRate     float64  `json:"tax_rate"`
}

// ResolveUnitPrice returns the effective unit price, preferring unit_price
// over the price alias.
func (li LineItem) ResolveUnitPrice() (float64, bool) {
	if li.UnitPrice != nil {
		return *li.UnitPrice, true
	}
	if li.Price != nil {
		return *li.Price, true
	}
	return 0, false
}

type InvoiceRequest struct {
	BusinessID    int        `json:"business_id"`
	CustomerName  string     `json:"customer_name"`
	Items         []LineItem `json:"items"`
	Currency      string     `json:"currency"`
	AppointmentID string     `json:"appointment_id,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type InvoiceResponse struct {
	InvoiceID   string  `json:"invoice_id"`
	Total       float64 `json:"total"`
	Currency    string  `json:"currency"`
	CreatedAt   string  `json:"created_at"`
	PaymentLink string  `json:"payment_link,omitempty"`
	Status      string  `json:"status"`
}

type InvoiceListRequest struct {
	BusinessID int `json:"business_id"`
}

type InvoiceSummary struct {
	InvoiceID string  `json:"invoice_id"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
	CreatedAt string  `json:"created_at"`
	Status    string  `json:"status"`
}

type InvoiceListResponse struct {
	Total int              `json:"total"`
	Items []InvoiceSummary `json:"items"`
}

type InvoiceMarkPaidRequest struct {
	InvoiceID string `json:"invoice_id"`
}

type InvoiceMarkPaidResponse struct {
	InvoiceID string `json:"invoice_id"`
	Status    string `json:"status"`
	PaidAt    string `json:"paid_at"`
}
