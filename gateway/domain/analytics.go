package domain

type AnalyticsRequest struct {
	BusinessID int      `json:"business_id"`
	Metrics    []string `json:"metrics"`
	Period     string   `json:"period"`
}

type ServiceInsight struct {
	ServiceID    int     `json:"service_id"`
	Name         string  `json:"name"`
	BookingCount int     `json:"booking_count,omitempty"`
	TotalRevenue float64 `json:"total_revenue,omitempty"`
	Currency     string  `json:"currency,omitempty"`
}

type AppointmentAnalytics struct {
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"by_status,omitempty"`
	UniqueCustomers int            `json:"unique_customers"`
}

type InvoiceAnalytics struct {
	Total               int            `json:"total"`
	ByStatus            map[string]int `json:"by_status,omitempty"`
	TotalRevenue        float64        `json:"total_revenue"`
	PaidTotal           float64        `json:"paid_total"`
	OutstandingTotal    float64        `json:"outstanding_total"`
	AverageInvoiceValue float64        `json:"average_invoice_value"`
	Currency            string         `json:"currency,omitempty"`
	UniqueCustomers     int            `json:"unique_customers"`
}

type LeadAnalytics struct {
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"by_status,omitempty"`
	SourceBreakdown map[string]int `json:"source_breakdown,omitempty"`
}

type AnalyticsResponse struct {
	Footfall              int                   `json:"footfall"`
	Revenue               string                `json:"revenue"`
	ReportGeneratedAt     string                `json:"report_generated_at"`
	TopAppointmentService *ServiceInsight       `json:"top_appointment_service,omitempty"`
	HighestRevenueService *ServiceInsight       `json:"highest_revenue_service,omitempty"`
	AppointmentSummary    *AppointmentAnalytics `json:"appointment_summary,omitempty"`
	InvoiceSummary        *InvoiceAnalytics     `json:"invoice_summary,omitempty"`
	LeadSummary           *LeadAnalytics        `json:"lead_summary,omitempty"`
}
