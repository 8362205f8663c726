package domain

type LiveOpsRequest struct {
	BusinessID int    `json:"business_id"`
	Date       string `json:"date,omitempty"`
}

type LiveOpsEvent struct {
	Kind      string `json:"kind"`
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
	Detail    string `json:"detail,omitempty"`
	RefID     string `json:"ref_id,omitempty"`
}

type LiveOpsResponse struct {
	Business    BusinessSummary `json:"business"`
	Date        string          `json:"date"`
	GeneratedAt string          `json:"generated_at"`
	Total       int             `json:"total"`
	Events      []LiveOpsEvent  `json:"events"`
}
