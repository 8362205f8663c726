package domain

type LeadCreateRequest struct {
	BusinessID int    `json:"business_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Source     string `json:"source,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type LeadCreateResponse struct {
	LeadID           string `json:"lead_id"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
	NextAction       string `json:"next_action,omitempty"`
	FollowUpRequired bool   `json:"follow_up_required,omitempty"`
}

type LeadListRequest struct {
	BusinessID int `json:"business_id"`
}

type LeadSummary struct {
	LeadID    string `json:"lead_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Source    string `json:"source,omitempty"`
	CreatedAt string `json:"created_at"`
}

type LeadListResponse struct {
	Total int           `json:"total"`
	Items []LeadSummary `json:"items"`
}
