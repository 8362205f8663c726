package domain

// BusinessSummary is a lightweight projection of a business in the directory.
type BusinessSummary struct {
	BusinessID int      `json:"business_id"`
	Name       string   `json:"name"`
	Location   string   `json:"location,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type BusinessSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type BusinessSearchResponse struct {
	Query string            `json:"query"`
	Total int               `json:"total"`
	Items []BusinessSummary `json:"items"`
}

type ServiceSummary struct {
	ServiceID       int     `json:"service_id"`
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	Price           float64 `json:"price,omitempty"`
}

type ServiceLookupRequest struct {
	ServiceName  string `json:"service_name"`
	BusinessID   int    `json:"business_id,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// BusinessServiceMatch groups the services matched inside one business.
type BusinessServiceMatch struct {
	Business BusinessSummary  `json:"business"`
	Services []ServiceSummary `json:"services"`
}

type ServiceLookupResponse struct {
	Query              string                 `json:"query"`
	Business           *BusinessSummary       `json:"business,omitempty"`
	BusinessCandidates []BusinessSummary      `json:"business_candidates,omitempty"`
	Matches            []ServiceSummary       `json:"matches,omitempty"`
	ServiceMatches     []BusinessServiceMatch `json:"service_matches,omitempty"`
	ExactMatch         *ServiceSummary        `json:"exact_match,omitempty"`
	Message            string                 `json:"message,omitempty"`
	SuggestedServices  []string               `json:"suggested_service_names,omitempty"`
}
