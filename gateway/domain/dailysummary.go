package domain

type DailySummaryRequest struct {
	BusinessID int      `json:"business_id"`
	Date       string   `json:"date,omitempty"`
	Metrics    []string `json:"metrics,omitempty"`
	Period     string   `json:"period,omitempty"`
}

type DailySummaryMetric struct {
	Key              string   `json:"key"`
	Label            string   `json:"label"`
	Value            any      `json:"value"`
	Unit             string   `json:"unit,omitempty"`
	ChangePercentage *float64 `json:"change_percentage,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

type DailySummaryData struct {
	Business    BusinessSummary      `json:"business"`
	Date        string               `json:"date"`
	GeneratedAt string               `json:"generated_at"`
	Metrics     []DailySummaryMetric `json:"metrics"`
}

type DailySummaryResponse struct {
	DailySummaryData
	Summary string `json:"summary"`
}
