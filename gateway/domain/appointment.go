// Package domain holds the request/response shapes for the QTick tool
// endpoints. Field names follow the wire contract of the upstream backend
// (snake_case).
package domain

type AppointmentRequest struct {
	BusinessID   int    `json:"business_id"`
	CustomerName string `json:"customer_name"`
	ServiceID    int    `json:"service_id"`
	Datetime     string `json:"datetime"`
}

type AppointmentResponse struct {
	Status         string   `json:"status"`
	AppointmentID  string   `json:"appointment_id,omitempty"`
	QueueNumber    string   `json:"queue_number,omitempty"`
	Message        string   `json:"message,omitempty"`
	SuggestedSlots []string `json:"suggested_slots,omitempty"`
}

type AppointmentListRequest struct {
	BusinessID int    `json:"business_id"`
	DateFrom   string `json:"date_from,omitempty"`
	DateTo     string `json:"date_to,omitempty"`
	Status     string `json:"status,omitempty"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

type AppointmentSummary struct {
	AppointmentID string `json:"appointment_id"`
	CustomerName  string `json:"customer_name"`
	ServiceID     int    `json:"service_id"`
	Datetime      string `json:"datetime"`
	Status        string `json:"status"`
	QueueNumber   string `json:"queue_number,omitempty"`
}

type AppointmentListResponse struct {
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Items    []AppointmentSummary `json:"items"`
}
