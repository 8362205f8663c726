package domain

type CampaignRequest struct {
	CustomerName    string `json:"customer_name"`
	PhoneNumber     string `json:"phone_number"`
	MessageTemplate string `json:"message_template"`
	OfferCode       string `json:"offer_code"`
	Expiry          string `json:"expiry"`
}

type CampaignResponse struct {
	Status       string `json:"status"`
	DeliveryTime string `json:"delivery_time"`
}
