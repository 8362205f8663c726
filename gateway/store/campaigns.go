package store

import (
	"sort"
	"sync"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
)

type campaignRecord struct {
	CampaignID   string
	CustomerName string
	PhoneNumber  string
	OfferCode    string
	Expiry       string
	Status       string
	DeliveryTime string
}

type CampaignRepository struct {
	mu        sync.Mutex
	ids       *idSequence
	campaigns map[string]campaignRecord
}

func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		ids:       newIDSequence("CMP"),
		campaigns: make(map[string]campaignRecord),
	}
}

// Send records the campaign as delivered immediately. There is no real
// messaging backend behind the mock store.
func (r *CampaignRepository) Send(req domainx.CampaignRequest) domainx.CampaignResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := campaignRecord{
		CampaignID:   r.ids.Next(),
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		OfferCode:    req.OfferCode,
		Expiry:       req.Expiry,
		Status:       "sent",
		DeliveryTime: utcNowISO(),
	}
	r.campaigns[rec.CampaignID] = rec

	return domainx.CampaignResponse{
		Status:       rec.Status,
		DeliveryTime: rec.DeliveryTime,
	}
}

// CampaignDetail is the live-ops projection of a sent campaign.
type CampaignDetail struct {
	CampaignID   string
	CustomerName string
	OfferCode    string
	Status       string
	DeliveryTime string
}

func (r *CampaignRepository) Snapshot() []CampaignDetail {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]CampaignDetail, 0, len(r.campaigns))
	for _, rec := range r.campaigns {
		out = append(out, CampaignDetail{
			CampaignID:   rec.CampaignID,
			CustomerName: rec.CustomerName,
			OfferCode:    rec.OfferCode,
			Status:       rec.Status,
			DeliveryTime: rec.DeliveryTime,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CampaignID < out[j].CampaignID })
	return out
}
