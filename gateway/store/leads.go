package store

import (
	"sort"
	"sync"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
)

const leadNextAction = "Schedule a follow-up call or message with this lead within 24 hours."

type leadRecord struct {
	LeadID     string
	BusinessID int
	Name       string
	Phone      string
	Email      string
	Source     string
	Notes      string
	Status     string
	CreatedAt  string
}

type LeadRepository struct {
	mu    sync.Mutex
	ids   *idSequence
	leads map[string]leadRecord
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{
		ids:   newIDSequence("LEAD"),
		leads: make(map[string]leadRecord),
	}
}

func (r *LeadRepository) Create(req domainx.LeadCreateRequest) domainx.LeadCreateResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := leadRecord{
		LeadID:     r.ids.Next(),
		BusinessID: req.BusinessID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Source:     req.Source,
		Notes:      req.Notes,
		Status:     "new",
		CreatedAt:  utcNowISO(),
	}
	r.leads[rec.LeadID] = rec

	return domainx.LeadCreateResponse{
		LeadID:           rec.LeadID,
		Status:           rec.Status,
		CreatedAt:        rec.CreatedAt,
		NextAction:       leadNextAction,
		FollowUpRequired: true,
	}
}

// List returns leads for the business ordered by id, which tracks creation
// order for the sequential id scheme.
func (r *LeadRepository) List(businessID int) []domainx.LeadSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domainx.LeadSummary
	for _, rec := range r.leads {
		if businessID != 0 && rec.BusinessID != businessID {
			continue
		}
		out = append(out, domainx.LeadSummary{
			LeadID:    rec.LeadID,
			Name:      rec.Name,
			Status:    rec.Status,
			Phone:     rec.Phone,
			Email:     rec.Email,
			Source:    rec.Source,
			CreatedAt: rec.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeadID < out[j].LeadID })
	return out
}
