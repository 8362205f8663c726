package store

import (
	"sort"
	"strconv"
	"strings"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
)

type ServiceRecord struct {
	ServiceID       int
	Name            string
	Category        string
	DurationMinutes int
	Price           float64
}

type BusinessRecord struct {
	BusinessID int
	Slug       string
	Name       string
	Location   string
	Tags       []string
	Services   []ServiceRecord
}

// MasterDataRepository holds the business/service directory. The directory is
// read-only after seeding, so lookups need no locking.
type MasterDataRepository struct {
	byID   map[int]*BusinessRecord
	bySlug map[string]*BusinessRecord
}

func NewMasterDataRepository() *MasterDataRepository {
	r := &MasterDataRepository{
		byID:   make(map[int]*BusinessRecord),
		bySlug: make(map[string]*BusinessRecord),
	}
	r.seed()
	return r
}

func (r *MasterDataRepository) seed() {
	r.add(&BusinessRecord{
		BusinessID: 1001,
		Slug:       "chillbreeze",
		Name:       "Chillbreeze Orchard",
		Location:   "Orchard Road, Singapore",
		Tags:       []string{"flagship", "beauty"},
		Services: []ServiceRecord{
			{ServiceID: 101, Name: "Signature Haircut", Category: "grooming", DurationMinutes: 45, Price: 38.0},
			{ServiceID: 102, Name: "Classic Facial", Category: "spa", DurationMinutes: 60, Price: 68.0},
			{ServiceID: 103, Name: "Aromatherapy Massage", Category: "spa", DurationMinutes: 75, Price: 96.0},
			{ServiceID: 104, Name: "Kids Haircut", Category: "grooming", DurationMinutes: 30, Price: 25.0},
		},
	})
	r.add(&BusinessRecord{
		BusinessID: 1002,
		Slug:       "chillbreeze-anna-nagar",
		Name:       "Chillrezze Anna Nagar",
		Location:   "Anna Nagar, Chennai",
		Tags:       []string{"india", "salon"},
		Services: []ServiceRecord{
			{ServiceID: 201, Name: "Chillrezze Blowout", Category: "styling", DurationMinutes: 50, Price: 54.0},
			{ServiceID: 202, Name: "Festive Mehndi", Category: "beauty", DurationMinutes: 90, Price: 72.0},
		},
	})
	r.add(&BusinessRecord{
		BusinessID: 1003,
		Slug:       "chillbreeze-adayar",
		Name:       "Chillbreeze Adayar",
		Location:   "Adyar, Chennai",
		Tags:       []string{"india", "spa"},
		Services: []ServiceRecord{
			{ServiceID: 301, Name: "Beach Breeze Haircut", Category: "grooming", DurationMinutes: 40, Price: 36.0},
			{ServiceID: 302, Name: "Soothing Head Massage", Category: "spa", DurationMinutes: 45, Price: 42.0},
		},
	})
}

func (r *MasterDataRepository) add(rec *BusinessRecord) {
	rec.Slug = strings.ToLower(rec.Slug)
	r.byID[rec.BusinessID] = rec
	r.bySlug[rec.Slug] = rec
}

// GetBusiness resolves a business by numeric id, slug, or name fragment.
func (r *MasterDataRepository) GetBusiness(identifier string) *BusinessRecord {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil
	}
	if id, err := strconv.Atoi(identifier); err == nil {
		return r.byID[id]
	}

	normalized := strings.ToLower(identifier)
	if rec, ok := r.bySlug[normalized]; ok {
		return rec
	}
	for _, rec := range r.sorted() {
		nameLower := strings.ToLower(rec.Name)
		if normalized == nameLower || strings.Contains(nameLower, normalized) {
			return rec
		}
		if strings.Contains(rec.Slug, normalized) {
			return rec
		}
	}
	return nil
}

// GetBusinessByID resolves a business by numeric id only.
func (r *MasterDataRepository) GetBusinessByID(id int) *BusinessRecord {
	return r.byID[id]
}

// SearchBusinesses returns every business whose name, slug, or tags contain
// the query fragment, truncated to limit but reporting the full match count.
func (r *MasterDataRepository) SearchBusinesses(query string, limit int) domainx.BusinessSearchResponse {
	normalized := strings.ToLower(query)
	var matches []*BusinessRecord
	for _, rec := range r.sorted() {
		if strings.Contains(strings.ToLower(rec.Name), normalized) ||
			strings.Contains(rec.Slug, normalized) ||
			tagMatch(rec.Tags, normalized) {
			matches = append(matches, rec)
		}
	}

	items := make([]domainx.BusinessSummary, 0, len(matches))
	for i, rec := range matches {
		if limit > 0 && i >= limit {
			break
		}
		items = append(items, summarizeBusiness(rec))
	}
	return domainx.BusinessSearchResponse{Query: query, Total: len(matches), Items: items}
}

// FindBusinessesByName returns every business whose name or slug contains the
// fragment, for disambiguation before a service lookup.
func (r *MasterDataRepository) FindBusinessesByName(fragment string) []domainx.BusinessSummary {
	normalized := strings.ToLower(strings.TrimSpace(fragment))
	if normalized == "" {
		return nil
	}
	var out []domainx.BusinessSummary
	for _, rec := range r.sorted() {
		if strings.Contains(strings.ToLower(rec.Name), normalized) || strings.Contains(rec.Slug, normalized) {
			out = append(out, summarizeBusiness(rec))
		}
	}
	return out
}

// FindServices matches services inside one business by tokenized name or
// category match, sorted by name and truncated to limit.
func (r *MasterDataRepository) FindServices(business *BusinessRecord, query string, limit int) []domainx.ServiceSummary {
	normalized := strings.ToLower(query)
	var tokens []string
	for _, token := range strings.Fields(normalized) {
		switch token {
		case "just", "only", "a", "an", "the":
		default:
			tokens = append(tokens, token)
		}
	}

	var matches []ServiceRecord
	for _, svc := range business.Services {
		nameLower := strings.ToLower(svc.Name)
		categoryLower := strings.ToLower(svc.Category)
		if len(tokens) > 0 && allTokensMatch(tokens, nameLower, categoryLower) {
			matches = append(matches, svc)
			continue
		}
		if strings.Contains(nameLower, normalized) || strings.Contains(categoryLower, normalized) {
			matches = append(matches, svc)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })

	out := make([]domainx.ServiceSummary, 0, len(matches))
	for i, svc := range matches {
		if limit > 0 && i >= limit {
			break
		}
		out = append(out, domainx.ServiceSummary{
			ServiceID:       svc.ServiceID,
			Name:            svc.Name,
			Category:        svc.Category,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}
	return out
}

// FindBusinessesForService scans the whole directory and groups service
// matches by business.
func (r *MasterDataRepository) FindBusinessesForService(query string, limit int) []domainx.BusinessServiceMatch {
	var out []domainx.BusinessServiceMatch
	for _, rec := range r.sorted() {
		matches := r.FindServices(rec, query, limit)
		if len(matches) == 0 {
			continue
		}
		out = append(out, domainx.BusinessServiceMatch{
			Business: summarizeBusiness(rec),
			Services: matches,
		})
	}
	return out
}

// ServiceName resolves a service id to its display name across the directory.
func (r *MasterDataRepository) ServiceName(serviceID int) string {
	svc, ok := r.Service(serviceID)
	if !ok {
		return ""
	}
	return svc.Name
}

// Service resolves a service id to its full record across the directory.
func (r *MasterDataRepository) Service(serviceID int) (ServiceRecord, bool) {
	for _, rec := range r.byID {
		for _, svc := range rec.Services {
			if svc.ServiceID == serviceID {
				return svc, true
			}
		}
	}
	return ServiceRecord{}, false
}

func (r *MasterDataRepository) sorted() []*BusinessRecord {
	out := make([]*BusinessRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func summarizeBusiness(rec *BusinessRecord) domainx.BusinessSummary {
	return domainx.BusinessSummary{
		BusinessID: rec.BusinessID,
		Name:       rec.Name,
		Location:   rec.Location,
		Tags:       append([]string(nil), rec.Tags...),
	}
}

func tagMatch(tags []string, normalized string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), normalized) {
			return true
		}
	}
	return false
}

func allTokensMatch(tokens []string, name, category string) bool {
	for _, token := range tokens {
		if !strings.Contains(name, token) && !strings.Contains(category, token) {
			return false
		}
	}
	return true
}
