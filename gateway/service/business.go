package service

import (
	"context"
	"sort"
	"strings"

	backendx "github.com/qtickhq/agent-gateway/pkg/backend"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

// BusinessDirectoryService answers business and service master data queries.
type BusinessDirectoryService struct {
	client *backendx.Client
	repo   *storex.MasterDataRepository
}

func NewBusinessDirectoryService(client *backendx.Client, repo *storex.MasterDataRepository) *BusinessDirectoryService {
	return &BusinessDirectoryService{client: client, repo: repo}
}

func (s *BusinessDirectoryService) Search(ctx context.Context, req domainx.BusinessSearchRequest) (domainx.BusinessSearchResponse, error) {
	if s.client == nil {
		return s.repo.SearchBusinesses(req.Query, req.Limit), nil
	}

	var out domainx.BusinessSearchResponse
	if err := s.client.Post(ctx, "/businesses/search", req, &out); err != nil {
		return domainx.BusinessSearchResponse{}, newError("failed to search businesses", err)
	}
	return out, nil
}

// LookupService resolves a service name to concrete service ids. Without a
// business selector it scans the whole directory and may return multiple
// business candidates for the caller to disambiguate.
func (s *BusinessDirectoryService) LookupService(ctx context.Context, req domainx.ServiceLookupRequest) (domainx.ServiceLookupResponse, error) {
	if s.client != nil {
		var out domainx.ServiceLookupResponse
		if err := s.client.Post(ctx, "/businesses/services/lookup", req, &out); err != nil {
			return domainx.ServiceLookupResponse{}, newError("failed to look up service", err)
		}
		return out, nil
	}

	if req.BusinessID == 0 && req.BusinessName == "" {
		return s.lookupAcrossDirectory(req), nil
	}

	var business *storex.BusinessRecord
	if req.BusinessID != 0 {
		business = s.repo.GetBusinessByID(req.BusinessID)
		if business == nil {
			return domainx.ServiceLookupResponse{}, newErrorf("Business '%d' not found in master data", req.BusinessID)
		}
	} else {
		candidates := s.repo.FindBusinessesByName(req.BusinessName)
		if len(candidates) == 0 {
			return domainx.ServiceLookupResponse{}, newErrorf("Business '%s' not found in master data", req.BusinessName)
		}
		if len(candidates) > 1 {
			return domainx.ServiceLookupResponse{
				Query:              req.ServiceName,
				BusinessCandidates: candidates,
				Message:            "Multiple businesses matched the provided name. Please choose the correct business before searching services.",
			}, nil
		}
		business = s.repo.GetBusinessByID(candidates[0].BusinessID)
		if business == nil {
			return domainx.ServiceLookupResponse{}, newErrorf("Business '%d' not found in master data", candidates[0].BusinessID)
		}
	}

	matches := s.repo.FindServices(business, req.ServiceName, req.Limit)
	exact := exactServiceMatch(matches, req.ServiceName)

	var message string
	switch {
	case len(matches) == 0:
		message = "No matching services were found. Try a different keyword."
	case len(matches) > 1 && exact == nil:
		message = "Multiple services matched your search. Please choose the most appropriate option."
	case len(matches) > 1:
		message = "Multiple services found including an exact name match; confirm the intended service."
	}

	if hint := haircutHint(business, req.ServiceName); hint != "" {
		if message != "" {
			message = message + " " + hint
		} else {
			message = hint
		}
	}

	return domainx.ServiceLookupResponse{
		Query:      req.ServiceName,
		Business:   businessSummaryOf(business),
		Matches:    matches,
		ExactMatch: exact,
		Message:    message,
	}, nil
}

func (s *BusinessDirectoryService) lookupAcrossDirectory(req domainx.ServiceLookupRequest) domainx.ServiceLookupResponse {
	grouped := s.repo.FindBusinessesForService(req.ServiceName, req.Limit)
	if len(grouped) == 0 {
		return domainx.ServiceLookupResponse{
			Query:          req.ServiceName,
			ServiceMatches: []domainx.BusinessServiceMatch{},
			Message:        "No businesses currently offer a service with that name.",
		}
	}

	if len(grouped) == 1 {
		group := grouped[0]
		exact := exactServiceMatch(group.Services, req.ServiceName)
		message := "Found one business with related services."
		if exact != nil {
			message = "Found one business offering this service."
		}
		business := group.Business
		return domainx.ServiceLookupResponse{
			Query:      req.ServiceName,
			Business:   &business,
			Matches:    group.Services,
			ExactMatch: exact,
			Message:    message,
		}
	}

	candidates := make([]domainx.BusinessSummary, 0, len(grouped))
	for _, group := range grouped {
		candidates = append(candidates, group.Business)
	}
	return domainx.ServiceLookupResponse{
		Query:              req.ServiceName,
		BusinessCandidates: candidates,
		ServiceMatches:     grouped,
		Message:            "Multiple businesses offer this service. Please choose the intended business.",
	}
}

func exactServiceMatch(matches []domainx.ServiceSummary, query string) *domainx.ServiceSummary {
	normalized := strings.ToLower(query)
	for i := range matches {
		if strings.ToLower(matches[i].Name) == normalized {
			return &matches[i]
		}
	}
	return nil
}

// haircutHint nudges callers toward a concrete haircut service when the query
// is a generic "haircut" and the business carries more than one.
func haircutHint(business *storex.BusinessRecord, query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	compact := strings.ReplaceAll(strings.ReplaceAll(normalized, " ", ""), "-", "")
	tokens := strings.Fields(strings.ReplaceAll(normalized, "-", " "))
	isHaircut := strings.Contains(compact, "haircut") || (containsToken(tokens, "hair") && containsToken(tokens, "cut"))
	if !isHaircut {
		return ""
	}

	var names []string
	for _, svc := range business.Services {
		if strings.Contains(strings.ToLower(svc.Name), "hair") {
			names = append(names, svc.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return "Please specify which haircut service you need. Available haircut services: " + strings.Join(names, ", ")
}

func containsToken(tokens []string, want string) bool {
	for _, token := range tokens {
		if token == want {
			return true
		}
	}
	return false
}

func businessSummaryOf(rec *storex.BusinessRecord) *domainx.BusinessSummary {
	return &domainx.BusinessSummary{
		BusinessID: rec.BusinessID,
		Name:       rec.Name,
		Location:   rec.Location,
		Tags:       append([]string(nil), rec.Tags...),
	}
}

// resolveBusiness is shared by the aggregation services that accept a numeric
// business id.
func resolveBusiness(repo *storex.MasterDataRepository, businessID int) (*storex.BusinessRecord, error) {
	rec := repo.GetBusinessByID(businessID)
	if rec == nil {
		return nil, newErrorf("Business '%d' not found", businessID)
	}
	return rec, nil
}
