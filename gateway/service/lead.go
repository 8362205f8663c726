package service

import (
	"context"

	backendx "github.com/qtickhq/agent-gateway/pkg/backend"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

type LeadService struct {
	client *backendx.Client
	repo   *storex.LeadRepository
}

func NewLeadService(client *backendx.Client, repo *storex.LeadRepository) *LeadService {
	return &LeadService{client: client, repo: repo}
}

func (s *LeadService) Create(ctx context.Context, req domainx.LeadCreateRequest) (domainx.LeadCreateResponse, error) {
	if s.client == nil {
		return s.repo.Create(req), nil
	}

	var out domainx.LeadCreateResponse
	if err := s.client.Post(ctx, "/leads", req, &out); err != nil {
		return domainx.LeadCreateResponse{}, newError("failed to create lead", err)
	}
	if out.NextAction == "" {
		out.NextAction = "Schedule a follow-up call or message with this lead within 24 hours."
		out.FollowUpRequired = true
	}
	return out, nil
}

func (s *LeadService) List(ctx context.Context, req domainx.LeadListRequest) (domainx.LeadListResponse, error) {
	if s.client == nil {
		items := s.repo.List(req.BusinessID)
		return domainx.LeadListResponse{Total: len(items), Items: items}, nil
	}

	var out domainx.LeadListResponse
	if err := s.client.Post(ctx, "/leads/list", req, &out); err != nil {
		return domainx.LeadListResponse{}, newError("failed to list leads", err)
	}
	return out, nil
}
