package service

import (
	"context"

	backendx "github.com/qtickhq/agent-gateway/pkg/backend"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

type CampaignService struct {
	client *backendx.Client
	repo   *storex.CampaignRepository
}

func NewCampaignService(client *backendx.Client, repo *storex.CampaignRepository) *CampaignService {
	return &CampaignService{client: client, repo: repo}
}

func (s *CampaignService) SendWhatsApp(ctx context.Context, req domainx.CampaignRequest) (domainx.CampaignResponse, error) {
	if s.client == nil {
		return s.repo.Send(req), nil
	}

	var out domainx.CampaignResponse
	if err := s.client.Post(ctx, "/campaigns/whatsapp", req, &out); err != nil {
		return domainx.CampaignResponse{}, newError("failed to send campaign", err)
	}
	return out, nil
}
