// Package service implements the business operations behind the tool
// endpoints. Each service works against the seeded in-memory store, or
// delegates to the live backend when a client is configured.
package service

import (
	"context"

	backendx "github.com/qtickhq/agent-gateway/pkg/backend"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

type AppointmentService struct {
	client *backendx.Client
	repo   *storex.AppointmentRepository
}

func NewAppointmentService(client *backendx.Client, repo *storex.AppointmentRepository) *AppointmentService {
	return &AppointmentService{client: client, repo: repo}
}

func (s *AppointmentService) Book(ctx context.Context, req domainx.AppointmentRequest) (domainx.AppointmentResponse, error) {
	if s.client == nil {
		return s.repo.Book(req), nil
	}

	var out domainx.AppointmentResponse
	if err := s.client.Post(ctx, "/appointments/book", req, &out); err != nil {
		return domainx.AppointmentResponse{}, newError("failed to book appointment", err)
	}
	return out, nil
}

func (s *AppointmentService) List(ctx context.Context, req domainx.AppointmentListRequest) (domainx.AppointmentListResponse, error) {
	if s.client == nil {
		return s.repo.List(req), nil
	}

	var out domainx.AppointmentListResponse
	if err := s.client.Post(ctx, "/appointments/list", req, &out); err != nil {
		return domainx.AppointmentListResponse{}, newError("failed to list appointments", err)
	}
	return out, nil
}
