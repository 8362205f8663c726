package service

import (
	"context"
	"errors"

	backendx "github.com/qtickhq/agent-gateway/pkg/backend"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

type InvoiceService struct {
	client *backendx.Client
	repo   *storex.InvoiceRepository
}

func NewInvoiceService(client *backendx.Client, repo *storex.InvoiceRepository) *InvoiceService {
	return &InvoiceService{client: client, repo: repo}
}

func (s *InvoiceService) Create(ctx context.Context, req domainx.InvoiceRequest) (domainx.InvoiceResponse, error) {
	if s.client == nil {
		return s.repo.Create(req), nil
	}

	var out domainx.InvoiceResponse
	if err := s.client.Post(ctx, "/invoices", req, &out); err != nil {
		return domainx.InvoiceResponse{}, newError("failed to create invoice", err)
	}
	return out, nil
}

func (s *InvoiceService) List(ctx context.Context, req domainx.InvoiceListRequest) (domainx.InvoiceListResponse, error) {
	if s.client == nil {
		items := s.repo.List(req.BusinessID)
		return domainx.InvoiceListResponse{Total: len(items), Items: items}, nil
	}

	var out domainx.InvoiceListResponse
	if err := s.client.Post(ctx, "/invoices/list", req, &out); err != nil {
		return domainx.InvoiceListResponse{}, newError("failed to list invoices", err)
	}
	return out, nil
}

func (s *InvoiceService) MarkPaid(ctx context.Context, req domainx.InvoiceMarkPaidRequest) (domainx.InvoiceMarkPaidResponse, error) {
	if s.client == nil {
		out, err := s.repo.MarkPaid(req.InvoiceID)
		if err != nil {
			if errors.Is(err, storex.ErrInvoiceNotFound) {
				return domainx.InvoiceMarkPaidResponse{}, newErrorf("Invoice '%s' not found", req.InvoiceID)
			}
			return domainx.InvoiceMarkPaidResponse{}, newError("failed to mark invoice paid", err)
		}
		return out, nil
	}

	var out domainx.InvoiceMarkPaidResponse
	if err := s.client.Post(ctx, "/invoices/mark-paid", req, &out); err != nil {
		return domainx.InvoiceMarkPaidResponse{}, newError("failed to mark invoice paid", err)
	}
	return out, nil
}
