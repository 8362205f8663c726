// Package httpapi exposes the gateway over REST: the /tools/* endpoints the
// agent calls back into, and the /agent/* endpoints clients talk to.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
	servicex "github.com/qtickhq/agent-gateway/gateway/service"
)

// maxRequestBody caps tool and agent payload sizes at 1MB.
const maxRequestBody = 1 << 20

// AgentRunner is the orchestrator surface the HTTP layer depends on.
type AgentRunner interface {
	Run(ctx context.Context, in contractx.RunInput) (contractx.RunResponse, error)
	Tools() []contractx.ToolDescriptor
}

type Handler struct {
	agent        AgentRunner
	appointments *servicex.AppointmentService
	invoices     *servicex.InvoiceService
	leads        *servicex.LeadService
	businesses   *servicex.BusinessDirectoryService
	campaigns    *servicex.CampaignService
	analytics    *servicex.AnalyticsService
	summaries    *servicex.DailySummaryService
	liveOps      *servicex.LiveOperationsService
}

func NewHandler(
	agent AgentRunner,
	appointments *servicex.AppointmentService,
	invoices *servicex.InvoiceService,
	leads *servicex.LeadService,
	businesses *servicex.BusinessDirectoryService,
	campaigns *servicex.CampaignService,
	analytics *servicex.AnalyticsService,
	summaries *servicex.DailySummaryService,
	liveOps *servicex.LiveOperationsService,
) *Handler {
	return &Handler{
		agent:        agent,
		appointments: appointments,
		invoices:     invoices,
		leads:        leads,
		businesses:   businesses,
		campaigns:    campaigns,
		analytics:    analytics,
		summaries:    summaries,
		liveOps:      liveOps,
	}
}

func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/agent", func(r chi.Router) {
		r.Post("/run", h.runAgent)
		r.Get("/run", h.runAgentGet)
		r.Get("/tools", h.listAgentTools)
	})

	r.Route("/tools", func(r chi.Router) {
		r.Post("/appointment/book", handle(h.appointments.Book))
		r.Post("/appointment/list", handle(h.appointments.List))
		r.Post("/invoice/create", handle(h.invoices.Create))
		r.Post("/invoice/list", handle(h.invoices.List))
		r.Post("/invoice/mark-paid", handle(h.invoices.MarkPaid))
		r.Post("/leads/create", handle(h.leads.Create))
		r.Post("/leads/list", handle(h.leads.List))
		r.Post("/business/search", handle(h.businesses.Search))
		r.Post("/business/services/find", handle(h.businesses.LookupService))
		r.Post("/business/daily-summary", handle(h.summaries.Generate))
		r.Post("/campaign/sendWhatsApp", handle(h.campaigns.SendWhatsApp))
		r.Post("/analytics/report", handle(h.analytics.GenerateReport))
		r.Post("/live-ops/events", handle(h.liveOps.Events))
	})

	return r
}

// handle adapts one service call to a JSON POST endpoint.
func handle[Req any, Resp any](call func(ctx context.Context, req Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, fmt.Errorf("%w: %v", contractx.ErrValidation, err))
			return
		}

		resp, err := call(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func decodeJSON(r *http.Request, out any) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBody)
	defer body.Close()

	dec := json.NewDecoder(body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("encode response failed")
	}
}

// writeError maps the error taxonomy onto HTTP statuses: bad input is the
// caller's fault, downstream tool failures are a bad gateway, everything
// else is a server error.
func writeError(w http.ResponseWriter, err error) {
	var svcErr *servicex.Error
	switch {
	case errors.Is(err, contractx.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
	case errors.As(err, &svcErr):
		writeJSON(w, http.StatusBadGateway, map[string]string{"detail": svcErr.Message})
	case errors.Is(err, contractx.ErrConfig):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}
}
