package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
	"github.com/qtickhq/agent-gateway/agent/memory"
	"github.com/qtickhq/agent-gateway/agent/orchestrator"
	toolx "github.com/qtickhq/agent-gateway/agent/tool"
	"github.com/qtickhq/agent-gateway/gateway/httpapi"
	"github.com/qtickhq/agent-gateway/gateway/schedule"
	servicex "github.com/qtickhq/agent-gateway/gateway/service"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
	backendx "github.com/qtickhq/agent-gateway/pkg/backend"
	configx "github.com/qtickhq/agent-gateway/pkg/config"
	"github.com/qtickhq/agent-gateway/pkg/genai"
	_ "github.com/qtickhq/agent-gateway/pkg/logger/autoload"
	"github.com/qtickhq/agent-gateway/pkg/runlog"
)

type AppConfig struct {
	Addr         string `envconfig:"ADDR" split_words:"true" default:":8080"`
	ToolsBaseURL string `envconfig:"TOOLS_BASE_URL" split_words:"true" default:"http://localhost:8080"`
	MemoryWindow int    `envconfig:"MEMORY_WINDOW" split_words:"true" default:"15"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("QTICK")

	// Live backend is optional. Without a base URL every tool endpoint
	// serves from the seeded in-memory store.
	backendCfg := configx.MustNew[backendx.Config]("QTICK_BACKEND")
	var liveClient *backendx.Client
	if backendCfg.BaseURL != "" {
		client, err := backendx.NewClient(*backendCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("backend client init failed")
		}
		liveClient = client
		log.Info().Str("base_url", backendCfg.BaseURL).Msg("live backend enabled")
	} else {
		log.Info().Msg("no backend configured, serving mock data")
	}

	genaiCfg := configx.MustNew[genai.Config]("QTICK_AGENT")

	st := storex.New()
	analytics := servicex.NewAnalyticsService(liveClient, st.MasterData, st.Appointments, st.Invoices, st.Leads)
	generator := servicex.NewModelSummaryGenerator(genai.NewClient(*genaiCfg), genaiCfg.Model)
	summaries := servicex.NewDailySummaryService(liveClient, st.MasterData, analytics, generator)

	// The agent's tools call back into this process over HTTP, same as any
	// external client would.
	toolClient, err := backendx.NewClient(backendx.Config{BaseURL: appCfg.ToolsBaseURL})
	if err != nil {
		log.Fatal().Err(err).Msg("tool client init failed")
	}

	var auditLog contractx.RunLogger = runlog.Noop{}
	runlogCfg := configx.MustNew[runlog.Config]("QTICK_RUNLOG")
	if runlogCfg.Enabled() {
		logger, err := runlog.New(context.Background(), *runlogCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("run audit log init failed")
		}
		defer func() {
			if err := logger.Close(); err != nil {
				log.Warn().Err(err).Msg("run audit log close failed")
			}
		}()
		auditLog = logger
		log.Info().Msg("run audit log enabled")
	}

	agent, err := orchestrator.New(
		func() genai.Config { return *genaiCfg },
		toolx.NewExecutor(toolClient),
		memory.NewStore(appCfg.MemoryWindow),
		auditLog,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("orchestrator init failed")
	}

	handler := httpapi.NewHandler(
		agent,
		servicex.NewAppointmentService(liveClient, st.Appointments),
		servicex.NewInvoiceService(liveClient, st.Invoices),
		servicex.NewLeadService(liveClient, st.Leads),
		servicex.NewBusinessDirectoryService(liveClient, st.MasterData),
		servicex.NewCampaignService(liveClient, st.Campaigns),
		analytics,
		summaries,
		servicex.NewLiveOperationsService(liveClient, st.MasterData, st.Appointments, st.Invoices, st.Leads, st.Campaigns),
	)

	scheduleCfg := configx.MustNew[schedule.Config]("QTICK_SCHEDULE")
	if scheduleCfg.Enabled {
		scheduler, err := schedule.New(*scheduleCfg, st.MasterData, summaries)
		if err != nil {
			log.Fatal().Err(err).Msg("scheduler init failed")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              appCfg.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", appCfg.Addr).Msg("gateway listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("gateway stopped")
}
