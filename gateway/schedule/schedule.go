// Package schedule runs recurring gateway jobs. The only job today is the
// evening daily-summary digest for every business in the directory.
package schedule

import (
	"context"
	"fmt"
	"time"

	rcron "github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
	servicex "github.com/qtickhq/agent-gateway/gateway/service"
	storex "github.com/qtickhq/agent-gateway/gateway/store"
)

type Config struct {
	Enabled bool          `envconfig:"ENABLED" split_words:"true" default:"false"`
	Spec    string        `envconfig:"SPEC" split_words:"true" default:"0 18 * * *"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
}

type Scheduler struct {
	cron      *rcron.Cron
	master    *storex.MasterDataRepository
	summaries *servicex.DailySummaryService
	timeout   time.Duration
}

func New(cfg Config, master *storex.MasterDataRepository, summaries *servicex.DailySummaryService) (*Scheduler, error) {
	s := &Scheduler{
		cron:      rcron.New(),
		master:    master,
		summaries: summaries,
		timeout:   cfg.Timeout,
	}

	if _, err := s.cron.AddFunc(cfg.Spec, s.runDailySummaries); err != nil {
		return nil, fmt.Errorf("schedule: register daily summary job %q: %w", cfg.Spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Msg("daily summary scheduler started")
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailySummaries() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	listing := s.master.SearchBusinesses("", 0)
	for _, business := range listing.Items {
		resp, err := s.summaries.Generate(ctx, domainx.DailySummaryRequest{BusinessID: business.BusinessID})
		if err != nil {
			log.Warn().Err(err).Int("business_id", business.BusinessID).Msg("daily summary job failed")
			continue
		}
		log.Info().
			Int("business_id", business.BusinessID).
			Str("date", resp.Date).
			Str("summary", resp.Summary).
			Msg("daily summary generated")
	}
}
