// Package runlog persists completed agent runs to Postgres for auditing.
// When no DSN is configured the gateway falls back to a no-op logger, so a
// database is never required to run the agent.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
)

type Config struct {
	DSN     string        `envconfig:"DSN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

// Enabled reports whether a database target is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.DSN) != ""
}

type runRow struct {
	bun.BaseModel `bun:"table:agent_runs,alias:ar"`

	ID             string    `bun:"id,pk"`
	ConversationID string    `bun:"conversation_id"`
	Prompt         string    `bun:"prompt"`
	Output         string    `bun:"output"`
	Tool           string    `bun:"tool"`
	RequiresHuman  bool      `bun:"requires_human"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
}

// Logger writes one row per completed agent run.
type Logger struct {
	db      *bun.DB
	timeout time.Duration
}

var _ contractx.RunLogger = (*Logger)(nil)

// New opens the Postgres connection and ensures the audit table exists.
func New(ctx context.Context, cfg Config) (*Logger, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("runlog: DSN is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(strings.TrimSpace(cfg.DSN))))
	db := bun.NewDB(sqldb, pgdialect.New())

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	initCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if _, err := db.NewCreateTable().Model((*runRow)(nil)).IfNotExists().Exec(initCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("runlog: create agent_runs table: %w", err)
	}

	return &Logger{db: db, timeout: timeout}, nil
}

func (l *Logger) LogRun(ctx context.Context, rec contractx.RunRecord) error {
	row := &runRow{
		ID:             uuid.NewString(),
		ConversationID: rec.ConversationID,
		Prompt:         rec.Prompt,
		Output:         rec.Output,
		Tool:           rec.Tool,
		RequiresHuman:  rec.RequiresHuman,
		CreatedAt:      time.Now().UTC(),
	}

	writeCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	if _, err := l.db.NewInsert().Model(row).Exec(writeCtx); err != nil {
		return fmt.Errorf("runlog: insert run %s: %w", row.ID, err)
	}
	return nil
}

func (l *Logger) Close() error {
	return l.db.Close()
}

// Noop satisfies the run logger contract without persisting anything.
type Noop struct{}

var _ contractx.RunLogger = Noop{}

func (Noop) LogRun(context.Context, contractx.RunRecord) error { return nil }
