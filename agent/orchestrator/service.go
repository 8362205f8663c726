// Package orchestrator runs one agent turn end to end: prompt validation,
// conversation context, the reasoning engine, tool activity summarization,
// and the human approval gate for sensitive operations.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
	summaryx "github.com/qtickhq/agent-gateway/agent/summary"
	toolx "github.com/qtickhq/agent-gateway/agent/tool"
	"github.com/qtickhq/agent-gateway/pkg/genai"
)

// sensitiveTools require a human approval step before execution side effects
// are considered committed. The run still executes the tool (the gateway is
// mock-first) but flags the response for review.
var sensitiveTools = map[string]struct{}{
	toolx.ToolInvoiceCreate: {},
}

type runner interface {
	Run(ctx context.Context, prompt string, collector *Collector) error
}

// SettingsProvider returns the current engine configuration. It is consulted
// on every run so model settings can change without a restart.
type SettingsProvider func() genai.Config

type engineBuilder func(ctx context.Context, cfg genai.Config, execute toolx.Executor) (runner, error)

type Service struct {
	settings SettingsProvider
	execute  toolx.Executor
	memory   contractx.MemoryStore
	runlog   contractx.RunLogger
	build    engineBuilder

	mu        sync.Mutex
	engineKey string
	engine    runner
}

func New(
	settings SettingsProvider,
	execute toolx.Executor,
	memory contractx.MemoryStore,
	runlog contractx.RunLogger,
) (*Service, error) {
	if settings == nil {
		return nil, errors.New("settings provider is required")
	}
	if execute == nil {
		return nil, errors.New("tool executor is required")
	}
	if memory == nil {
		memory = noopMemoryStore{}
	}
	if runlog == nil {
		runlog = noopRunLogger{}
	}

	return &Service{
		settings: settings,
		execute:  execute,
		memory:   memory,
		runlog:   runlog,
		build:    buildEinoEngine,
	}, nil
}

func buildEinoEngine(ctx context.Context, cfg genai.Config, execute toolx.Executor) (runner, error) {
	chatModel, err := cfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: build chat model: check QTICK_AGENT_MODEL: %v", contractx.ErrConfig, err)
	}
	return newEngine(ctx, chatModel, execute)
}

// Run executes one agent turn. The engine call happens on its own goroutine
// so cancellation of ctx returns immediately even while the model is slow.
func (s *Service) Run(ctx context.Context, in contractx.RunInput) (contractx.RunResponse, error) {
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return contractx.RunResponse{}, fmt.Errorf("%w: prompt is required", contractx.ErrValidation)
	}

	conversationID := strings.TrimSpace(in.ConversationID)
	if in.ResetConversation && conversationID != "" {
		s.memory.Reset(conversationID)
	}

	var history []contractx.ConversationTurn
	if conversationID != "" {
		history = s.memory.GetHistory(conversationID)
	}

	eng, err := s.engineFor(ctx)
	if err != nil {
		return contractx.RunResponse{}, err
	}

	collector := NewCollector()
	done := make(chan error, 1)
	go func() {
		done <- eng.Run(ctx, augmentPrompt(history, prompt), collector)
	}()

	select {
	case <-ctx.Done():
		return contractx.RunResponse{}, ctx.Err()
	case err := <-done:
		if err != nil {
			return contractx.RunResponse{}, err
		}
	}

	activity := collector.Snapshot()
	resp := contractx.RunResponse{
		Output:     activity.Final,
		DataPoints: []contractx.DataPoint{},
	}

	if activity.Tool != "" {
		name, points := summaryx.Summarize(activity.Tool, activity.Input, activity.Output)
		resp.Tool = name
		resp.DataPoints = points

		if _, sensitive := sensitiveTools[activity.Tool]; sensitive {
			resp.RequiresHuman = true
			resp.PendingTool = activity.Tool
			resp.PendingToolInput = summaryx.PendingInput(activity.Input)
		}
	}

	if conversationID != "" {
		s.memory.Append(conversationID, prompt, resp.Output)
	}

	rec := contractx.RunRecord{
		ConversationID: conversationID,
		Prompt:         prompt,
		Output:         resp.Output,
		Tool:           activity.Tool,
		RequiresHuman:  resp.RequiresHuman,
	}
	if err := s.runlog.LogRun(ctx, rec); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("run audit write failed")
	}

	return resp, nil
}

// Tools lists the bound tool catalog for discovery endpoints.
func (s *Service) Tools() []contractx.ToolDescriptor {
	return toolx.Descriptors()
}

// engineFor returns the cached engine for the current settings, rebuilding
// when base URL, model, or temperature changed. Last writer wins.
func (s *Service) engineFor(ctx context.Context) (runner, error) {
	cfg := s.settings()
	key := fmt.Sprintf("%s|%s|%g",
		strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		strings.TrimSpace(cfg.Model),
		cfg.Temperature,
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil && s.engineKey == key {
		return s.engine, nil
	}

	eng, err := s.build(ctx, cfg, s.execute)
	if err != nil {
		return nil, err
	}
	s.engine = eng
	s.engineKey = key
	return eng, nil
}

// augmentPrompt prepends prior turns, oldest first, so the stateless engine
// can resolve follow-up references like "book the second one".
func augmentPrompt(history []contractx.ConversationTurn, prompt string) string {
	if len(history) == 0 {
		return prompt
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, turn := range history {
		b.WriteString("User: ")
		b.WriteString(turn.User)
		b.WriteString("\nAssistant: ")
		b.WriteString(turn.Assistant)
		b.WriteString("\n")
	}
	b.WriteString("\nUse the conversation above as context for the request below.\n\n")
	b.WriteString(prompt)
	return b.String()
}

type noopMemoryStore struct{}

func (noopMemoryStore) GetHistory(string) []contractx.ConversationTurn { return nil }
func (noopMemoryStore) Append(string, string, string)                  {}
func (noopMemoryStore) Reset(string)                                   {}
func (noopMemoryStore) Clear()                                         {}
func (noopMemoryStore) Values() map[string][]contractx.ConversationTurn {
	return map[string][]contractx.ConversationTurn{}
}

type noopRunLogger struct{}

func (noopRunLogger) LogRun(context.Context, contractx.RunRecord) error { return nil }
