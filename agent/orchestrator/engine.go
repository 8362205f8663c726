package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
	toolx "github.com/qtickhq/agent-gateway/agent/tool"
)

const plannerSystemPrompt = `You are the QTick operations assistant for small
businesses in Singapore. You help owners manage appointments, invoices,
leads, campaigns, and analytics through the available tools.

Use exactly one tool when the request maps to a business operation. Resolve
natural-language datetimes with datetime_parse before booking. Answer
directly without tools for greetings or general questions. Never invent
business or service identifiers; look them up first.`

const responderSystemPrompt = `You are the QTick operations assistant. A tool
was just executed on the user's behalf. Write a short, friendly reply that
states the outcome using the tool result. Mention concrete identifiers
(appointment id, invoice id, queue number) when present. If the result
contains an error or a conflict, explain it and relay any suggested
alternatives. Do not call tools.`

// engine is one compiled reasoning pipeline: a tool-planning graph whose
// model is bound to the QTick tool catalog, and a responder graph that turns
// an executed tool's transcript into the final answer.
type engine struct {
	planner   compose.Runnable[map[string]any, *schema.Message]
	responder compose.Runnable[map[string]any, *schema.Message]
	execute   toolx.Executor
}

func newEngine(ctx context.Context, chatModel einomodel.ToolCallingChatModel, execute toolx.Executor) (*engine, error) {
	toolModel, err := chatModel.WithTools(toolx.Catalog())
	if err != nil {
		return nil, fmt.Errorf("%w: bind tool catalog: %v", contractx.ErrModelInvoke, err)
	}

	planner, err := compileModelGraph(ctx, toolModel, plannerSystemPrompt, "agent.planner_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile planner graph: %v", contractx.ErrModelInvoke, err)
	}
	responder, err := compileModelGraph(ctx, chatModel, responderSystemPrompt, "agent.responder_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile responder graph: %v", contractx.ErrModelInvoke, err)
	}

	return &engine{
		planner:   planner,
		responder: responder,
		execute:   execute,
	}, nil
}

func compileModelGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	name string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(name))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return runner, nil
}

// Run executes one agent turn: plan, execute at most the planned tool calls,
// then produce the final answer. All observed activity lands in the collector.
func (e *engine) Run(ctx context.Context, prompt string, collector *Collector) error {
	msg, err := e.planner.Invoke(ctx, map[string]any{"input": prompt})
	if err != nil {
		return classifyEngineErr(err, "planner invoke")
	}
	if msg == nil {
		return fmt.Errorf("%w: empty planner response", contractx.ErrModelInvoke)
	}

	if len(msg.ToolCalls) == 0 {
		collector.RecordFinal(strings.TrimSpace(msg.Content))
		return nil
	}

	var lastResult contractx.ToolResult
	for _, call := range msg.ToolCalls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return fmt.Errorf("%w: tool call name is empty", contractx.ErrModelInvoke)
		}

		args := map[string]any{}
		if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrModelInvoke, tool, err)
			}
		}

		result, err := e.execute(ctx, tool, args)
		if err != nil {
			return err
		}

		if result.Error != "" {
			collector.RecordTool(tool, args, map[string]any{"error": result.Error})
		} else {
			collector.RecordTool(tool, args, result.Result)
		}
		lastResult = result
	}

	final, err := e.respond(ctx, prompt, lastResult)
	if err != nil {
		return err
	}
	collector.RecordFinal(final)
	return nil
}

func (e *engine) respond(ctx context.Context, prompt string, result contractx.ToolResult) (string, error) {
	transcript, err := renderTranscript(prompt, result)
	if err != nil {
		return "", err
	}

	msg, err := e.responder.Invoke(ctx, map[string]any{"input": transcript})
	if err != nil {
		return "", classifyEngineErr(err, "responder invoke")
	}
	if msg == nil {
		return "", fmt.Errorf("%w: empty responder response", contractx.ErrModelInvoke)
	}
	return strings.TrimSpace(msg.Content), nil
}

func renderTranscript(prompt string, result contractx.ToolResult) (string, error) {
	payload := result.Result
	if result.Error != "" {
		payload = map[string]any{"error": result.Error}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal tool result for tool=%s: %v", contractx.ErrModelInvoke, result.Tool, err)
	}

	var b strings.Builder
	b.WriteString("User request:\n")
	b.WriteString(prompt)
	b.WriteString("\n\nExecuted tool: ")
	b.WriteString(result.Tool)
	b.WriteString("\nTool result:\n")
	b.Write(encoded)
	return b.String(), nil
}

// classifyEngineErr maps model-side failures onto the error taxonomy. An
// unknown or unsupported model is an operator problem, so it surfaces as a
// configuration error naming the variable to fix.
func classifyEngineErr(err error, op string) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "model") &&
		(strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist") || strings.Contains(msg, "not supported")) {
		return fmt.Errorf("%w: %s: check QTICK_AGENT_MODEL: %v", contractx.ErrConfig, op, err)
	}
	return fmt.Errorf("%w: %s: %v", contractx.ErrModelInvoke, op, err)
}
