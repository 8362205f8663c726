package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
)

type agentRunRequest struct {
	Prompt            json.RawMessage `json:"prompt"`
	ConversationID    string          `json:"conversationId"`
	ResetConversation bool            `json:"resetConversation"`
}

func (h *Handler) runAgent(w http.ResponseWriter, r *http.Request) {
	var req agentRunRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", contractx.ErrValidation, err))
		return
	}

	prompt, err := flattenPrompt(req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.agent.Run(r.Context(), contractx.RunInput{
		Prompt:            prompt,
		ConversationID:    req.ConversationID,
		ResetConversation: req.ResetConversation,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) runAgentGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reset := strings.EqualFold(q.Get("resetConversation"), "true")

	resp, err := h.agent.Run(r.Context(), contractx.RunInput{
		Prompt:            q.Get("prompt"),
		ConversationID:    q.Get("conversationId"),
		ResetConversation: reset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listAgentTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": h.agent.Tools()})
}

// flattenPrompt accepts a plain string or a structured prompt (role/content
// messages, possibly nested in lists) and reduces it to one string. Parts
// are joined with blank lines.
func flattenPrompt(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: prompt is required", contractx.ErrValidation)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%w: invalid prompt: %v", contractx.ErrValidation, err)
	}

	flattened := strings.TrimSpace(flattenPromptValue(value))
	if flattened == "" {
		return "", fmt.Errorf("%w: prompt is required", contractx.ErrValidation)
	}
	return flattened, nil
}

func flattenPromptValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if part := flattenPromptValue(item); part != "" {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, "\n\n")
	case map[string]any:
		content := flattenPromptValue(v["content"])
		if content == "" {
			content = flattenPromptValue(v["text"])
		}
		if content == "" {
			return ""
		}
		if role, ok := v["role"].(string); ok && strings.TrimSpace(role) != "" {
			return strings.TrimSpace(role) + ": " + content
		}
		return content
	default:
		return ""
	}
}
