package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
)

func TestAgentRunStringPrompt(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{resp: contractx.RunResponse{Output: "Booked.", DataPoints: []contractx.DataPoint{}}}
	router := newTestRouter(agent)

	rec := postJSON(t, router, "/agent/run", `{
		"prompt": "book alex a haircut tomorrow",
		"conversationId": "conv-1"
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if agent.last.Prompt != "book alex a haircut tomorrow" {
		t.Fatalf("unexpected prompt %q", agent.last.Prompt)
	}
	if agent.last.ConversationID != "conv-1" {
		t.Fatalf("unexpected conversation id %q", agent.last.ConversationID)
	}

	var resp contractx.RunResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Output != "Booked." {
		t.Fatalf("unexpected output %q", resp.Output)
	}
}

func TestAgentRunStructuredPrompt(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{resp: contractx.RunResponse{DataPoints: []contractx.DataPoint{}}}
	router := newTestRouter(agent)

	rec := postJSON(t, router, "/agent/run", `{
		"prompt": [
			{"role": "user", "content": "find haircut places"},
			{"role": "assistant", "content": "Chillbreeze Orchard offers haircuts."},
			{"role": "user", "content": ["book the first one", "tomorrow at 5pm"]}
		]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}

	prompt := agent.last.Prompt
	if !strings.Contains(prompt, "user: find haircut places") {
		t.Fatalf("missing first message: %q", prompt)
	}
	if !strings.Contains(prompt, "assistant: Chillbreeze Orchard offers haircuts.") {
		t.Fatalf("missing assistant message: %q", prompt)
	}
	if !strings.Contains(prompt, "book the first one\n\ntomorrow at 5pm") {
		t.Fatalf("nested content must join with blank lines: %q", prompt)
	}
}

func TestAgentRunMissingPrompt(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeAgent{})
	for _, body := range []string{`{}`, `{"prompt": ""}`, `{"prompt": [{"role": "user"}]}`} {
		rec := postJSON(t, router, "/agent/run", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAgentRunErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("%w: prompt is required", contractx.ErrValidation), http.StatusBadRequest},
		{"config", fmt.Errorf("%w: check QTICK_AGENT_MODEL", contractx.ErrConfig), http.StatusInternalServerError},
		{"model", fmt.Errorf("%w: planner invoke", contractx.ErrModelInvoke), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(&fakeAgent{err: tc.err})
			rec := postJSON(t, router, "/agent/run", `{"prompt": "hi"}`)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d body %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAgentRunGetQueryParams(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{resp: contractx.RunResponse{DataPoints: []contractx.DataPoint{}}}
	router := newTestRouter(agent)

	req := httptest.NewRequest(http.MethodGet,
		"/agent/run?prompt=list+appointments&conversationId=conv-4&resetConversation=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if agent.last.Prompt != "list appointments" {
		t.Fatalf("unexpected prompt %q", agent.last.Prompt)
	}
	if !agent.last.ResetConversation {
		t.Fatal("resetConversation=true must be honored")
	}
}

func TestAgentToolsEndpoint(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{tools: []contractx.ToolDescriptor{
		{Name: "appointment_book", Description: "Book an appointment."},
		{Name: "datetime_parse", Description: "Parse a datetime."},
	}}
	router := newTestRouter(agent)

	req := httptest.NewRequest(http.MethodGet, "/agent/tools", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var payload struct {
		Tools []contractx.ToolDescriptor `json:"tools"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Tools) != 2 || payload.Tools[0].Name != "appointment_book" {
		t.Fatalf("unexpected tools %+v", payload.Tools)
	}
}
