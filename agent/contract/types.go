package contract

// ConversationTurn is one completed exchange between the user and the
// assistant. Immutable once created; owned by the conversation memory store.
type ConversationTurn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// ToolRequest is a single tool invocation planned by the reasoning engine.
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolResult carries the outcome of one tool invocation. A business-level
// failure (conflict, no match) is normal data inside Result, not an Error.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DataPoint is a flat, client-ready record summarizing one tool's
// input/output. Keys are camelCase; null/empty values are pruned.
type DataPoint = map[string]any

// RunInput is one user turn handed to the orchestrator.
type RunInput struct {
	Prompt            string
	ConversationID    string
	ResetConversation bool
}

// RunResponse is the unified envelope returned for one agent run.
type RunResponse struct {
	Output           string         `json:"output"`
	Tool             string         `json:"tool,omitempty"`
	DataPoints       []DataPoint    `json:"dataPoints"`
	RequiresHuman    bool           `json:"requiresHuman"`
	PendingTool      string         `json:"pendingTool,omitempty"`
	PendingToolInput map[string]any `json:"pendingToolInput,omitempty"`
}

// ToolDescriptor is the descriptive listing entry for one bound tool.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
