package contract

import "context"

// MemoryStore keeps bounded per-conversation histories.
type MemoryStore interface {
	GetHistory(conversationID string) []ConversationTurn
	Append(conversationID, userMessage, assistantMessage string)
	Reset(conversationID string)
	Clear()
	Values() map[string][]ConversationTurn
}

// RunLogger records completed agent runs for auditing. Implementations must
// tolerate being called from concurrent runs.
type RunLogger interface {
	LogRun(ctx context.Context, rec RunRecord) error
}

// RunRecord is the audit projection of one completed agent run.
type RunRecord struct {
	ConversationID string
	Prompt         string
	Output         string
	Tool           string
	RequiresHuman  bool
}
