package orchestrator

import "sync"

// Collector captures tool activity observed during one engine run. The run
// surfaces a single tool to the client, so only the most recent tool call is
// kept; intermediate calls in a multi-call turn are dropped.
type Collector struct {
	mu sync.Mutex

	tool   string
	input  any
	output any
	final  string
}

func NewCollector() *Collector {
	return &Collector{}
}

// RecordTool stores one executed tool call, replacing any earlier call.
func (c *Collector) RecordTool(tool string, input, output any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tool = tool
	c.input = input
	c.output = output
}

// RecordFinal stores the engine's final natural-language answer.
func (c *Collector) RecordFinal(output string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.final = output
}

// Activity is the collected view of one completed run.
type Activity struct {
	Tool   string
	Input  any
	Output any
	Final  string
}

func (c *Collector) Snapshot() Activity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Activity{
		Tool:   c.tool,
		Input:  c.input,
		Output: c.output,
		Final:  c.final,
	}
}
