package driven

import "context"

// Stop reasons reported by a completion.
const (
	// StopReasonToolUse means the model requested tool execution
	// instead of answering directly.
	StopReasonToolUse = "tool_use"

	// StopReasonEndTurn means the model produced a terminal answer.
	StopReasonEndTurn = "end_turn"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content block types.
const (
	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// ContentBlock is one element of a message: free text, a model-emitted
// tool invocation, or a tool result fed back to the model.
type ContentBlock struct {
	Type string

	// Text is set for BlockText.
	Text string

	// ID, Name and Input are set for BlockToolUse.
	ID    string
	Name  string
	Input map[string]any

	// ToolUseID and Content are set for BlockToolResult, keying the
	// result to the invocation that produced it.
	ToolUseID string
	Content   string
}

// TextBlock builds a plain text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

// ToolResultBlock builds a tool result block for an invocation id.
func ToolResultBlock(toolUseID, content string) ContentBlock {
	return ContentBlock{Type: BlockToolResult, ToolUseID: toolUseID, Content: content}
}

// Message is a single turn element in model context.
type Message struct {
	Role    string
	Content []ContentBlock
}

// ToolDefinition describes a callable tool for model planning.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// CompletionRequest is a provider-agnostic model request.
type CompletionRequest struct {
	System      string
	Messages    []Message
	Tools       []ToolDefinition
	Temperature float64
	MaxTokens   int
}

// Completion is the model's response to one request.
type Completion struct {
	StopReason string
	Content    []ContentBlock
}

// Text returns the concatenated text blocks of the completion.
func (c *Completion) Text() string {
	var out string
	for _, block := range c.Content {
		if block.Type == BlockText {
			out += block.Text
		}
	}
	return out
}

// ToolUses returns the tool invocation blocks, in the order the model
// emitted them.
func (c *Completion) ToolUses() []ContentBlock {
	var uses []ContentBlock
	for _, block := range c.Content {
		if block.Type == BlockToolUse {
			uses = append(uses, block)
		}
	}
	return uses
}

// CompletionClient is the LLM transport used by the response generator.
type CompletionClient interface {
	// Complete performs one model call.
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
