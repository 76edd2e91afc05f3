package services

import (
	"context"
	"fmt"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/logger"
	"github.com/lectern-labs/lectern-cli/internal/tools"
)

// Generation parameters. Temperature zero keeps retrieval-grounded
// answers deterministic.
const (
	DefaultMaxTokens = 800
	temperature      = 0
)

// systemPrompt steers the model toward tool-backed, direct answers.
const systemPrompt = `You are an AI assistant specialized in course materials and educational content with access to tools for searching course content and retrieving course outlines.

Tool Usage:
- **search_course_content**: Use for questions about specific course content, lessons, or detailed educational materials
- **get_course_outline**: Use for questions about course structure, outline, lesson list, or what a course covers
- **One tool round only**: You get a single round of tool use per query, so choose the most relevant tool and arguments directly
- Synthesize tool results into accurate, fact-based responses
- If tool yields no results, state this clearly without offering alternatives

When to Use Each Tool:
- Questions like "What does the course cover?", "Show me the lessons", "What's the outline?" → use get_course_outline
- Questions like "How do I...", "Explain...", "What is..." about course content → use search_course_content

For Outline Queries:
- Return the complete course information: course title, course link, instructor, and all lessons with their numbers and titles
- Present the information clearly and comprehensively

Response Protocol:
- **General knowledge questions**: Answer using existing knowledge without using tools
- **Course-specific questions**: Use appropriate tool first, then answer
- **No meta-commentary**:
 - Provide direct answers only, no reasoning process, tool explanations, or question-type analysis
 - Do not mention "based on the search results" or "based on the outline"

All responses must be:
1. **Brief, Concise and focused** - Get to the point quickly
2. **Educational** - Maintain instructional value
3. **Clear** - Use accessible language
4. **Example-supported** - Include relevant examples when they aid understanding
Provide only the direct answer to what was asked.`

// GeneratorResult is the generator's answer plus the sources gathered
// during tool execution.
type GeneratorResult struct {
	Answer  string
	Sources []domain.Source
}

// ResponseGenerator drives the dual-call protocol: one planning call
// with the tool schemas, an optional tool round, then a synthesis call
// with no tools offered.
type ResponseGenerator struct {
	client    driven.CompletionClient
	registry  *tools.Registry
	maxTokens int
}

// NewResponseGenerator creates a generator. maxTokens <= 0 uses the
// default budget.
func NewResponseGenerator(client driven.CompletionClient, registry *tools.Registry, maxTokens int) *ResponseGenerator {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &ResponseGenerator{
		client:    client,
		registry:  registry,
		maxTokens: maxTokens,
	}
}

// Generate answers one query. history, when non-empty, is the rendered
// recent conversation injected into the system prompt.
func (g *ResponseGenerator) Generate(ctx context.Context, query, history string) (*GeneratorResult, error) {
	system := systemPrompt
	if history != "" {
		system += "\n\nPrevious conversation:\n" + history
	}

	messages := []driven.Message{
		{Role: driven.RoleUser, Content: []driven.ContentBlock{driven.TextBlock(query)}},
	}

	logger.Section("Generate")
	completion, err := g.client.Complete(ctx, driven.CompletionRequest{
		System:      system,
		Messages:    messages,
		Tools:       g.registry.Definitions(),
		Temperature: temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	if completion.StopReason != driven.StopReasonToolUse {
		logger.Debug("direct answer, no tool round")
		return &GeneratorResult{Answer: completion.Text()}, nil
	}

	// Tool round. Invocations run sequentially in model order; a single
	// failed invocation becomes its result text so the model can react
	// instead of the whole turn aborting.
	var sources []domain.Source
	var resultBlocks []driven.ContentBlock
	for _, use := range completion.ToolUses() {
		logger.Debug("tool call: %s %v", use.Name, use.Input)
		result, err := g.registry.Execute(ctx, use.Name, use.Input)
		text := result.Text
		if err != nil {
			text = fmt.Sprintf("Tool execution failed: %v", err)
		}
		sources = append(sources, result.Sources...)
		resultBlocks = append(resultBlocks, driven.ToolResultBlock(use.ID, text))
	}

	messages = append(messages,
		driven.Message{Role: driven.RoleAssistant, Content: completion.Content},
		driven.Message{Role: driven.RoleUser, Content: resultBlocks},
	)

	// Synthesis call offers no tools, forcing a terminal answer.
	final, err := g.client.Complete(ctx, driven.CompletionRequest{
		System:      system,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	return &GeneratorResult{Answer: final.Text(), Sources: sources}, nil
}
