package driving

import (
	"context"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// AnswerResult is the outcome of one answered query.
type AnswerResult struct {
	// Answer is the final natural-language answer.
	Answer string

	// Sources lists where retrieved content came from. Empty when the
	// model answered without searching.
	Sources []domain.Source

	// SessionID identifies the conversation, newly created when the
	// query arrived without one.
	SessionID string
}

// AssistantService answers natural-language questions over the
// ingested course corpus.
type AssistantService interface {
	// Answer processes one query with optional session context.
	Answer(ctx context.Context, query, sessionID string) (*AnswerResult, error)
}
