package driven

import "context"

// SessionStore provides bounded, keyed conversation history.
// Sessions live for the lifetime of the process.
type SessionStore interface {
	// Create allocates a new session and returns its opaque id.
	Create(ctx context.Context) (string, error)

	// History renders the retained exchanges as alternating
	// "User: …" / "Assistant: …" lines, oldest first, for direct
	// injection into a prompt. Unknown ids yield an empty string,
	// not an error.
	History(ctx context.Context, sessionID string) (string, error)

	// AddExchange appends one completed exchange and evicts the oldest
	// entries beyond the configured history bound.
	AddExchange(ctx context.Context, sessionID, query, answer string) error
}
