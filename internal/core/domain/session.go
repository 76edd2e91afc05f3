package domain

// Exchange is one completed (query, answer) pair retained in a
// session's conversation history.
type Exchange struct {
	Query  string
	Answer string
}
