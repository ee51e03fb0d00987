package pipeline

import "context"

// LLMClient abstracts the hosted model so implementations can be swapped or
// mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the base configuration handed to concrete clients.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
