package insight

import "context"

// Params are optional generation parameters. Nil fields leave the service
// default in place.
type Params struct {
	Temperature     *float32
	TopP            *float32
	MaxOutputTokens int32
}

// Generator is the generative text backend.
type Generator interface {
	// Generate sends a single prompt and returns the reply text.
	Generate(ctx context.Context, prompt string, params *Params) (string, error)
	// NewConversation opens a conversational session primed with instruction.
	NewConversation(ctx context.Context, instruction string) (Conversation, error)
}

// Conversation is a persistent chat context on the backend.
type Conversation interface {
	Send(ctx context.Context, message string) (string, error)
}

func ptr[T any](v T) *T {
	return &v
}
