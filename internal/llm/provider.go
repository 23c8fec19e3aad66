package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set the returned Content has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider talks to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System string

	// Messages holds the conversation. Question generation sends one
	// user message per call.
	Messages []Message

	// Schema, when set, asks the provider for JSON matching the definition
	// using its native structured output support.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default in place.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON document a caller expects back.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "mcq-batch". It doubles as the
	// cache key for the compiled validator.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output for a Request.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
