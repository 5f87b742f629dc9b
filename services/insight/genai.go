package insight

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// ErrMissingAPIKey is returned when a GenAI generator is built without credentials.
var ErrMissingAPIKey = errors.New("GenAI API key is required")

// GenAIGenerator talks to the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{
		client: client,
		model:  model,
	}, nil
}

// Model returns the configured model name.
func (g *GenAIGenerator) Model() string {
	return g.model
}

func (g *GenAIGenerator) Generate(ctx context.Context, prompt string, params *Params) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), generateConfig(params))
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

func (g *GenAIGenerator) NewConversation(ctx context.Context, instruction string) (Conversation, error) {
	config := &genai.GenerateContentConfig{}
	if instruction != "" {
		config.SystemInstruction = genai.NewContentFromText(instruction, genai.RoleUser)
	}
	chat, err := g.client.Chats.Create(ctx, g.model, config, nil)
	if err != nil {
		return nil, fmt.Errorf("GenAI chat create failed: %w", err)
	}
	return &genaiConversation{chat: chat}, nil
}

func generateConfig(params *Params) *genai.GenerateContentConfig {
	if params == nil {
		return nil
	}
	return &genai.GenerateContentConfig{
		Temperature:     params.Temperature,
		TopP:            params.TopP,
		MaxOutputTokens: params.MaxOutputTokens,
	}
}

type genaiConversation struct {
	chat *genai.Chat
}

func (c *genaiConversation) Send(ctx context.Context, message string) (string, error) {
	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("GenAI chat send failed: %w", err)
	}
	return resp.Text(), nil
}
