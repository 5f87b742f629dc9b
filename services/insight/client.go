// Package insight produces the AI flavor copy of the store: the welcome
// greeting, product insights and the chat widget. Every call degrades to a
// fixed string; callers never see an error from the backend.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fixed strings returned in place of generated text.
const (
	GreetingPending  = "Syncing with the grid..."
	GreetingOffline  = "Welcome to the Void."
	GreetingEmpty    = "Welcome, Traveler of the Grid."
	GreetingFailed   = "Welcome to NEON-X."
	InsightLoading   = "DECRYPTING DATA STREAMS..."
	InsightOffline   = "AI System Offline. Please check credentials."
	InsightEmpty     = "No data received from the mesh network."
	InsightFailed    = "Error: Uplink connection failed. Redirecting signals..."
	greetingPrompt   = "Generate a short, catchy, 1-sentence cyberpunk welcome greeting for a new user entering the store 'NEON-X'."
	insightPromptFmt = "You are a futuristic Cyber-Advisor for a high-tech store called NEON-X. Provide a 2-sentence \"hacker-style\" endorsement or warning about the product: %s. Context: %s. Keep it mysterious and high-tech."
)

// insightParams are the generation parameters for product insights.
var insightParams = &Params{
	Temperature:     ptr[float32](0.9),
	TopP:            ptr[float32](1),
	MaxOutputTokens: 100,
}

// Client issues single-attempt requests against a Generator. A nil
// Generator means no credentials are configured.
type Client struct {
	gen Generator
	log logrus.FieldLogger
}

func NewClient(gen Generator, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		gen: gen,
		log: log.WithField("component", "insight"),
	}
}

// Online reports whether a backend is configured.
func (c *Client) Online() bool {
	return c.gen != nil
}

// Greeting returns a short welcome line.
func (c *Client) Greeting(ctx context.Context) string {
	if c.gen == nil {
		return GreetingOffline
	}
	text, err := c.gen.Generate(ctx, greetingPrompt, nil)
	if err != nil {
		c.log.WithError(err).Warn("greeting request failed")
		return GreetingFailed
	}
	if strings.TrimSpace(text) == "" {
		return GreetingEmpty
	}
	return text
}

// ProductInsight returns a short in-character blurb about a product.
func (c *Client) ProductInsight(ctx context.Context, name, description string) string {
	if c.gen == nil {
		return InsightOffline
	}
	prompt := fmt.Sprintf(insightPromptFmt, name, description)
	text, err := c.gen.Generate(ctx, prompt, insightParams)
	if err != nil {
		c.log.WithError(err).WithField("product", name).Warn("insight request failed")
		return InsightFailed
	}
	if strings.TrimSpace(text) == "" {
		return InsightEmpty
	}
	return text
}
