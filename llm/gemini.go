package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	genai "google.golang.org/genai"

	"slidegen/prompt"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini is the multimodal backend. It sends the instruction and
// context as one text part, optionally followed by an inline image
// blob, and returns the first candidate's text.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGemini creates the Gemini backend. baseURL overrides the API
// endpoint and is meant for gateways and tests; leave empty for the
// public API.
func NewGemini(ctx context.Context, apiKey, model, baseURL string, timeout time.Duration, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing gemini api key")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (g *Gemini) GenerateCompletion(ctx context.Context, payload prompt.Payload) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	parts := []*genai.Part{
		{Text: payload.Instruction + "\n\nINPUT CONTEXT: " + payload.Context},
	}
	if payload.Image != nil {
		data, err := base64.StdEncoding.DecodeString(payload.Image.Base64Data)
		if err != nil {
			return "", fmt.Errorf("decode inline image: %w", err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: payload.Image.MIMEType,
				Data:     data,
			},
		})
	}

	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{Role: genai.RoleUser, Parts: parts},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini api call failed: %w", err)
	}

	text := res.Text()
	if text == "" {
		// Empty candidates still sanitize to a valid body downstream.
		g.logger.Warn("gemini returned no completion text", zap.String("model", g.model))
		return "{}", nil
	}
	return text, nil
}
