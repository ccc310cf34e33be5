package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"slidegen/prompt"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"

	samplingTemperature = 0.7
)

// OpenAI is the text-only chat-completion backend. The instruction
// template rides as the system message, the extracted context as the
// user message, and the response format is forced to a JSON object.
type OpenAI struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewOpenAI creates the chat-completion backend. Retries are disabled:
// the contract is exactly one outbound call per inbound request.
func NewOpenAI(apiKey, model, baseURL string, timeout time.Duration, logger *zap.Logger) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("missing openai api key")
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAI{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (o *OpenAI) GenerateCompletion(ctx context.Context, payload prompt.Payload) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Temperature: openai.Float(samplingTemperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(payload.Instruction),
			openai.UserMessage(payload.Context),
		},
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			// Keep the raw upstream body in the message so callers can
			// see what the provider actually said.
			return "", fmt.Errorf("chat completion failed with status %d: %s",
				apierr.StatusCode, apierr.RawJSON())
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		o.logger.Warn("chat completion returned no choices", zap.String("model", o.model))
		return "{}", nil
	}
	return resp.Choices[0].Message.Content, nil
}
