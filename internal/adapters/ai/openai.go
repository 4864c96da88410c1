package ai

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"

	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

// Ensure OpenAIClient implements ChatClient
var _ ChatClient = (*OpenAIClient)(nil)

// OpenAIClient implements ChatClient using the official OpenAI Go SDK.
type OpenAIClient struct {
	client  openai.Client
	timeout time.Duration
	limiter *rate.Limiter
	log     *logger.Logger
}

// OpenAIConfig configures the OpenAI chat client.
type OpenAIConfig struct {
	APIKey       string
	Timeout      time.Duration // per-request timeout, default 120s
	ReqPerMinute int           // rate limit, default 60
}

// NewOpenAIClient creates a new OpenAI chat client.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "openai API key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.ReqPerMinute <= 0 {
		cfg.ReqPerMinute = 60
	}

	burst := cfg.ReqPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &OpenAIClient{
		client:  openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.ReqPerMinute)/60.0), burst),
		log:     logger.Get().With("component", "openai_chat"),
	}, nil
}

// Chat sends a chat completion request to the OpenAI API. Connectivity and
// throttling failures are classified so callers can distinguish retryable
// errors from permanent ones.
func (c *OpenAIClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter wait")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		}
	}

	start := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		classified := ClassifyError(err)
		c.log.Warnw("Chat completion failed",
			"model", req.Model,
			"duration", time.Since(start),
			"error", classified,
		)
		return nil, classified
	}

	if len(completion.Choices) == 0 {
		return nil, errors.Wrap(errors.ErrModelResponse, "completion returned no choices")
	}

	resp := &ChatResponse{
		ID:      completion.ID,
		Model:   completion.Model,
		Content: completion.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}

	c.log.Debugw("Chat completion succeeded",
		"model", resp.Model,
		"duration", time.Since(start),
		"tokens", resp.Usage.TotalTokens,
	)

	return resp, nil
}
