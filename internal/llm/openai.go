package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ajshul/focusflow/internal/model"
)

// OpenAI invokes an OpenAI-compatible chat-completions endpoint. It works
// against api.openai.com as well as local servers (Ollama, llama.cpp) that
// speak the same protocol.
type OpenAI struct {
	client      *resty.Client
	model       string
	temperature float64
}

var _ Invoker = (*OpenAI)(nil)

// OpenAIConfig carries the adapter settings.
type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// NewOpenAI builds the adapter. APIKey may be empty for local endpoints.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	if cfg.APIKey != "" {
		c.SetAuthToken(cfg.APIKey)
	}
	return &OpenAI{client: c, model: cfg.Model, temperature: cfg.Temperature}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (o *OpenAI) Invoke(ctx context.Context, systemPrompt string, prior []*model.Message, userText string) (string, error) {
	msgs := make([]chatMessage, 0, len(prior)+2)
	msgs = append(msgs, chatMessage{Role: "system", Content: systemPrompt})
	for _, m := range prior {
		role := "assistant"
		if m.Sender == model.SenderUser {
			role = "user"
		}
		msgs = append(msgs, chatMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: userText})

	var out chatResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(chatRequest{Model: o.model, Messages: msgs, Temperature: o.temperature}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrModelUnavailable, err)
	}
	if resp.IsError() {
		detail := resp.Status()
		if out.Error != nil && out.Error.Message != "" {
			detail = out.Error.Message
		}
		return "", fmt.Errorf("%w: %s", model.ErrModelUnavailable, detail)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", model.ErrModelUnavailable)
	}
	return out.Choices[0].Message.Content, nil
}
