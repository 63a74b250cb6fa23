package crew

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Message is one turn of an LLM conversation.
type Message struct {
	Role    string // "system", "user" or "assistant"
	Content string
}

// LLM abstracts the chat model so crews can be tested without network calls.
type LLM interface {
	Complete(ctx context.Context, msgs []Message) (string, error)
}

// LLMSettings configures the OpenAI-backed client.
type LLMSettings struct {
	Model   string
	APIKey  string
	BaseURL string
}

// OpenAILLM implements LLM using the official openai-go SDK (chat completions).
type OpenAILLM struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAILLM validates the settings and builds an OpenAI-backed LLM.
func NewOpenAILLM(cfg LLMSettings) (*OpenAILLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("crew: openai api key missing")
	}
	if cfg.Model == "" {
		return nil, errors.New("crew: llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{model: cfg.Model, opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, msgs []Message) (string, error) {
	client := openai.NewClient(o.opts...)

	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case "system":
			params = append(params, openai.SystemMessage(m.Content))
		case "assistant":
			params = append(params, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: params,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("crew: openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
