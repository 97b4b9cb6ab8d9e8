package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/nmehta/dpdpacheck/internal/model"
)

// OpenAIProvider implements Provider on OpenAI's Chat Completions API.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// MatchSentence asks the model which obligations the sentence states.
// Temperature is pinned to 0 to minimize run-to-run variance.
func (p *OpenAIProvider) MatchSentence(ctx context.Context, sentence string, cl model.Checklist) ([]model.MatchClaim, error) {
	llmModel := p.config.Model
	if llmModel == "" {
		llmModel = openai.GPT4oMini
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: llmModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(sentence, cl)},
		},
		MaxTokens:   p.config.MaxTokens,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, &CallError{Kind: ErrCommunication, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &CallError{Kind: ErrFormat, Err: fmt.Errorf("no choices in response")}
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	return ParseResponse(raw, sentence, cl)
}
