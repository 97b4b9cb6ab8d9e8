package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/nmehta/dpdpacheck/internal/model"
)

// AnthropicProvider implements Provider on Anthropic's Messages API.
type AnthropicProvider struct {
	client *anthropic.Client
	config Config
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(config Config) (*AnthropicProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	var opts []anthropic.ClientOption
	if config.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(config.BaseURL))
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(config.APIKey, opts...),
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// MatchSentence asks the model which obligations the sentence states.
func (p *AnthropicProvider) MatchSentence(ctx context.Context, sentence string, cl model.Checklist) ([]model.MatchClaim, error) {
	llmModel := p.config.Model
	if llmModel == "" {
		llmModel = string(anthropic.ModelClaude3Dot5HaikuLatest)
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	temperature := float32(0)
	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(llmModel),
		System: systemPrompt,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(BuildPrompt(sentence, cl)),
		},
		MaxTokens:   p.config.MaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, &CallError{Kind: ErrCommunication, Err: err}
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return nil, &CallError{Kind: ErrFormat, Err: fmt.Errorf("no text content in response")}
	}

	raw := strings.TrimSpace(*resp.Content[0].Text)
	return ParseResponse(raw, sentence, cl)
}
