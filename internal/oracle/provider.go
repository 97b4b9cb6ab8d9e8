// Package oracle adapts external text-understanding services to the
// checklist-matching engine. The oracle decides whether one policy sentence
// explicitly states one obligation; everything downstream (validation,
// aggregation, classification) is deterministic and local.
package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/nmehta/dpdpacheck/internal/model"
)

// Provider is a single external oracle. One MatchSentence call covers one
// (sentence, section) pair and returns the obligations that sentence is
// claimed to satisfy. An empty result is the common case.
type Provider interface {
	// Name returns the provider name
	Name() string

	// MatchSentence asks the oracle which checklist obligations the sentence
	// explicitly states. Failures are reported as *CallError.
	MatchSentence(ctx context.Context, sentence string, cl model.Checklist) ([]model.MatchClaim, error)
}

// ErrKind distinguishes oracle failure modes. Both kinds are recoverable per
// call: the pair contributes zero claims and the run continues.
type ErrKind string

const (
	// ErrCommunication covers network errors and timeouts talking to the service
	ErrCommunication ErrKind = "communication"

	// ErrFormat covers responses that are not valid structured data
	ErrFormat ErrKind = "format"
)

// CallError is the tagged failure outcome of one oracle call.
type CallError struct {
	Kind ErrKind
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("oracle %s error: %v", e.Kind, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth another attempt.
// Format errors are deterministic for a pinned-temperature oracle, so only
// communication failures retry.
func (e *CallError) Retryable() bool {
	return e.Kind == ErrCommunication
}

// Config holds oracle provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string

	// Timeout per call
	Timeout time.Duration

	// MaxRetries bounds attempts per call; backoff doubles between attempts
	MaxRetries int

	// MaxTokens limits the response length
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		MaxTokens:  1024,
	}
}

// ConfigFromModel converts the tool-level oracle settings.
func ConfigFromModel(mc model.OracleConfig) Config {
	cfg := DefaultConfig()
	if mc.Provider != "" {
		cfg.Provider = mc.Provider
	}
	cfg.Model = mc.Model
	cfg.APIKey = mc.APIKey
	cfg.BaseURL = mc.BaseURL
	if mc.Timeout > 0 {
		cfg.Timeout = mc.Timeout
	}
	if mc.MaxRetries > 0 {
		cfg.MaxRetries = mc.MaxRetries
	}
	return cfg
}
