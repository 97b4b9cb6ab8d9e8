package oracle

import (
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantErr  bool
	}{
		{
			name:     "openai",
			config:   Config{Provider: "openai", APIKey: "sk-test"},
			wantName: "openai",
		},
		{
			name:     "anthropic",
			config:   Config{Provider: "anthropic", APIKey: "sk-ant-test"},
			wantName: "anthropic",
		},
		{
			name:     "claude alias",
			config:   Config{Provider: "claude", APIKey: "sk-ant-test"},
			wantName: "anthropic",
		},
		{
			name:     "ollama needs no key",
			config:   Config{Provider: "ollama"},
			wantName: "ollama",
		},
		{
			name:    "openai without key",
			config:  Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "delphi"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestNewProvider_UnknownErrorListsSupported(t *testing.T) {
	_, err := NewProvider(Config{Provider: "delphi"})
	if err == nil || !strings.Contains(err.Error(), "openai") {
		t.Errorf("error should list supported providers: %v", err)
	}
}
