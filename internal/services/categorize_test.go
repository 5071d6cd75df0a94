package services

import (
	"nav-eval-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeModel(t *testing.T) {
	tests := []struct {
		model string
		want  domain.ModelProfile
	}{
		{"o3-2025-04-16", domain.ModelProfile{Family: "o-series", Company: "openai", Thinking: true}},
		{"o4-mini-2025-04-16", domain.ModelProfile{Family: "o-series", Company: "openai", Thinking: true}},
		{"gpt-4.1-2025-04-14", domain.ModelProfile{Family: "gpt", Company: "openai", Thinking: false}},
		{"claude-opus-4-20250514--thinking", domain.ModelProfile{Family: "claude", Company: "anthropic", Thinking: true}},
		{"claude-sonnet-4-20250514", domain.ModelProfile{Family: "claude", Company: "anthropic", Thinking: false}},
		{"grok-4", domain.ModelProfile{Family: "grok", Company: "x-ai", Thinking: true}},
		{"gemini-2_5-pro", domain.ModelProfile{Family: "gemini", Company: "google", Thinking: true}},
		{"deepseek-r1", domain.ModelProfile{Family: "deepseek", Company: "deepseek", Thinking: true}},
		{"deepseek-chat", domain.ModelProfile{Family: "deepseek", Company: "deepseek", Thinking: false}},
		{"Llama-4-Maverick", domain.ModelProfile{Family: "llama", Company: "meta", Thinking: false}},
		{"kimi-k2", domain.ModelProfile{Family: "kimi", Company: "moonshot", Thinking: false}},
		{"mistral-large", domain.ModelProfile{Family: "other", Company: "other", Thinking: false}},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeModel(tt.model))
		})
	}
}
