package services

import (
	"nav-eval-service/internal/domain"
	"strings"
)

// Ordered name fragments; the first match wins.
var (
	familyFragments = []struct{ fragment, family string }{
		{"o3", "o-series"},
		{"o4", "o-series"},
		{"gpt", "gpt"},
		{"claude", "claude"},
		{"grok", "grok"},
		{"deepseek", "deepseek"},
		{"gemini", "gemini"},
		{"llama", "llama"},
		{"kimi", "kimi"},
	}

	companyFragments = []struct{ fragment, company string }{
		{"gpt", "openai"},
		{"o3", "openai"},
		{"o4", "openai"},
		{"claude", "anthropic"},
		{"gemini", "google"},
		{"grok", "x-ai"},
		{"deepseek", "deepseek"},
		{"kimi", "moonshot"},
		{"llama", "meta"},
	}
)

// CategorizeModel derives family, company and reasoning mode from a model name
// such as "claude-opus-4-20250514--thinking" or "o3-2025-04-16".
func CategorizeModel(model string) domain.ModelProfile {
	name := strings.ToLower(model)

	profile := domain.ModelProfile{Family: "other", Company: "other"}
	profile.Thinking = strings.Contains(name, "--thinking") ||
		strings.HasPrefix(name, "o3") || strings.HasPrefix(name, "o4") ||
		strings.Contains(name, "deepseek-r1") ||
		strings.Contains(name, "grok") ||
		strings.Contains(name, "gemini")

	for _, f := range familyFragments {
		if strings.Contains(name, f.fragment) {
			profile.Family = f.family
			break
		}
	}
	for _, c := range companyFragments {
		if strings.Contains(name, c.fragment) {
			profile.Company = c.company
			break
		}
	}

	return profile
}
