package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage("first"), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		TextResponse("second"),
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "a"}}})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Text())
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.Equal(t, "end", resp.StopReason)

	resp, err = mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Text())

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)

	calls := mock.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "sys", calls[0].System)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(TextResponse(`{"level":"Beginner"}`))
	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestResponseText(t *testing.T) {
	var nilResp *Response
	assert.Equal(t, "", nilResp.Text())
	assert.Equal(t, "hello", (&Response{Content: json.RawMessage("  hello\n")}).Text())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "tutor-chat", PurposeFrom(WithPurpose(ctx, "tutor-chat")))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk"}}, false},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// clearLLMEnv blanks every variable the config layer reads.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ACADEMY_LLM_PROVIDER",
		"ACADEMY_GEMINI_API_KEY", "ACADEMY_GEMINI_MODEL",
		"ACADEMY_OPENAI_API_KEY", "ACADEMY_OPENAI_MODEL", "ACADEMY_OPENAI_BASE_URL",
		"ACADEMY_ANTHROPIC_API_KEY", "ACADEMY_ANTHROPIC_MODEL",
		"ACADEMY_OPENROUTER_API_KEY", "ACADEMY_OPENROUTER_MODEL",
		"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ACADEMY_LLM_PROVIDER", "openai")
	t.Setenv("ACADEMY_OPENAI_API_KEY", "sk-env")
	t.Setenv("ACADEMY_OPENAI_BASE_URL", "http://localhost:8080/v1")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestDiscoverConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		want     string
		wantOK   bool
		checkKey func(Config) string
	}{
		{"nothing set", nil, "", false, nil},
		{"gemini wins", map[string]string{"GEMINI_API_KEY": "g", "OPENAI_API_KEY": "o"}, "gemini", true, func(c Config) string { return c.Gemini.APIKey }},
		{"generic key is gemini", map[string]string{"API_KEY": "k"}, "gemini", true, func(c Config) string { return c.Gemini.APIKey }},
		{"openai before anthropic", map[string]string{"OPENAI_API_KEY": "o", "ANTHROPIC_API_KEY": "a"}, "openai", true, func(c Config) string { return c.OpenAI.APIKey }},
		{"openrouter last", map[string]string{"OPENROUTER_API_KEY": "r"}, "openrouter", true, func(c Config) string { return c.OpenRouter.APIKey }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLLMEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, ok := DiscoverConfig()
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, cfg.Provider)
			if tt.checkKey != nil {
				assert.NotEmpty(t, tt.checkKey(cfg))
			}
		})
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("explicit provider", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("ACADEMY_LLM_PROVIDER", "anthropic")
		t.Setenv("ACADEMY_ANTHROPIC_API_KEY", "sk")
		t.Setenv("GEMINI_API_KEY", "g")

		cfg, ok := ResolveConfig()
		require.True(t, ok)
		assert.Equal(t, "anthropic", cfg.Provider)
	})

	t.Run("explicit provider missing key does not fall back", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("ACADEMY_LLM_PROVIDER", "openai")
		t.Setenv("GEMINI_API_KEY", "g")

		_, ok := ResolveConfig()
		assert.False(t, ok)
	})

	t.Run("discovery", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("API_KEY", "g")

		cfg, ok := ResolveConfig()
		require.True(t, ok)
		assert.Equal(t, "gemini", cfg.Provider)
	})
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil, nil)
	assert.True(t, errors.Is(err, ErrNotConfigured), "err = %v", err)

	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}
