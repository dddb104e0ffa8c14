package openai

import (
	"testing"
	"time"
)

func TestNewProvider_Defaults(t *testing.T) {
	p, err := NewProvider(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	if p.model != string(DefaultModel) {
		t.Errorf("model = %q, want %q", p.model, DefaultModel)
	}
	if p.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", p.timeout, DefaultTimeout)
	}
	if p.dimensions != 0 {
		t.Errorf("dimensions = %d, want 0 (native)", p.dimensions)
	}
}

func TestNewProvider_ConfigOverrides(t *testing.T) {
	p, err := NewProvider(Config{
		APIKey:     "test-key",
		Model:      "text-embedding-3-large",
		Dimensions: 256,
		Timeout:    5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	if p.model != "text-embedding-3-large" {
		t.Errorf("model = %q, want text-embedding-3-large", p.model)
	}
	if p.dimensions != 256 {
		t.Errorf("dimensions = %d, want 256", p.dimensions)
	}
	if p.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", p.timeout)
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewProvider(Config{}); err == nil {
		t.Error("expected error when no API key is available")
	}
}

func TestNewProvider_KeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	if _, err := NewProvider(Config{}); err != nil {
		t.Errorf("NewProvider() error = %v, want key picked up from environment", err)
	}
}
