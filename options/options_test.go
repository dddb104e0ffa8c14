package options

import (
	"context"
	"testing"

	"github.com/fieldlab/docchunk/types"
)

type fakeProvider struct{}

func (fakeProvider) EmbedText(text string) ([]float32, error) { return []float32{1}, nil }
func (fakeProvider) Close()                                   {}

type fakeCounter struct{}

func (fakeCounter) CountTokens(ctx context.Context, text string) (int, error) { return 0, nil }

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Comparator == nil {
		t.Error("expected default comparator")
	}
	if cfg.Logger == nil {
		t.Error("expected default logger")
	}
	if cfg.Store != nil || cfg.Provider != nil || cfg.Chunker != nil {
		t.Error("store, provider, and chunker should start unset")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("missing store", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Provider = fakeProvider{}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing store")
		}
	})

	t.Run("missing provider", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithLRUStore(8)); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing provider")
		}
	})

	t.Run("complete", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithLRUStore(8), WithProvider(fakeProvider{})); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestOption_Errors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "nil store", opt: WithStore(nil)},
		{name: "nil provider", opt: WithProvider(nil)},
		{name: "nil chunker", opt: WithChunker(nil)},
		{name: "nil comparator", opt: WithComparator(nil)},
		{name: "nil logger", opt: WithLogger(nil)},
		{name: "nil counter", opt: WithTokenBudget(nil, 100)},
		{name: "zero budget", opt: WithTokenBudget(fakeCounter{}, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			if err := cfg.Apply(tt.opt); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWithTokenBudget(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Apply(WithTokenBudget(fakeCounter{}, 4096)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if cfg.Counter == nil {
		t.Error("counter not set")
	}
	if cfg.TokenBudget != 4096 {
		t.Errorf("TokenBudget = %d, want 4096", cfg.TokenBudget)
	}
}

var _ types.TokenCounter = fakeCounter{}
var _ types.EmbeddingProvider = fakeProvider{}
