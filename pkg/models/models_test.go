package models

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

type countingLLM struct {
	calls int
	reply string
	err   error
}

func (c *countingLLM) Generate(_ context.Context, prompt string, _ GenerationConfig) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.reply + prompt, nil
}

func TestNewDummyLLMDefaultPrefix(t *testing.T) {
	llm := NewDummyLLM("")
	resp, err := llm.Generate(context.Background(), "line1\nline2", GenerationConfig{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp != "Dummy response: line2" {
		t.Fatalf("unexpected response: %q", resp)
	}
}

func TestDummyLLMSkipsRoleMarkers(t *testing.T) {
	llm := NewDummyLLM("Prefix:")
	resp, err := llm.Generate(context.Background(), "system\n\nUser: hi there\nAssistant:", GenerationConfig{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp != "Prefix: hi there" {
		t.Fatalf("unexpected response: %q", resp)
	}
}

func TestDummyLLMHandlesEmptyPrompt(t *testing.T) {
	llm := NewDummyLLM("Prefix")
	resp, err := llm.Generate(context.Background(), "\n\n\n", GenerationConfig{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp != "Prefix <empty prompt>" {
		t.Fatalf("unexpected response: %q", resp)
	}
}

func TestNewLLMProviderErrorsOnUnknownProvider(t *testing.T) {
	if _, err := NewLLMProvider(context.Background(), ProviderConfig{Provider: "unknown", Model: "model"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNewLLMProviderDummy(t *testing.T) {
	llm, err := NewLLMProvider(context.Background(), ProviderConfig{Provider: "dummy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := llm.(*DummyLLM); !ok {
		t.Fatalf("expected *DummyLLM, got %T", llm)
	}
}

func TestNewGeminiLLMRequiresKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := NewGeminiLLM(context.Background(), "gemini-2.0-flash", ""); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestParseSafetyThreshold(t *testing.T) {
	got, err := ParseSafetyThreshold("block_only_high")
	if err != nil || got != BlockOnlyHigh {
		t.Fatalf("expected BLOCK_ONLY_HIGH, got %q (%v)", got, err)
	}
	if got, _ := ParseSafetyThreshold(""); got != BlockMediumAndAbove {
		t.Fatalf("expected default threshold, got %q", got)
	}
	if _, err := ParseSafetyThreshold("sometimes"); err == nil {
		t.Fatalf("expected error for unknown threshold")
	}
}

func TestGeminiSafetySettingsCoverAllCategories(t *testing.T) {
	settings := geminiSafetySettings(BlockMediumAndAbove)
	if len(settings) != 4 {
		t.Fatalf("expected 4 safety settings, got %d", len(settings))
	}
}

func TestCachedLLMHitsCache(t *testing.T) {
	inner := &countingLLM{reply: "ok:"}
	llm := NewCachedLLM(inner, 8, time.Minute, "")
	cfg := DefaultGenerationConfig(300)

	for i := 0; i < 3; i++ {
		out, err := llm.Generate(context.Background(), "p", cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "ok:p" {
			t.Fatalf("unexpected output %q", out)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", inner.calls)
	}

	if _, err := llm.Generate(context.Background(), "p", DefaultGenerationConfig(500)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("different config should miss the cache, got %d calls", inner.calls)
	}
}

func TestCachedLLMDoesNotCacheErrors(t *testing.T) {
	inner := &countingLLM{err: errors.New("boom")}
	llm := NewCachedLLM(inner, 8, time.Minute, "")

	for i := 0; i < 2; i++ {
		if _, err := llm.Generate(context.Background(), "p", GenerationConfig{}); err == nil {
			t.Fatalf("expected error")
		}
	}
	if inner.calls != 2 {
		t.Fatalf("expected errors to bypass the cache, got %d calls", inner.calls)
	}
}

type scriptedLLM struct {
	replies []string
	calls   int
}

func (s *scriptedLLM) Generate(context.Context, string, GenerationConfig) (string, error) {
	reply := s.replies[len(s.replies)-1]
	if s.calls < len(s.replies) {
		reply = s.replies[s.calls]
	}
	s.calls++
	return reply, nil
}

func TestCachedLLMDoesNotCacheBlankReplies(t *testing.T) {
	inner := &scriptedLLM{replies: []string{"   ", "real answer"}}
	llm := NewCachedLLM(inner, 8, time.Minute, "")

	first, err := llm.Generate(context.Background(), "p", GenerationConfig{})
	if err != nil || first != "   " {
		t.Fatalf("unexpected first reply %q (err %v)", first, err)
	}
	second, err := llm.Generate(context.Background(), "p", GenerationConfig{})
	if err != nil || second != "real answer" {
		t.Fatalf("expected blank reply to bypass the cache, got %q (err %v)", second, err)
	}
	third, _ := llm.Generate(context.Background(), "p", GenerationConfig{})
	if third != "real answer" || inner.calls != 2 {
		t.Fatalf("expected non-blank reply to be cached, got %q after %d calls", third, inner.calls)
	}
}

func TestCachedLLMPersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	inner := &countingLLM{reply: "v:"}

	first := NewCachedLLM(inner, 8, time.Hour, path)
	if _, err := first.Generate(context.Background(), "q", GenerationConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := NewCachedLLM(inner, 8, time.Hour, path)
	out, err := second.Generate(context.Background(), "q", GenerationConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "v:q" || inner.calls != 1 {
		t.Fatalf("expected cached answer from disk, got %q after %d calls", out, inner.calls)
	}
}

func TestWithCacheDisabled(t *testing.T) {
	inner := &countingLLM{}
	if got := WithCache(inner, 0, time.Minute, ""); got != Agent(inner) {
		t.Fatalf("expected agent to be returned unchanged")
	}
}
