package models

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Protocol-Lattice/tiered-agent/pkg/cache"
)

// CachedLLM wraps an Agent and caches successful completions per prompt and config.
type CachedLLM struct {
	Agent    Agent
	Cache    *cache.LRU[string]
	FilePath string
}

// NewCachedLLM creates a new CachedLLM wrapper. A non-empty filePath persists the cache between runs.
func NewCachedLLM(agent Agent, size int, ttl time.Duration, filePath string) *CachedLLM {
	c := &CachedLLM{
		Agent:    agent,
		Cache:    cache.NewLRU[string](size, ttl),
		FilePath: filePath,
	}
	if filePath != "" {
		c.load()
	}
	return c
}

func (c *CachedLLM) load() {
	f, err := os.Open(c.FilePath)
	if err != nil {
		return // ignore errors (file not found, etc)
	}
	defer f.Close()

	var dump map[string]cache.Entry[string]
	if err := json.NewDecoder(f).Decode(&dump); err == nil {
		c.Cache.Restore(dump)
	}
}

func (c *CachedLLM) save() error {
	if c.FilePath == "" {
		return nil
	}

	// Atomic write: write to temp, then rename
	tmp := c.FilePath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(c.Cache.Dump()); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, c.FilePath)
}

// Generate checks the cache before calling the underlying agent. Failures and blank replies are never cached.
func (c *CachedLLM) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	key := cacheKey(prompt, cfg)
	if val, ok := c.Cache.Get(key); ok {
		return val, nil
	}

	res, err := c.Agent.Generate(ctx, prompt, cfg)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(res) == "" {
		return res, nil
	}

	c.Cache.Set(key, res)
	_ = c.save() // persistence is best effort
	return res, nil
}

func cacheKey(prompt string, cfg GenerationConfig) string {
	return cache.HashKey(
		prompt,
		fmt.Sprintf("t=%g k=%d p=%g max=%d safety=%s", cfg.Temperature, cfg.TopK, cfg.TopP, cfg.MaxOutputTokens, cfg.Safety),
		strings.Join(cfg.StopSequences, "\x1f"),
	)
}

// WithCache wraps agent when size is positive and returns it unchanged otherwise.
func WithCache(agent Agent, size int, ttl time.Duration, filePath string) Agent {
	if size <= 0 {
		return agent
	}
	if ttl <= 0 {
		ttl = 300 * time.Second // default 5 mins
	}
	return NewCachedLLM(agent, size, ttl, filePath)
}

var _ Agent = (*CachedLLM)(nil)
