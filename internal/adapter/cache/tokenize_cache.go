package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"rulesplit/internal/domain"
	"rulesplit/internal/port"
)

// CachedTokenizer memoizes tokenizer results by input text. Entries are
// copied on the way in and out so callers cannot alter cached results.
type CachedTokenizer struct {
	tokenizer port.Tokenizer
	cache     *lru.Cache[string, domain.Sentences]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedTokenizer wraps tokenizer with an LRU of up to size entries.
func NewCachedTokenizer(tokenizer port.Tokenizer, size int) *CachedTokenizer {
	if size <= 0 {
		size = 1024
	}
	// lru.New only errors on non-positive size, which is guarded above.
	c, _ := lru.New[string, domain.Sentences](size)
	return &CachedTokenizer{
		tokenizer: tokenizer,
		cache:     c,
	}
}

func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:16])
}

// Tokenize returns the cached sentences for text, tokenizing on a miss.
func (c *CachedTokenizer) Tokenize(text string) domain.Sentences {
	key := cacheKey(text)
	if sentences, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return sentences.Clone()
	}

	c.misses.Add(1)
	sentences := c.tokenizer.Tokenize(text)
	c.cache.Add(key, sentences.Clone())
	return sentences
}

// Purge drops every cached entry.
func (c *CachedTokenizer) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached entries.
func (c *CachedTokenizer) Len() int {
	return c.cache.Len()
}

// Stats returns hit and miss counts since creation.
func (c *CachedTokenizer) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
