package carehub

import (
	"bytes"
	"context"
	"sync"

	"github.com/a-h/templ"

	"github.com/eringen/carehub/content"
)

// ArticleCache memoizes processed post bodies by slug. The catalog never
// changes while the process runs, so entries never expire.
type ArticleCache struct {
	mu       sync.RWMutex
	articles map[string]Article
	bridge   func(BridgeCTA) templ.Component
}

// NewArticleCache creates an ArticleCache. bridge renders the call-to-action
// spliced into each body; nil leaves bodies without one.
func NewArticleCache(bridge func(BridgeCTA) templ.Component) *ArticleCache {
	return &ArticleCache{
		articles: make(map[string]Article),
		bridge:   bridge,
	}
}

// Article returns the processed body of post, computing it on first use.
// It tries a read lock first; only takes a write lock on a miss.
func (c *ArticleCache) Article(post content.BlogPost, cta BridgeCTA) Article {
	c.mu.RLock()
	a, ok := c.articles[post.Slug]
	c.mu.RUnlock()
	if ok {
		return a
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.articles[post.Slug]; ok {
		return a
	}
	a = ProcessArticle(post.BodyHTML, c.renderBridge(cta))
	c.articles[post.Slug] = a
	return a
}

// Len reports how many bodies are cached.
func (c *ArticleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.articles)
}

func (c *ArticleCache) renderBridge(cta BridgeCTA) string {
	if c.bridge == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := c.bridge(cta).Render(context.Background(), &buf); err != nil {
		return ""
	}
	return buf.String()
}
