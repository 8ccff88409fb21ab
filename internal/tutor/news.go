package tutor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhisek/academy/internal/cache"
	"github.com/abhisek/academy/internal/catalog"
)

// NewsTTL is how long a news digest is reused.
const NewsTTL = 6 * time.Hour

// NewsText joins the catalog's news summaries into the text sent for
// summarising.
func NewsText(items []catalog.NewsItem) string {
	parts := make([]string, 0, len(items))
	for _, n := range items {
		parts = append(parts, n.Summary)
	}
	return strings.Join(parts, " ")
}

// NewsDigest returns a cached digest of text, summarising on a miss. Only
// successful summaries are cached; the fallback never is. A nil cache
// always summarises.
func (c *Client) NewsDigest(ctx context.Context, cc cache.Cache, text string) (string, error) {
	key := cache.Key("news", text)
	if cc != nil {
		v, err := cc.Get(ctx, key)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			c.log.Warn("read news cache", "error", err)
		}
	}

	digest, err := c.SummarizeNews(ctx, text)
	if err != nil {
		return digest, err
	}
	if cc != nil {
		if err := cc.Set(ctx, key, digest, NewsTTL); err != nil {
			c.log.Warn("write news cache", "error", err)
		}
	}
	return digest, nil
}
