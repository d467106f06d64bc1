package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/core/ports"
)

// PageCache implements ports.PageCache on Redis. Rendered pages are stored by
// the edge layer under prefix:path; revalidation drops the entry so the next
// request re-renders. A missing entry is not an error.
type PageCache struct {
	r      redis.Cmdable
	prefix string
	logger *logrus.Logger
}

func NewPageCache(r redis.Cmdable, prefix string, logger *logrus.Logger) *PageCache {
	return &PageCache{r: r, prefix: prefix, logger: logger}
}

func (p *PageCache) key(path string) string {
	if p.prefix == "" {
		return path
	}
	return p.prefix + ":" + path
}

// Revalidate implements ports.PageCache.
func (p *PageCache) Revalidate(ctx context.Context, path string) error {
	if err := p.r.Del(ctx, p.key(path)).Err(); err != nil {
		return fmt.Errorf("failed to revalidate page %s: %w", path, err)
	}
	if p.logger != nil {
		p.logger.WithFields(logrus.Fields{"path": path}).Debug("page cache entry dropped")
	}
	return nil
}

var _ ports.PageCache = (*PageCache)(nil)
