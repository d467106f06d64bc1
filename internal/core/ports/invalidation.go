package ports

import (
	"context"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/invalidation"
)

// PageCache abstracts the rendered-page cache layer in front of the
// storefront. Revalidate drops the cached page for a path so the next request
// re-renders it. Absence of a cached page is not an error.
type PageCache interface {
	Revalidate(ctx context.Context, path string) error
}

// InvalidationService fans one authorized "data changed" event out to the
// page cache and the product catalog cache. The two legs are reported
// independently; a failure in one never aborts the other.
type InvalidationService interface {
	Invalidate(ctx context.Context, path string) (*invalidation.Result, error)
}
