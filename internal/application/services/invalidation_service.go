package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/invalidation"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
)

// InvalidationService fans an authorized "data changed" event out to the page
// cache and the product catalog cache. The two legs run as an explicit
// two-step sequence with independently reported outcomes; there is no
// rollback of the first leg when the second fails.
type InvalidationService struct {
	pages   ports.PageCache
	catalog ports.CatalogService
	logger  *logrus.Logger
}

func NewInvalidationService(pages ports.PageCache, catalog ports.CatalogService, logger *logrus.Logger) ports.InvalidationService {
	return &InvalidationService{
		pages:   pages,
		catalog: catalog,
		logger:  logger,
	}
}

func (s *InvalidationService) Invalidate(ctx context.Context, path string) (*invalidation.Result, error) {
	result := &invalidation.Result{
		Path:      path,
		Timestamp: time.Now().UTC(),
	}
	s.logState(path, invalidation.StateReceived)
	s.logState(path, invalidation.StateAuthorized)
	s.logState(path, invalidation.StateFanningOut)

	if err := s.pages.Revalidate(ctx, path); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"path": path}).WithError(err).Error("page cache revalidation failed")
		}
	} else {
		result.Revalidated = true
	}

	if _, err := s.catalog.RefreshProducts(ctx); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"path": path}).WithError(err).Error("product cache refresh failed during fan-out")
		}
	} else {
		result.ProductsRefreshed = true
	}

	s.logState(path, invalidation.StateDone)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"path":               path,
			"revalidated":        result.Revalidated,
			"products_refreshed": result.ProductsRefreshed,
		}).Info("invalidation fan-out completed")
	}
	return result, nil
}

func (s *InvalidationService) logState(path string, state invalidation.State) {
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"path": path, "state": state}).Debug("invalidation state")
	}
}
