package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/catalog"
)

const (
	defaultPage  = 1
	defaultLimit = 20

	productsCacheControl   = "public, s-maxage=300, stale-while-revalidate=600"
	categoriesCacheControl = "public, s-maxage=600, stale-while-revalidate=1200"
)

// parsePositiveParam parses an optional positive integer query parameter.
// A present but malformed value is a hard 400: silently coercing it could
// serve the wrong page.
func parsePositiveParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return v, nil
}

func (s *Server) listProducts(c echo.Context) error {
	page, err := parsePositiveParam(c, "page", defaultPage)
	if err != nil {
		return err
	}
	limit, err := parsePositiveParam(c, "limit", defaultLimit)
	if err != nil {
		return err
	}

	list, err := s.catalogSvc.ListProducts(c.Request().Context(), page, limit)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidPagination) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, "catalog temporarily unavailable")
	}

	c.Response().Header().Set("Cache-Control", productsCacheControl)
	return c.JSON(http.StatusOK, list)
}

func (s *Server) listCategories(c echo.Context) error {
	categories, err := s.catalogSvc.ListCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "categories temporarily unavailable")
	}

	c.Response().Header().Set("Cache-Control", categoriesCacheControl)
	return c.JSON(http.StatusOK, categories)
}

// refreshProducts is the internal trigger that forces an immediate product
// cache repopulation, bypassing the TTL.
func (s *Server) refreshProducts(c echo.Context) error {
	count, err := s.catalogSvc.RefreshProducts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to refresh products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"revalidated": true, "count": count})
}
