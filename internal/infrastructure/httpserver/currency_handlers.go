package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
)

const ratesCacheControl = "public, s-maxage=300, stale-while-revalidate=600"

func (s *Server) getRates(c echo.Context) error {
	table, source := s.currencySvc.Rates(c.Request().Context())

	c.Response().Header().Set("Cache-Control", ratesCacheControl)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"pivot":  currency.Pivot,
		"rates":  table,
		"source": source,
	})
}

func (s *Server) convert(c echo.Context) error {
	var req struct {
		Amount float64 `json:"amount"`
		From   string  `json:"from"`
		To     string  `json:"to"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.From == "" || req.To == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to currencies are required")
	}

	converted, ok := s.currencySvc.Convert(c.Request().Context(), req.Amount, req.From, req.To)
	if !ok {
		// Undefined conversion: explicit null sentinel, rendered as "N/A".
		return c.JSON(http.StatusOK, map[string]interface{}{
			"amount":    req.Amount,
			"from":      req.From,
			"to":        req.To,
			"converted": nil,
			"formatted": "N/A",
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"amount":    req.Amount,
		"from":      req.From,
		"to":        req.To,
		"converted": converted,
		"formatted": currency.Format(converted, req.To),
	})
}
