package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
)

func (s *Server) getCart(c echo.Context) error {
	id := c.Param("id")

	currencies := []string{currency.Pivot}
	if raw := c.QueryParam("currencies"); raw != "" {
		currencies = strings.Split(raw, ",")
	}

	cartObj, totals, err := s.cartSvc.GetCart(c.Request().Context(), id, currencies)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"cart":   cartObj,
		"totals": totals,
	})
}

func (s *Server) addCartItem(c echo.Context) error {
	id := c.Param("id")

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product ID")
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	cartObj, err := s.cartSvc.AddItem(c.Request().Context(), id, productID, req.Quantity)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, cartObj)
}

func (s *Server) setCartItemQuantity(c echo.Context) error {
	id := c.Param("id")
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product ID")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cartObj, err := s.cartSvc.SetQuantity(c.Request().Context(), id, productID, req.Quantity)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, cartObj)
}

func (s *Server) removeCartItem(c echo.Context) error {
	id := c.Param("id")
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product ID")
	}

	cartObj, err := s.cartSvc.RemoveItem(c.Request().Context(), id, productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cartObj)
}
