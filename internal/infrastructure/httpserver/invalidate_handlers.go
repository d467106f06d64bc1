package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// invalidate handles the authorized "data changed" fan-out. Authorization is
// enforced by the route middleware; by the time this runs the request holds
// either a valid shared-secret token or a valid session.
func (s *Server) invalidate(c echo.Context) error {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}

	result, err := s.invalidationSvc.Invalidate(c.Request().Context(), req.Path)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
