package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/core/ports"
	customMiddleware "github.com/avatarctic/storefront-catalog/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

// AuthSecrets carries the two credentials accepted by the invalidation and
// admin endpoints.
type AuthSecrets struct {
	InvalidateToken string
	JWTSecret       string
}

type ServerDeps struct {
	CatalogService      ports.CatalogService
	CurrencyService     ports.CurrencyService
	CartService         ports.CartService
	InvalidationService ports.InvalidationService
	HealthCheckers      []ports.HealthChecker
}

type Server struct {
	echo            *echo.Echo
	config          *ServerConfig
	logger          *logrus.Logger
	catalogSvc      ports.CatalogService
	currencySvc     ports.CurrencyService
	cartSvc         ports.CartService
	invalidationSvc ports.InvalidationService
	middleware      *customMiddleware.MiddlewareCollection
	healthCheckers  []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, secrets AuthSecrets, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:            e,
		config:          serverConfig,
		logger:          logger,
		catalogSvc:      deps.CatalogService,
		currencySvc:     deps.CurrencyService,
		cartSvc:         deps.CartService,
		invalidationSvc: deps.InvalidationService,
		healthCheckers:  deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			logger,
			secrets.InvalidateToken,
			secrets.JWTSecret,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
