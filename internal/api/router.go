package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bookstore/catalog-system/docs"
	"github.com/bookstore/catalog-system/internal/api/handler"
	"github.com/bookstore/catalog-system/internal/api/middleware"
	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
	"github.com/bookstore/catalog-system/internal/core/service"
)

// Dependencies is everything the HTTP layer needs from the composition root.
type Dependencies struct {
	Auth     ports.AuthService
	Accounts ports.AccountService
	Roles    ports.RoleService
	Sessions *service.SessionIssuer
	// Renewer extends cookie sessions; nil disables sliding renewal.
	Renewer *service.SessionRenewer
	Cookie  middleware.Cookie
	Checks  []handler.DependencyCheck
	Logger  zerolog.Logger
	// Registry receives the HTTP request metrics. Nil uses the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(prometheusMiddleware(deps.Registry))
	sessionCfg := middleware.SessionConfig{
		Verifier: deps.Sessions,
		Cookie:   deps.Cookie,
		Logger:   deps.Logger,
	}
	if deps.Renewer != nil {
		sessionCfg.Renewer = deps.Renewer
	}
	e.Use(middleware.Session(sessionCfg))

	anonymous := middleware.Authorize(domain.PolicyAnonymous)
	authenticated := middleware.Authorize(domain.PolicyAuthenticated)
	admin := middleware.Authorize(domain.PolicyAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.Cookie, deps.Logger)
	accountHandler := handler.NewAccountHandler(deps.Accounts)
	roleHandler := handler.NewRoleHandler(deps.Roles)
	healthHandler := handler.NewHealthHandler(deps.Checks...)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login, anonymous)
	auth.POST("/logout", authHandler.Logout, anonymous)
	auth.POST("/password", authHandler.ChangePassword, authenticated)
	auth.GET("/me", authHandler.Me, authenticated)

	// --- Administration ---
	users := e.Group("/users", admin)
	users.GET("", accountHandler.List)
	users.POST("", accountHandler.Create)
	users.GET("/:id", accountHandler.Get)
	users.PUT("/:id", accountHandler.Update)
	users.DELETE("/:id", accountHandler.Deactivate)

	roles := e.Group("/roles", admin)
	roles.GET("", roleHandler.List)
	roles.POST("", roleHandler.Create)
	roles.GET("/:id", roleHandler.Get)
	roles.PUT("/:id", roleHandler.Update)
	roles.DELETE("/:id", roleHandler.Delete)

	// --- Probes and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", prometheusHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware("bookstore")
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "bookstore",
		Registerer: reg,
	})
}

func prometheusHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
