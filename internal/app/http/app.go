package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pressroom/internal/lib/authz"
	appmw "pressroom/internal/middleware"
	httprouters "pressroom/internal/transport/http"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	guard   authz.Authorizer
	checks  map[string]HealthChecker
	host    string
	port    string
}

func New(log *slog.Logger, host, port string, routers *httprouters.Routers, guard authz.Authorizer, checks map[string]HealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echomw.CORS())
	e.Use(echomw.Recover())
	e.Use(appmw.RequestID)
	e.Use(appmw.PrometheusMetrics)

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		guard:   guard,
		checks:  checks,
		host:    host,
		port:    port,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.host, s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.healthHandler)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.e.Group("/api")
	{
		adminOnly := appmw.AdminOnly(s.guard)

		admin := api.Group("/admin", adminOnly)
		{
			admin.GET("/stats", s.routers.GetDashboardStats)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", s.routers.ListTags)
			tags.GET("/:id", s.routers.GetTag)
			tags.POST("", s.routers.CreateTag, adminOnly)
			tags.PUT("/:id", s.routers.UpdateTag, adminOnly)
			tags.DELETE("/:id", s.routers.DeleteTag, adminOnly)
		}

		blogs := api.Group("/blogs")
		{
			blogs.GET("", s.routers.ListPublishedPosts)
			blogs.GET("/:slug", s.routers.GetPostBySlug)
			blogs.GET("/:slug/related", s.routers.GetRelatedPosts)
			blogs.POST("/:slug/view", s.routers.RecordPostView)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/user", s.routers.UpsertUser)
			auth.GET("/user", s.routers.GetUser)
			auth.GET("/user/:uid", s.routers.GetUser)
		}

		providers := api.Group("/ai-providers", adminOnly)
		{
			providers.GET("", s.routers.ListProviders)
			providers.POST("", s.routers.CreateProvider)
			providers.PUT("", s.routers.UpdateProvider)
		}
	}
}

func (s *Server) healthHandler(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(s.checks))

	for name, check := range s.checks {
		if err := check.HealthCheck(ctx); err != nil {
			deps[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	return c.JSON(status, map[string]interface{}{
		"status": http.StatusText(status),
		"deps":   deps,
	})
}
