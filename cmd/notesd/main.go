package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notekeeper/docs"
	"notekeeper/internal/app"
	"notekeeper/internal/config"
	handlers "notekeeper/internal/http/handler"
	"notekeeper/internal/http/middleware"
	"notekeeper/internal/logging"
	"notekeeper/internal/otel"
)

// @title Notekeeper API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()
	loc := logging.Location(cfg.TimeZone)
	logger := logging.New(os.Stdout, cfg.LogLevel, loc)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Error("tracing_init_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	core, err := app.New(ctx, cfg, logger, reg)
	if err != nil {
		// the store is required; nothing useful can be served without it
		logger.Error("store_open_failed",
			slog.String("driver", cfg.Store.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	defer core.Close()

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Error("metrics_init_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	srv.Use(recover.New())
	srv.Use(otelfiber.Middleware())
	srv.Use(middleware.RequestID())
	srv.Use(middleware.Logger(logger))
	srv.Use(promMiddleware.Handler())

	srv.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(srv, handlers.Deps{
		Store:    core.Notes,
		List:     core.List,
		Detail:   core.Detail,
		Exporter: core.Exporter,
	})

	// Swagger UI with dynamic host and scheme
	srv.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.ShutdownWithContext(sctx); err != nil {
			logger.Error("server_shutdown_failed", slog.String("error", err.Error()))
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server_starting",
		slog.String("addr", addr),
		slog.String("store_driver", cfg.Store.Driver),
		slog.Bool("exports_enabled", core.Exporter.Enabled()),
	)
	if err := srv.Listen(addr); err != nil {
		logger.Error("server_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server_stopped")
}
