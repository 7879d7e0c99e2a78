package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rueating/internal/config"
	"rueating/internal/database"
	"rueating/internal/location"
	"rueating/internal/logging"
	"rueating/internal/modules/discovery"
	"rueating/internal/modules/menu"
	"rueating/internal/modules/order"
	"rueating/pkg/notify"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	// The static campus table always backs location lookups. With Redis
	// configured, live pings take precedence over it.
	static := location.NewStaticSource()
	var locations location.Source = static
	var pings discovery.PingRecorderInterface
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		redisSrc := location.NewRedisSource(client, "truck:locations", static)
		locations = redisSrc
		pings = redisSrc
		logger.Info("live location tracking enabled", "redis_addr", cfg.RedisAddr)
	}

	var notifier order.NotifierInterface
	if cfg.OrderAlertsTo != "" && cfg.EmailFrom != "" {
		sesNotifier, err := notify.NewSESService(ctx, cfg.AWSRegion, cfg.EmailFrom, cfg.OrderAlertsTo)
		if err != nil {
			logger.Error("order alerts disabled", "error", err)
		} else {
			notifier = sesNotifier
			logger.Info("order alerts enabled", "to", cfg.OrderAlertsTo)
		}
	}

	menuRepo := menu.NewRepository(pool)
	menuService := menu.NewService(menuRepo)
	menuHandler := menu.NewHandler(menuService)

	discoveryRepo := discovery.NewRepository(pool)
	discoveryService := discovery.NewService(discoveryRepo, locations, pings, menuService)
	discoveryHandler := discovery.NewHandler(discoveryService)

	orderRepo := order.NewRepository(pool)
	orderService := order.NewService(orderRepo, menuService, notifier, logger)
	orderHandler := order.NewHandler(orderService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "OK",
			"message":   "RUEating API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	discoveryHandler.RegisterRoutes(e)
	menuHandler.RegisterRoutes(e)
	orderHandler.RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			cancel()
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped gracefully")
}
