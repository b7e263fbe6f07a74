package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/features"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/features/projects"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/services"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")
			return serve(migrate)
		},
	}
	cmd.Flags().Bool("migrate", true, "apply pending migrations before serving")
	return cmd
}

func serve(migrate bool) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}
	defer sentry.Flush(2 * time.Second)

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	// ERROR+ records also go to system_logs
	systemLogs := logging.NewSystemLogHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewHandler(cfg, os.Stdout),
		systemLogs,
	)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logging.StartCleanup(ctx, db, cfg.LogRetention)

	// Services
	userService := services.NewUserService(db)

	featureList := []features.Feature{
		projects.New(),
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	userHandler := handlers.NewUserHandler(userService)

	app := newApp(cfg)
	routes.Setup(app, cfg, db, healthHandler, userHandler, userService, featureList)
	for _, f := range featureList {
		slog.Info("feature mounted", "feature", f.ID())
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := listenUntil(app, ":"+cfg.Port, quit)

	cancel()
	systemLogs.Stop()

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
	return serveErr
}

// listenUntil serves until quit fires or Listen fails, then shuts the app
// down. The Listen error, if any, is returned.
func listenUntil(app *fiber.App, addr string, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		listenErr <- app.Listen(addr)
	}()

	var serveErr error
	select {
	case <-quit:
		slog.Info("shutting down server...")
	case serveErr = <-listenErr:
		if serveErr != nil {
			slog.Error("server failed to start", "error", serveErr)
			serveErr = fmt.Errorf("listen on %s: %w", addr, serveErr)
		}
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	return serveErr
}

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	return app
}
