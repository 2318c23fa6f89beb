package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"guestbook/app"
	"guestbook/infra/postgres"
	"guestbook/infra/rabbitmq"
	"guestbook/infra/sqlite"
	"guestbook/internal/middleware"
	"guestbook/internal/ratelimit"
	"guestbook/pkg/config"
	"guestbook/pkg/events"
	"guestbook/pkg/httperror"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest("invalid_body", err.Error()))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest("invalid_path_params", err.Error()))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest("invalid_query_params", err.Error()))
		}

		if err := c.ReqHeaderParser(&req); err != nil {
			return writeError(c, httperror.BadRequest("invalid_headers", err.Error()))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		if statused, ok := any(res).(interface{ HTTPStatus() int }); ok {
			return c.Status(statused.HTTPStatus()).JSON(res)
		}

		return c.JSON(res)
	}
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config",
		zap.String("port", appConfig.Port),
		zap.String("staticDir", appConfig.StaticDir),
		zap.Int("rateLimitWindow", appConfig.RateLimitWindow),
		zap.Int("rateLimitMax", appConfig.RateLimitMax),
		zap.Bool("adminKeyConfigured", appConfig.AdminKey != ""),
	)

	repository, err := openRepository(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open comment store", zap.Error(err))
	}
	defer repository.Close()

	limiter := ratelimit.New(
		time.Duration(appConfig.RateLimitWindow)*time.Second,
		appConfig.RateLimitMax,
	)

	var publisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Warn("Comment events disabled, RabbitMQ unavailable", zap.Error(err))
		} else {
			publisher = p
			defer publisher.Close()
		}
	}

	srv := newServer(appConfig, repository, limiter, publisher)

	// Start server in a goroutine
	go func() {
		if err := srv.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(srv)
}

// openRepository picks the storage backend by connection string: a
// postgres:// URL selects PostgreSQL, anything else is a SQLite file path.
func openRepository(appConfig *config.AppConfig) (app.Repository, error) {
	if strings.HasPrefix(appConfig.DatabaseURL, "postgres://") ||
		strings.HasPrefix(appConfig.DatabaseURL, "postgresql://") {
		return postgres.NewPgRepository(appConfig.DatabaseURL)
	}

	return sqlite.NewRepository(appConfig.DatabaseURL)
}

func newServer(appConfig *config.AppConfig, repository app.Repository, limiter *ratelimit.Limiter, publisher events.Publisher) *fiber.App {
	srv := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
	})

	srv.Use("/api", cors.New())

	pingHandler := app.NewPingHandler()
	getCommentsHandler := app.NewGetCommentsHandler(repository)
	createCommentHandler := app.NewCreateCommentHandler(repository, publisher)
	deleteCommentHandler := app.NewDeleteCommentHandler(repository, appConfig.AdminKey, publisher)

	api := srv.Group("/api")
	api.Get("/ping", handle[app.PingRequest, app.PingResponse](pingHandler))
	api.Get("/comments", handle[app.GetCommentsRequest, app.GetCommentsResponse](getCommentsHandler))
	api.Post("/comments",
		middleware.NewRateLimitMiddleware(limiter),
		handle[app.CreateCommentRequest, app.CreateCommentResponse](createCommentHandler))
	api.Delete("/comments/:id", handle[app.DeleteCommentRequest, app.DeleteCommentResponse](deleteCommentHandler))

	srv.Static("/", appConfig.StaticDir)

	// Unknown API paths get JSON; everything else falls back to the SPA
	// entry document so client-side routing can take over.
	srv.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") || c.Path() == "/api" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
		}
		return c.SendFile(filepath.Join(appConfig.StaticDir, "index.html"))
	})

	return srv
}

func gracefulShutdown(srv *fiber.App) {
	// Create channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	zap.L().Info("Shutting down server...")

	// Shutdown with 5 second timeout
	if err := srv.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(httpErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error":  "invalid_request",
			"detail": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal_error",
	})
}
