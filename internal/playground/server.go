// Package playground serves script runs over HTTP. Every request gets its own
// runner and buffers, so concurrent requests never share interpreter state.
package playground

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"

	"github.com/leonardinius/treelox/internal/config"
	"github.com/leonardinius/treelox/internal/lox"
	"github.com/leonardinius/treelox/internal/loxerrors"
)

// Server is the playground HTTP server.
type Server struct {
	app *fiber.App
	cfg config.Config
}

// New creates a new playground server.
func New(cfg config.Config) *Server {
	srv := &Server{cfg: cfg}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// every source byte may expand to a six byte \u escape
		BodyLimit:    6*cfg.MaxSourceBytes + 1024,
		ErrorHandler: errorHandler,
		ReadTimeout:  cfg.RunTimeout * 2,
		WriteTimeout: cfg.RunTimeout * 2,
	})
	app.Use(logger.New())

	app.Get("/healthz", srv.health)
	app.Post("/v1/run", srv.run)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

type runRequest struct {
	Source string `json:"source"`
}

type runResponse struct {
	ID       string `json:"id"`
	Output   string `json:"output"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"`
	ExitCode int    `json:"exitCode"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) run(c *fiber.Ctx) error {
	var req runRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	if strings.TrimSpace(req.Source) == "" {
		return errorResponse(c, fiber.StatusBadRequest, "source is required")
	}
	if len(req.Source) > s.cfg.MaxSourceBytes {
		return errorResponse(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("source exceeds %d bytes", s.cfg.MaxSourceBytes))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.RunTimeout)
	defer cancel()

	stdout := new(strings.Builder)
	stderr := new(strings.Builder)
	runner := lox.NewRunner(lox.WithStdout(stdout), lox.WithStderr(stderr))
	err := runner.Run(ctx, req.Source)

	resp := runResponse{
		ID:       uuid.NewString(),
		Output:   stdout.String(),
		ExitCode: lox.ExitCode(err),
	}
	if err != nil {
		resp.Error = err.Error()
		resp.Kind = loxerrors.Classify(err).String()
	}

	return c.JSON(resp)
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    status,
			"message": message,
		},
	})
}

// errorHandler keeps fiber's own failures (body limit, unknown route) in the
// same JSON envelope as handler errors.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	return errorResponse(c, status, err.Error())
}
