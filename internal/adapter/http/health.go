package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckFunc adapts a ping function to Checker.
type CheckFunc struct {
	Label string
	Fn    func(ctx context.Context) error
}

func (c CheckFunc) Name() string                    { return c.Label }
func (c CheckFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct{ checkers []Checker }

func NewHealthHandler(checkers ...Checker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
}

// Health: basic liveness check.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return Success(c, fiber.StatusOK, MessageOK, fiber.Map{"status": "ok"})
}

// Ready: readiness check over every dependency.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
	defer cancel()
	for _, ch := range h.checkers {
		if err := ch.Check(ctx); err != nil {
			return NewAppError(fiber.StatusServiceUnavailable, MessageServiceUnavailable,
				fiber.Map{"status": "not_ready", "details": fmt.Sprintf("%s: %v", ch.Name(), err)}, err)
		}
	}
	return Success(c, fiber.StatusOK, MessageOK, fiber.Map{"status": "ready"})
}
