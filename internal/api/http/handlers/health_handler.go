package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Night40050/support-copilot/internal/api/dto"
)

const readinessTimeout = 2 * time.Second

// ReadinessChecker reports whether the record store can be reached.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness checks.
type HealthHandler struct {
	serviceName string
	version     string
	store       string
	checker     ReadinessChecker
	logger      *zap.Logger
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version, store string, checker ReadinessChecker, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{serviceName: serviceName, version: version, store: store, checker: checker, logger: logger}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

// Ready reports service readiness by pinging the record store.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	resp := dto.ReadinessResponse{
		Status:  "ready",
		Service: h.serviceName,
		Version: h.version,
		Store:   h.store,
	}
	if err := h.checker.Ready(ctx); err != nil {
		h.logger.Warn("readiness check failed", zap.String("store", h.store), zap.Error(err))
		resp.Status = "unavailable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
