// Package handler provides HTTP handlers for platform level endpoints.
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckFunc probes one dependency and returns nil when it is healthy.
type CheckFunc func(ctx context.Context) error

// HealthHandler serves /healthz. Required checks turn the response into a
// 503 when they fail; optional ones only report "down".
type HealthHandler struct {
	required map[string]CheckFunc
	optional map[string]CheckFunc
	timeout  time.Duration
	logger   *zap.Logger
}

// NewHealthHandler creates a HealthHandler with no checks.
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		required: map[string]CheckFunc{},
		optional: map[string]CheckFunc{},
		timeout:  2 * time.Second,
		logger:   logger,
	}
}

// Require registers a check whose failure makes the service unhealthy.
func (h *HealthHandler) Require(name string, fn CheckFunc) *HealthHandler {
	h.required[name] = fn
	return h
}

// Optional registers a check that is reported but never fails the probe.
func (h *HealthHandler) Optional(name string, fn CheckFunc) *HealthHandler {
	h.optional[name] = fn
	return h
}

// Health handles /healthz. The response is never cached.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{}
	for _, name := range sortedNames(h.required) {
		if err := h.required[name](ctx); err != nil {
			h.logger.Error("health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	for _, name := range sortedNames(h.optional) {
		if err := h.optional[name](ctx); err != nil {
			h.logger.Warn("optional health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = "down"
			continue
		}
		checks[name] = "ok"
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}

	body := gin.H{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	if len(checks) > 0 {
		body["checks"] = checks
	}
	c.JSON(status, body)
}

func sortedNames(m map[string]CheckFunc) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
