// Package bookings provides the bookings domain module.
package bookings

import (
	"bookinghub_backend/internal/bookings/handler"
	"bookinghub_backend/internal/bookings/repository"
	"bookinghub_backend/internal/bookings/service"
	"bookinghub_backend/internal/events"
	apphttp "bookinghub_backend/internal/http"
	"bookinghub_backend/platform/config"
	"bookinghub_backend/platform/logger"
	"bookinghub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the bookings domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new bookings module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator, eventBus events.Bus, notifCfg config.NotificationConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, notifCfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "bookings"
}

// RegisterRoutes registers the module's routes under /api/v1/bookings
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	bookings := ctx.Protected.Group("/bookings")
	m.handler.RegisterRoutes(bookings)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
