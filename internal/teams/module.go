// Package teams provides the teams domain module.
package teams

import (
	"bookinghub_backend/internal/events"
	apphttp "bookinghub_backend/internal/http"
	"bookinghub_backend/internal/teams/handler"
	"bookinghub_backend/internal/teams/repository"
	"bookinghub_backend/internal/teams/service"
	"bookinghub_backend/platform/logger"
	"bookinghub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the teams domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new teams module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator, eventBus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "teams"
}

// RegisterRoutes registers the module's routes under /api/v1/teams
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	teams := ctx.Protected.Group("/teams")
	m.handler.RegisterRoutes(teams)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
