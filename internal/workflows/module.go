// Package workflows provides the workflows domain module.
package workflows

import (
	apphttp "bookinghub_backend/internal/http"
	"bookinghub_backend/internal/workflows/handler"
	"bookinghub_backend/internal/workflows/repository"
	"bookinghub_backend/internal/workflows/service"
	"bookinghub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the workflows domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new workflows module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator, members service.MembershipChecker) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, members)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "workflows"
}

// RegisterRoutes registers the module's routes under /api/v1/workflows
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	workflows := ctx.Protected.Group("/workflows")
	m.handler.RegisterRoutes(workflows)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
