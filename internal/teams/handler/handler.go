package handler

import (
	"net/http"

	"bookinghub_backend/internal/teams/service"
	"bookinghub_backend/internal/teams/transport"
	"bookinghub_backend/platform/httpkit"
	"bookinghub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for teams
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new teams handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the team routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/members", h.AddMember)
	rg.DELETE("/:id/members/:userId", h.RemoveMember)
}

// List handles GET /api/v1/teams
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.List(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Create handles POST /api/v1/teams
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// GetByID handles GET /api/v1/teams/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "invalid team id")
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Delete handles DELETE /api/v1/teams/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "invalid team id")
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, identity.UserID()); httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}

// AddMember handles POST /api/v1/teams/:id/members
func (h *Handler) AddMember(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "invalid team id")
	if !ok {
		return
	}

	var req transport.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.AddMember(c.Request.Context(), id, identity.UserID(), req); httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, gin.H{"status": "added"})
}

// RemoveMember handles DELETE /api/v1/teams/:id/members/:userId
func (h *Handler) RemoveMember(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "invalid team id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "userId", "invalid user id")
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.RemoveMember(c.Request.Context(), id, identity.UserID(), userID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}

func parseUUIDParam(c *gin.Context, name string, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, message, nil)
		return uuid.UUID{}, false
	}
	return id, true
}
