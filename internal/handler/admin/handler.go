package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/arogyavax/internal/handler"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/service/admin"
)

type Handler struct {
	svc *admin.Service
}

func NewHandler(svc *admin.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g handler.Groups) {
	admins := g.Admin.Group("/admin")
	{
		admins.GET("/stats", h.Stats)
		admins.GET("/users", h.ListUsers)
		admins.PUT("/users/:id/status", h.UpdateUserStatus)
		admins.DELETE("/users/:id", h.DeleteUser)
		admins.GET("/hospitals", h.ListHospitals)
		admins.PUT("/hospitals/:id/approval", h.SetHospitalApproval)
		admins.GET("/audit-logs", h.AuditLogs)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, stats)
}

func (h *Handler) ListUsers(c *gin.Context) {
	var filter model.UserFilter
	if err := handler.BindQuery(c, &filter); err != nil {
		handler.RespondError(c, err)
		return
	}

	users, err := h.svc.ListUsers(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, users)
}

func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var req model.UpdateUserStatusRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	if err := h.svc.UpdateUserStatus(c.Request.Context(), id, req.Status); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Message(c, "User status updated to "+req.Status)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Message(c, "User deleted")
}

func (h *Handler) ListHospitals(c *gin.Context) {
	hospitals, err := h.svc.ListHospitals(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, hospitals)
}

func (h *Handler) SetHospitalApproval(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var req model.HospitalApprovalRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	if err := h.svc.SetHospitalApproval(c.Request.Context(), id, *req.Approved); err != nil {
		handler.RespondError(c, err)
		return
	}
	if *req.Approved {
		handler.Message(c, "Hospital approved")
		return
	}
	handler.Message(c, "Hospital approval revoked")
}

func (h *Handler) AuditLogs(c *gin.Context) {
	var filter model.AuditFilter
	if err := handler.BindQuery(c, &filter); err != nil {
		handler.RespondError(c, err)
		return
	}

	page, err := h.svc.AuditLogs(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, page)
}
