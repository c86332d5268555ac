package announcement

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/arogyavax/internal/handler"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/service/announcement"
)

type Handler struct {
	svc *announcement.Service
}

func NewHandler(svc *announcement.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g handler.Groups) {
	g.Public.GET("/announcements", h.List)
	g.Admin.POST("/admin/announcements", h.Create)
	g.Admin.DELETE("/admin/announcements/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, items)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAnnouncementRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	a, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Created(c, "Announcement posted", a)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Message(c, "Announcement deleted")
}
