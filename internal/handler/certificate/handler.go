package certificate

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/arogyavax/internal/handler"
	"github.com/jwalitptl/arogyavax/internal/service/certificate"
)

type Handler struct {
	svc *certificate.Service
}

func NewHandler(svc *certificate.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g handler.Groups) {
	g.Staff.POST("/certificates/:recordId/issue", h.Issue)
	g.Authenticated.GET("/certificates/:recordId", h.Get)
}

func (h *Handler) Issue(c *gin.Context) {
	id, err := handler.ParseID(c, "recordId")
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	cert, err := h.svc.Issue(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Created(c, "Certificate issued", cert)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.ParseID(c, "recordId")
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	cert, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, cert)
}
