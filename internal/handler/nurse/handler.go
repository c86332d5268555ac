package nurse

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/arogyavax/internal/handler"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/service/nurse"
)

type Handler struct {
	svc *nurse.Service
}

func NewHandler(svc *nurse.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g handler.Groups) {
	nurses := g.Staff.Group("/nurse")
	{
		nurses.GET("/search-patients", h.SearchPatients)
		nurses.GET("/patient/:id", h.GetPatient)
		nurses.PUT("/patient/:id", h.UpdatePatient)
		nurses.GET("/due-list", h.DueList)
	}
}

func (h *Handler) SearchPatients(c *gin.Context) {
	patients, err := h.svc.SearchPatients(c.Request.Context(), c.Query("query"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	details, err := h.svc.GetPatient(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, details)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var req model.PatientUpdate
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	patient, err := h.svc.UpdatePatient(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Patient updated successfully", patient))
}

func (h *Handler) DueList(c *gin.Context) {
	entries, err := h.svc.DueList(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, entries)
}
