package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/arogyavax/internal/handler"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(g handler.Groups) {
	g.Authenticated.POST("/appointments", h.CreateAppointment)
	g.Staff.PUT("/appointments/:id/status", h.UpdateStatus)
	g.Staff.GET("/nurse/appointments", h.ListByDate)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	appointment, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Created(c, "Appointment booked successfully", appointment)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var req model.UpdateAppointmentStatusRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	appointment, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, appointment)
}

func (h *Handler) ListByDate(c *gin.Context) {
	var filter model.AppointmentFilter
	if err := handler.BindQuery(c, &filter); err != nil {
		handler.RespondError(c, err)
		return
	}

	appointments, err := h.service.ListByDate(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, appointments)
}
